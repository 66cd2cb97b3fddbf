package web

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"task-tracker.com/task-tracker/internal/client"
	httpapi "task-tracker.com/task-tracker/internal/http"
	model "task-tracker.com/task-tracker/internal/models"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/services"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&model.Task{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	e := echo.New()
	service := services.NewTaskService(repository.NewTaskRepository(db))
	httpapi.Register(e, httpapi.NewHandler(service), httpapi.RouteOptions{})

	srv := httptest.NewServer(e)
	t.Cleanup(func() {
		srv.Close()
		_ = sqlDB.Close()
	})
	return srv
}

func newWebServer(t *testing.T, apiURL string) *httptest.Server {
	t.Helper()

	e := echo.New()
	NewHandler(client.New(client.Options{BaseURL: apiURL, Timeout: 2 * time.Second})).Register(e)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func getPage(t *testing.T, target string) string {
	t.Helper()
	resp, err := http.Get(target)
	return readPage(t, resp, err)
}

func postPage(t *testing.T, target string, values url.Values) string {
	t.Helper()
	resp, err := http.PostForm(target, values)
	return readPage(t, resp, err)
}

func readPage(t *testing.T, resp *http.Response, err error) string {
	t.Helper()

	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return string(body)
}

func mustContain(t *testing.T, page string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(page, want) {
			t.Fatalf("expected page to contain %q, got %s", want, page)
		}
	}
}

var taskAction = regexp.MustCompile(`action="/tasks/(\d+)/toggle"`)

func TestWebFlow_CreateToggleDelete(t *testing.T) {
	api := newAPIServer(t)
	web := newWebServer(t, api.URL)

	page := getPage(t, web.URL+"/")
	mustContain(t, page, "0 of 0 tasks completed (0%)", "No pending tasks.")

	page = postPage(t, web.URL+"/tasks", url.Values{
		"title":       {"  Buy milk "},
		"description": {"two litres"},
	})
	mustContain(t, page, "Task added successfully!", "Buy milk", "two litres", "0 of 1 tasks completed (0%)", "Pending (1)")

	match := taskAction.FindStringSubmatch(page)
	if match == nil {
		t.Fatalf("no toggle form in page: %s", page)
	}
	id := match[1]

	page = postPage(t, web.URL+"/tasks/"+id+"/toggle", url.Values{"completed": {"true"}})
	mustContain(t, page, "Task updated successfully!", "1 of 1 tasks completed (100%)", "Completed (1)", "Undo")

	page = postPage(t, web.URL+"/tasks/"+id+"/delete", nil)
	mustContain(t, page, "Task deleted successfully!", "0 of 0 tasks completed (0%)")

	page = getPage(t, web.URL+"/")
	if strings.Contains(page, "Task deleted successfully!") {
		t.Error("flash message should only be shown once")
	}
}

func TestWebCreate_ValidationKeepsDraft(t *testing.T) {
	api := newAPIServer(t)
	web := newWebServer(t, api.URL)

	page := postPage(t, web.URL+"/tasks", url.Values{
		"title":       {"   "},
		"description": {"keep me"},
	})
	mustContain(t, page, "Task title is required", ">keep me</textarea>", "0 of 0 tasks completed (0%)")
}

func TestWebDelete_UnknownTaskLeavesBoard(t *testing.T) {
	api := newAPIServer(t)
	web := newWebServer(t, api.URL)

	postPage(t, web.URL+"/tasks", url.Values{"title": {"Stay"}})

	page := postPage(t, web.URL+"/tasks/999/delete", nil)
	mustContain(t, page, "task not found", "Stay", "0 of 1 tasks completed (0%)")

	page = postPage(t, web.URL+"/tasks/abc/toggle", url.Values{"completed": {"true"}})
	mustContain(t, page, "invalid task id", "Stay")
}

func TestWebRefresh_PicksUpOtherClients(t *testing.T) {
	api := newAPIServer(t)
	web := newWebServer(t, api.URL)

	getPage(t, web.URL+"/")

	other := client.New(client.Options{BaseURL: api.URL})
	if _, err := other.CreateTask(t.Context(), client.CreateTaskInput{Title: "From elsewhere"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	page := getPage(t, web.URL+"/")
	if strings.Contains(page, "From elsewhere") {
		t.Fatal("board should not change without a refresh")
	}

	page = postPage(t, web.URL+"/refresh", nil)
	mustContain(t, page, "From elsewhere")
}

func TestWebIndex_APIDown(t *testing.T) {
	api := httptest.NewServer(http.NotFoundHandler())
	apiURL := api.URL
	api.Close()

	web := newWebServer(t, apiURL)

	page := getPage(t, web.URL+"/")
	mustContain(t, page, "Failed to load tasks. Please check if the server is running.")

	page = postPage(t, web.URL+"/tasks", url.Values{"title": {"Offline"}})
	mustContain(t, page, "unable to reach task server at "+apiURL, `value="Offline"`)
}
