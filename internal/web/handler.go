// Package web serves the browser client. Pages are rendered on the server
// from a board kept in sync with the task API.
package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"task-tracker.com/task-tracker/internal/board"
	"task-tracker.com/task-tracker/internal/client"
	"task-tracker.com/task-tracker/internal/logger"
	model "task-tracker.com/task-tracker/internal/models"
	"task-tracker.com/task-tracker/pkg/optional"
)

const loadFailedMessage = "Failed to load tasks. Please check if the server is running."

// TaskAPI is the part of the task client the web handler needs.
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, in client.CreateTaskInput) (*model.Task, error)
	UpdateTask(ctx context.Context, id uint, in client.UpdateTaskInput) (*model.Task, error)
	DeleteTask(ctx context.Context, id uint) error
}

type Handler struct {
	api   TaskAPI
	board *board.Board

	mu    sync.Mutex
	flash *flash
	draft *formValues
}

type flash struct {
	Kind    string
	Message string
}

type formValues struct {
	Title       string
	Description string
}

func NewHandler(api TaskAPI) *Handler {
	return &Handler{
		api:   api,
		board: board.New(),
	}
}

// Register installs the renderer and routes on e.
func (h *Handler) Register(e *echo.Echo) {
	e.Renderer = newRenderer()

	e.GET("/", h.index)
	e.POST("/tasks", h.create)
	e.POST("/tasks/:id/toggle", h.toggle)
	e.POST("/tasks/:id/delete", h.remove)
	e.POST("/refresh", h.refresh)
}

func (h *Handler) index(c echo.Context) error {
	loadError := ""
	if !h.board.Loaded() {
		if err := h.load(c.Request().Context()); err != nil {
			loadError = loadFailedMessage
		}
	}

	tasks := h.board.Snapshot()
	pending, completed := board.Partition(tasks)

	data := pageData{
		Summary:        board.Summarize(tasks),
		Pending:        pending,
		Completed:      completed,
		LoadError:      loadError,
		MaxTitle:       client.MaxTitleLength,
		MaxDescription: client.MaxDescriptionLength,
	}
	data.Flash, data.Form = h.consume()

	return c.Render(http.StatusOK, "page", data)
}

func (h *Handler) create(c echo.Context) error {
	values := formValues{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
	}

	task, err := h.api.CreateTask(c.Request().Context(), client.CreateTaskInput{
		Title:       values.Title,
		Description: values.Description,
	})
	if err != nil {
		h.fail(c, err, &values)
		return redirectHome(c)
	}

	h.board.Added(*task)
	h.succeed("Task added successfully!")
	return redirectHome(c)
}

// toggle sets completed to the value carried by the form, which the page
// renders as the opposite of the task's current state.
func (h *Handler) toggle(c echo.Context) error {
	id, ok := h.taskID(c)
	if !ok {
		return redirectHome(c)
	}

	input := client.UpdateTaskInput{}
	if raw := c.FormValue("completed"); raw != "" {
		input.Completed = optional.Of[any](raw)
	}

	task, err := h.api.UpdateTask(c.Request().Context(), id, input)
	if err != nil {
		h.fail(c, err, nil)
		return redirectHome(c)
	}

	h.board.Updated(*task)
	h.succeed("Task updated successfully!")
	return redirectHome(c)
}

func (h *Handler) remove(c echo.Context) error {
	id, ok := h.taskID(c)
	if !ok {
		return redirectHome(c)
	}

	if err := h.api.DeleteTask(c.Request().Context(), id); err != nil {
		h.fail(c, err, nil)
		return redirectHome(c)
	}

	h.board.Deleted(id)
	h.succeed("Task deleted successfully!")
	return redirectHome(c)
}

func (h *Handler) refresh(c echo.Context) error {
	if err := h.load(c.Request().Context()); err != nil {
		h.setFlash(&flash{Kind: "error", Message: loadFailedMessage}, nil)
	}
	return redirectHome(c)
}

func (h *Handler) load(ctx context.Context) error {
	tasks, err := h.api.ListTasks(ctx)
	if err != nil {
		logger.WarnContext(ctx, "load tasks failed", "error", err)
		return err
	}
	h.board.Load(tasks)
	return nil
}

func (h *Handler) taskID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 0)
	if err != nil || id == 0 {
		h.setFlash(&flash{Kind: "error", Message: "invalid task id"}, nil)
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) succeed(message string) {
	h.setFlash(&flash{Kind: "success", Message: message}, nil)
}

// fail records err for the next page view. The board is left as it was.
func (h *Handler) fail(c echo.Context, err error, values *formValues) {
	if !client.IsValidation(err) {
		logger.WarnContext(c.Request().Context(), "task request failed",
			"path", c.Request().URL.Path,
			"error", err,
		)
	}
	h.setFlash(&flash{Kind: "error", Message: err.Error()}, values)
}

func (h *Handler) setFlash(f *flash, values *formValues) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.flash = f
	h.draft = values
}

func (h *Handler) consume() (*flash, formValues) {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, draft := h.flash, h.draft
	h.flash, h.draft = nil, nil
	if draft == nil {
		return f, formValues{}
	}
	return f, *draft
}

func redirectHome(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/")
}
