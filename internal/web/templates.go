package web

import (
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"task-tracker.com/task-tracker/internal/board"
	model "task-tracker.com/task-tracker/internal/models"
)

type pageData struct {
	Summary        board.Summary
	Pending        []model.Task
	Completed      []model.Task
	Flash          *flash
	Form           formValues
	LoadError      string
	MaxTitle       int
	MaxDescription int
}

type renderer struct {
	tmpl *template.Template
}

func newRenderer() *renderer {
	funcs := template.FuncMap{
		"formatTime": formatTime,
		"edited":     func(task model.Task) bool { return !task.UpdatedAt.Equal(task.CreatedAt) },
	}
	return &renderer{tmpl: template.Must(template.New("page").Funcs(funcs).Parse(pageTemplate))}
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Local().Format("2006-01-02 15:04")
}

const pageTemplate = `{{define "task"}}
<li class="task{{if .Completed}} done{{end}}">
  <div class="body">
    <h3>{{.Title}}</h3>
    {{if .Description}}<p>{{.Description}}</p>{{end}}
    <small>Created {{formatTime .CreatedAt}}{{if edited .}} &middot; Updated {{formatTime .UpdatedAt}}{{end}}</small>
  </div>
  <div class="actions">
    <form method="post" action="/tasks/{{.ID}}/toggle">
      <input type="hidden" name="completed" value="{{if .Completed}}false{{else}}true{{end}}">
      <button type="submit">{{if .Completed}}Undo{{else}}Complete{{end}}</button>
    </form>
    <form method="post" action="/tasks/{{.ID}}/delete" onsubmit="return confirm('Are you sure you want to delete this task?');">
      <button type="submit" class="danger">Delete</button>
    </form>
  </div>
</li>
{{end}}<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Task Tracker</title>
  <style>
    body { margin: 0; font-family: system-ui, sans-serif; color: #1f2933; background: #f5f7fa; }
    header { padding: 16px 24px; background: #fff; border-bottom: 1px solid #d9e2ec; display: flex; justify-content: space-between; align-items: center; }
    header h1 { margin: 0; font-size: 20px; }
    main { max-width: 720px; margin: 24px auto; padding: 0 16px; }
    .flash { padding: 10px 14px; border-radius: 6px; margin-bottom: 16px; }
    .flash.success { background: #e3f9e5; color: #05400a; }
    .flash.error { background: #ffe3e3; color: #610404; }
    form.create { display: grid; gap: 8px; background: #fff; padding: 16px; border-radius: 8px; border: 1px solid #d9e2ec; }
    input[type=text], textarea { font: inherit; padding: 8px; border: 1px solid #bcccdc; border-radius: 4px; }
    ul { list-style: none; padding: 0; }
    .task { display: flex; justify-content: space-between; gap: 12px; background: #fff; border: 1px solid #d9e2ec; border-radius: 8px; padding: 12px 16px; margin-bottom: 8px; }
    .task h3 { margin: 0 0 4px 0; font-size: 16px; }
    .task p { margin: 0 0 4px 0; }
    .task small { color: #627d98; }
    .task.done h3 { text-decoration: line-through; color: #829ab1; }
    .actions { display: flex; gap: 6px; align-items: flex-start; }
    button { font: inherit; padding: 6px 12px; border-radius: 4px; border: 1px solid #bcccdc; background: #fff; cursor: pointer; }
    button.danger { color: #a61b1b; border-color: #f29b9b; }
    .empty { color: #829ab1; }
  </style>
</head>
<body>
  <header>
    <h1>Task Tracker</h1>
    <span class="summary">{{.Summary}}</span>
    <form method="post" action="/refresh"><button type="submit">Refresh</button></form>
  </header>
  <main>
    {{if .LoadError}}<div class="flash error">{{.LoadError}}</div>{{end}}
    {{with .Flash}}<div class="flash {{.Kind}}">{{.Message}}</div>{{end}}

    <form class="create" method="post" action="/tasks">
      <input type="text" name="title" placeholder="What needs to be done?" maxlength="{{.MaxTitle}}" value="{{.Form.Title}}" required>
      <textarea name="description" placeholder="Description (optional)" maxlength="{{.MaxDescription}}" rows="2">{{.Form.Description}}</textarea>
      <button type="submit">Add Task</button>
    </form>

    <section>
      <h2>Pending ({{len .Pending}})</h2>
      {{if .Pending}}<ul>{{range .Pending}}{{template "task" .}}{{end}}</ul>{{else}}<p class="empty">No pending tasks.</p>{{end}}
    </section>

    <section>
      <h2>Completed ({{len .Completed}})</h2>
      {{if .Completed}}<ul>{{range .Completed}}{{template "task" .}}{{end}}</ul>{{else}}<p class="empty">No completed tasks.</p>{{end}}
    </section>
  </main>
</body>
</html>
`
