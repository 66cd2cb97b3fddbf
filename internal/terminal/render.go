// Package terminal renders tasks for the command line client.
package terminal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"task-tracker.com/task-tracker/internal/board"
	model "task-tracker.com/task-tracker/internal/models"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("244"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(6)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	descIndent   = lipgloss.NewStyle().PaddingLeft(6)
)

const timeLayout = "2006-01-02 15:04"

// Board renders the summary line followed by the pending and completed
// groups.
func Board(tasks []model.Task) string {
	pending, completed := board.Partition(tasks)

	var b strings.Builder
	b.WriteString(headerStyle.Render(board.Summarize(tasks).String()))
	b.WriteString("\n\n")
	writeGroup(&b, "Pending", pending, "No pending tasks.")
	b.WriteString("\n")
	writeGroup(&b, "Completed", completed, "No completed tasks.")
	return b.String()
}

func writeGroup(b *strings.Builder, name string, tasks []model.Task, empty string) {
	b.WriteString(sectionStyle.Render(fmt.Sprintf("%s (%d)", name, len(tasks))))
	b.WriteString("\n")
	if len(tasks) == 0 {
		b.WriteString(mutedStyle.Render(empty))
		b.WriteString("\n")
		return
	}
	for _, task := range tasks {
		b.WriteString(line(task))
		b.WriteString("\n")
	}
}

func line(task model.Task) string {
	mark := "[ ]"
	title := titleStyle.Render(task.Title)
	if task.Completed {
		mark = "[x]"
		title = doneStyle.Render(task.Title)
	}

	out := idStyle.Render(fmt.Sprintf("#%d", task.ID)) + mark + " " + title
	if task.Description != nil {
		out += "\n" + descIndent.Render(mutedStyle.Render(*task.Description))
	}
	return out
}

// Task renders one task with all of its fields.
func Task(task model.Task) string {
	status := "pending"
	if task.Completed {
		status = "completed"
	}
	description := "-"
	if task.Description != nil {
		description = *task.Description
	}

	rows := [][2]string{
		{"ID", fmt.Sprintf("%d", task.ID)},
		{"Title", task.Title},
		{"Description", description},
		{"Status", status},
		{"Created", formatTime(task.CreatedAt)},
		{"Updated", formatTime(task.UpdatedAt)},
	}

	label := lipgloss.NewStyle().Bold(true).Width(13)
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(label.Render(row[0]))
		b.WriteString(row[1])
		b.WriteString("\n")
	}
	return b.String()
}

func Success(message string) string {
	return successStyle.Render(message)
}

func Error(err error) string {
	return errorStyle.Render("Error: " + err.Error())
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}
