package views

import (
	"fmt"
	"strings"
)

// OverdueMarker and DueMarker prefix a todo's due date.
const (
	OverdueMarker = "!"
	DueMarker     = "@"
)

type TodoItemData struct {
	ID        int64
	Text      string
	DueDate   string
	Overdue   bool
	Completed bool
	Label     string
	Selected  bool
}

type ListPanelData struct {
	Items        []TodoItemData
	ProgressView string
	ProgressPct  float64
}

type FormData struct {
	TextView    string
	DateView    string
	ErrorText   string
	TextInvalid bool
	DateInvalid bool
}

type EditDialogData struct {
	Active    bool
	ID        int64
	InputView string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

func RenderTodoList(data ListPanelData) string {
	var b strings.Builder
	b.WriteString("todos:\n")
	if len(data.Items) == 0 {
		b.WriteString("  (no todos)\n")
	}
	for _, item := range data.Items {
		b.WriteString(RenderTodoItem(item))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\nprogress: %s %.0f%%", data.ProgressView, data.ProgressPct))
	return strings.TrimSpace(b.String())
}

func RenderTodoItem(item TodoItemData) string {
	cursor := " "
	if item.Selected {
		cursor = ">"
	}
	check := "[ ]"
	text := item.Text
	if item.Completed {
		check = "[x]"
		text = doneStyle.Render(text)
	}
	line := fmt.Sprintf("%s %s %s", cursor, check, text)
	if item.DueDate != "" {
		if item.Overdue {
			line += " " + overdueStyle.Render(OverdueMarker+item.DueDate+" overdue")
		} else {
			line += " " + dueStyle.Render(DueMarker+item.DueDate)
		}
	}
	return fmt.Sprintf("%s (%s) #%d", line, item.Label, item.ID)
}

func RenderForm(data FormData) string {
	var b strings.Builder
	b.WriteString("new todo:\n")
	b.WriteString(markInvalid(data.TextView, data.TextInvalid) + "\n")
	b.WriteString(markInvalid(data.DateView, data.DateInvalid))
	if data.ErrorText != "" {
		b.WriteString("\n" + errorStyle.Render(data.ErrorText))
	}
	return b.String()
}

func RenderEditDialog(data EditDialogData) string {
	if !data.Active {
		return ""
	}
	return fmt.Sprintf("edit #%d:\n%s\nkeys: [enter] save [esc] cancel", data.ID, data.InputView)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	var md strings.Builder
	md.WriteString("## Keys\n\n")
	for _, line := range data.Bindings {
		md.WriteString(line + "\n")
	}
	md.WriteString("\n## Commands\n\n")
	md.WriteString("- `add <text> due:YYYY-MM-DD`\n")
	md.WriteString("- `rm <id>`, `done <id>`, `edit <id> <text>`\n")
	md.WriteString("- `clear`, `sort`\n")
	return fmt.Sprintf("help:\n%s\n%s", RenderMarkdown(md.String()), data.HelpView)
}

func markInvalid(view string, invalid bool) string {
	if !invalid {
		return view
	}
	return errorStyle.Render(view + " *")
}
