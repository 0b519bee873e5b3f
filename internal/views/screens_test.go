package views

import (
	"strings"
	"testing"
)

func TestRenderTodoItemMarksOverdue(t *testing.T) {
	out := RenderTodoItem(TodoItemData{ID: 7, Text: "pay rent", DueDate: "2025-01-01", Overdue: true, Label: "not done", Selected: true})
	if !strings.HasPrefix(out, "> [ ]") {
		t.Fatalf("expected selected incomplete prefix: %q", out)
	}
	if !strings.Contains(out, OverdueMarker+"2025-01-01 overdue") {
		t.Fatalf("expected overdue marker: %q", out)
	}
	if !strings.Contains(out, "(not done) #7") {
		t.Fatalf("expected label and id: %q", out)
	}
}

func TestRenderTodoItemDueNotOverdue(t *testing.T) {
	out := RenderTodoItem(TodoItemData{ID: 1, Text: "plan trip", DueDate: "2099-06-01", Label: "not done"})
	if !strings.Contains(out, DueMarker+"2099-06-01") {
		t.Fatalf("expected due marker: %q", out)
	}
	if strings.Contains(out, "overdue") {
		t.Fatalf("unexpected overdue marker: %q", out)
	}
}

func TestRenderTodoItemWithoutDueDate(t *testing.T) {
	out := RenderTodoItem(TodoItemData{ID: 3, Text: "stretch", Completed: true, Label: "done"})
	if !strings.Contains(out, "[x]") || !strings.Contains(out, "(done)") {
		t.Fatalf("expected completed rendering: %q", out)
	}
	if strings.Contains(out, DueMarker) || strings.Contains(out, OverdueMarker) {
		t.Fatalf("unexpected due marker: %q", out)
	}
}

func TestRenderTodoListEmptyShowsZeroProgress(t *testing.T) {
	out := RenderTodoList(ListPanelData{})
	if !strings.Contains(out, "(no todos)") {
		t.Fatalf("expected empty placeholder: %q", out)
	}
	if !strings.Contains(out, "0%") {
		t.Fatalf("expected zero progress: %q", out)
	}
}

func TestRenderTodoListProgressRounds(t *testing.T) {
	out := RenderTodoList(ListPanelData{
		Items:       []TodoItemData{{ID: 1, Text: "a", Label: "done", Completed: true}, {ID: 2, Text: "b", Label: "not done"}, {ID: 3, Text: "c", Label: "not done"}},
		ProgressPct: 100.0 / 3,
	})
	if !strings.Contains(out, " 33%") {
		t.Fatalf("expected rounded progress: %q", out)
	}
	if strings.Index(out, "#1") > strings.Index(out, "#2") || strings.Index(out, "#2") > strings.Index(out, "#3") {
		t.Fatalf("items rendered out of order: %q", out)
	}
}

func TestRenderFormShowsValidationMessage(t *testing.T) {
	out := RenderForm(FormData{TextView: "text> ", DateView: "due> ", ErrorText: "fill out ALL fields", TextInvalid: true})
	if !strings.Contains(out, "fill out ALL fields") {
		t.Fatalf("expected validation message: %q", out)
	}
	if !strings.Contains(out, "text>  *") {
		t.Fatalf("expected invalid text marker: %q", out)
	}
}

func TestRenderEditDialogInactive(t *testing.T) {
	if got := RenderEditDialog(EditDialogData{}); got != "" {
		t.Fatalf("expected empty dialog, got %q", got)
	}
	out := RenderEditDialog(EditDialogData{Active: true, ID: 9, InputView: "edit> milk"})
	if !strings.Contains(out, "edit #9") || !strings.Contains(out, "edit> milk") {
		t.Fatalf("unexpected dialog: %q", out)
	}
}

func TestRenderCommandPalette(t *testing.T) {
	if got := RenderCommandPalette(false, "sort"); got != "" {
		t.Fatalf("expected empty palette, got %q", got)
	}
	if got := RenderCommandPalette(true, "sort"); got != "command: /sort" {
		t.Fatalf("unexpected palette: %q", got)
	}
}

func TestRenderAppIncludesPanes(t *testing.T) {
	out := RenderApp(AppData{Header: "todod", LeftPane: "left", RightPane: "right", StatusLine: "status: ok", Footer: "keys"})
	for _, want := range []string{"todod", "left", "right", "status: ok", "keys"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %q", want, out)
		}
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if got := RenderMarkdown("   "); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
