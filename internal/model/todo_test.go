package model

import (
	"errors"
	"testing"
	"time"
)

func TestTodoValidateSuccess(t *testing.T) {
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	todo := Todo{ID: 1736000000000, Text: "Buy milk", DueDate: &due}
	if err := todo.Validate(); err != nil {
		t.Fatalf("expected valid todo, got error: %v", err)
	}
}

func TestTodoValidateErrors(t *testing.T) {
	todo := Todo{ID: 0, Text: "x"}
	if err := todo.Validate(); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got: %v", err)
	}
	todo = Todo{ID: 1, Text: "   "}
	if err := todo.Validate(); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got: %v", err)
	}
}

func TestTodoIsOverdue(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Millisecond)
	future := now.Add(time.Hour)

	if (Todo{}).IsOverdue(now) {
		t.Fatal("todo without due date must not be overdue")
	}
	if !(Todo{DueDate: &past}).IsOverdue(now) {
		t.Fatal("expected past due date to be overdue")
	}
	if (Todo{DueDate: &now}).IsOverdue(now) {
		t.Fatal("due exactly now is not strictly before now")
	}
	if (Todo{DueDate: &future}).IsOverdue(now) {
		t.Fatal("future due date must not be overdue")
	}
}

func TestStatusLabel(t *testing.T) {
	if got := (Todo{Completed: true}).StatusLabel(); got != LabelDone {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := (Todo{}).StatusLabel(); got != LabelNotDone {
		t.Fatalf("unexpected label: %q", got)
	}
}

func TestCloneDetachesDueDate(t *testing.T) {
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	orig := Todo{ID: 1, Text: "a", DueDate: &due}
	cp := orig.Clone()
	*cp.DueDate = cp.DueDate.AddDate(1, 0, 0)
	if !orig.DueDate.Equal(due) {
		t.Fatalf("clone shares due date pointer: %v", orig.DueDate)
	}
}

func TestParseDueDate(t *testing.T) {
	got, err := ParseDueDate(" 2025-01-01 ")
	if err != nil {
		t.Fatalf("parse due date: %v", err)
	}
	if !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", got)
	}
	if _, err := ParseDueDate("01/01/2025"); err == nil {
		t.Fatal("expected error for non ISO date")
	}
}

func TestProgress(t *testing.T) {
	if got := Progress(nil); got != 0 {
		t.Fatalf("expected 0 for empty list, got %v", got)
	}
	todos := []Todo{{ID: 1, Completed: true}, {ID: 2}, {ID: 3}, {ID: 4, Completed: true}}
	if got := Progress(todos); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
	todos = []Todo{{ID: 1, Completed: true}}
	if got := Progress(todos); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
}

func TestSortByCompletionStableAndIdempotent(t *testing.T) {
	todos := []Todo{
		{ID: 1, Completed: true},
		{ID: 2},
		{ID: 3, Completed: true},
		{ID: 4},
	}
	SortByCompletion(todos)
	wantIDs := []int64{2, 4, 1, 3}
	for i, id := range wantIDs {
		if todos[i].ID != id {
			t.Fatalf("position %d: got id %d, want %d", i, todos[i].ID, id)
		}
	}

	SortByCompletion(todos)
	for i, id := range wantIDs {
		if todos[i].ID != id {
			t.Fatalf("second sort changed order at %d: got %d, want %d", i, todos[i].ID, id)
		}
	}
}

func TestIndexOfAndMaxID(t *testing.T) {
	todos := []Todo{{ID: 5}, {ID: 9}, {ID: 7}}
	if got := IndexOf(todos, 9); got != 1 {
		t.Fatalf("unexpected index: %d", got)
	}
	if got := IndexOf(todos, 42); got != -1 {
		t.Fatalf("expected -1 for missing id, got %d", got)
	}
	if got := MaxID(todos); got != 9 {
		t.Fatalf("unexpected max id: %d", got)
	}
	if got := MaxID(nil); got != 0 {
		t.Fatalf("expected 0 for empty list, got %d", got)
	}
}
