package model

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidID = errors.New("model: invalid todo id")
	ErrEmptyText = errors.New("model: todo text is required")
)

// DateLayout is the calendar-date form accepted by the add form and palette.
const DateLayout = "2006-01-02"

const (
	LabelDone    = "done"
	LabelNotDone = "not done"
)

type Todo struct {
	ID        int64
	Text      string
	Completed bool
	DueDate   *time.Time
}

func (t Todo) Validate() error {
	if t.ID <= 0 {
		return ErrInvalidID
	}
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	return nil
}

// IsOverdue reports whether the due date lies strictly before now.
func (t Todo) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now)
}

func (t Todo) StatusLabel() string {
	if t.Completed {
		return LabelDone
	}
	return LabelNotDone
}

// Clone returns a copy that shares no pointers with t.
func (t Todo) Clone() Todo {
	out := t
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	return out
}

// ParseDueDate parses a YYYY-MM-DD form value as midnight UTC, the same
// instant a browser date input yields.
func ParseDueDate(raw string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.UTC)
}

// Progress returns completed/total*100, or 0 for an empty list.
func Progress(todos []Todo) float64 {
	if len(todos) == 0 {
		return 0
	}
	completed := 0
	for _, t := range todos {
		if t.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(todos)) * 100
}

// SortByCompletion orders incomplete todos before completed ones, keeping
// the relative order inside each group.
func SortByCompletion(todos []Todo) {
	sort.SliceStable(todos, func(i, j int) bool {
		return !todos[i].Completed && todos[j].Completed
	})
}

func IndexOf(todos []Todo, id int64) int {
	for i := range todos {
		if todos[i].ID == id {
			return i
		}
	}
	return -1
}

func MaxID(todos []Todo) int64 {
	var out int64
	for _, t := range todos {
		if t.ID > out {
			out = t.ID
		}
	}
	return out
}
