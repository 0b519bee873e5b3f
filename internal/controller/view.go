package controller

import (
	"time"

	"github.com/sandeepkv93/todod/internal/model"
)

// Item is one rendered list entry.
type Item struct {
	ID        int64
	Text      string
	DueDate   *time.Time
	Overdue   bool
	Completed bool
	Label     string
}

// View is the full derived picture of the list at one moment.
type View struct {
	Items      []Item
	Progress   float64
	RenderedAt time.Time
}

type Renderer interface {
	Render(View)
}

type RenderFunc func(View)

func (f RenderFunc) Render(v View) { f(v) }

func buildView(todos []model.Todo, now time.Time) View {
	items := make([]Item, 0, len(todos))
	for _, t := range todos {
		c := t.Clone()
		items = append(items, Item{
			ID:        c.ID,
			Text:      c.Text,
			DueDate:   c.DueDate,
			Overdue:   c.IsOverdue(now),
			Completed: c.Completed,
			Label:     c.StatusLabel(),
		})
	}
	return View{
		Items:      items,
		Progress:   model.Progress(todos),
		RenderedAt: now,
	}
}
