// Package controller owns the todo list. Every mutation is applied in
// memory, persisted as a full snapshot and then re-rendered.
//
// A Controller is not safe for concurrent use; callers serialize access
// (the TUI event loop is the only caller in todod).
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/storage"
)

var ErrNilStore = errors.New("controller: nil store")

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

func WithIDSource(ids IDSource) Option {
	return func(c *Controller) {
		if ids != nil {
			c.ids = ids
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithRenderer(r Renderer) Option {
	return func(c *Controller) {
		if r != nil {
			c.renderers = append(c.renderers, r)
		}
	}
}

type Controller struct {
	store     storage.Store
	todos     []model.Todo
	ids       IDSource
	now       func() time.Time
	logger    *log.Logger
	renderers []Renderer
	last      View
}

func New(store storage.Store, opts ...Option) (*Controller, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	c := &Controller{
		store:  store,
		now:    time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ids == nil {
		c.ids = NewClockIDs(c.now)
	}
	return c, nil
}

// Initialize replaces the in-memory list with the persisted snapshot. An
// absent or malformed snapshot yields an empty list. A store read failure
// also yields an empty list and is returned so the caller can report it.
func (c *Controller) Initialize(ctx context.Context) error {
	c.todos = nil
	var readErr error

	raw, ok, err := c.store.Get(ctx, storage.TodosKey)
	switch {
	case err != nil:
		readErr = fmt.Errorf("controller: read todos: %w", err)
		c.logger.Error("read todos failed, starting empty", "err", err)
	case !ok:
		c.logger.Debug("no saved todos")
	default:
		decoded, decodeErr := storage.DecodeTodos(raw)
		if decodeErr != nil {
			c.logger.Warn("ignoring malformed todos snapshot", "err", decodeErr)
			break
		}
		c.todos = decoded
		c.logger.Info("loaded todos", "count", len(decoded))
	}

	if seeder, ok := c.ids.(Seeder); ok {
		seeder.Seed(model.MaxID(c.todos))
	}
	c.Render()
	return readErr
}

// Add appends a new incomplete todo. Callers validate input first; blank
// text is still refused with model.ErrEmptyText and leaves the list as is.
func (c *Controller) Add(ctx context.Context, text string, dueDate *time.Time) (model.Todo, error) {
	if strings.TrimSpace(text) == "" {
		return model.Todo{}, model.ErrEmptyText
	}
	todo := model.Todo{
		ID:   c.ids.NextID(),
		Text: text,
	}
	if dueDate != nil {
		due := *dueDate
		todo.DueDate = &due
	}
	if err := todo.Validate(); err != nil {
		return model.Todo{}, fmt.Errorf("controller: add todo: %w", err)
	}
	if model.IndexOf(c.todos, todo.ID) >= 0 {
		return model.Todo{}, fmt.Errorf("controller: add todo: id %d in use: %w", todo.ID, model.ErrInvalidID)
	}
	c.todos = append(c.todos, todo)
	c.logger.Debug("todo added", "id", todo.ID)
	return todo.Clone(), c.commit(ctx)
}

// Remove deletes the todo with id. An unknown id still persists and
// re-renders.
func (c *Controller) Remove(ctx context.Context, id int64) error {
	kept := c.todos[:0]
	removed := false
	for _, t := range c.todos {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	c.todos = kept
	if removed {
		c.logger.Debug("todo removed", "id", id)
	}
	return c.commit(ctx)
}

// Edit replaces the text of the todo with id. Blank text or an unknown id
// is a no-op.
func (c *Controller) Edit(ctx context.Context, id int64, newText string) error {
	idx := model.IndexOf(c.todos, id)
	if idx < 0 || strings.TrimSpace(newText) == "" {
		return nil
	}
	c.todos[idx].Text = newText
	c.logger.Debug("todo edited", "id", id)
	return c.commit(ctx)
}

func (c *Controller) ToggleCompleted(ctx context.Context, id int64) error {
	idx := model.IndexOf(c.todos, id)
	if idx < 0 {
		return nil
	}
	c.todos[idx].Completed = !c.todos[idx].Completed
	c.logger.Debug("todo toggled", "id", id, "completed", c.todos[idx].Completed)
	return c.commit(ctx)
}

// RemoveCompleted removes every completed todo through Remove, so the list
// is persisted and rendered once per removed todo.
func (c *Controller) RemoveCompleted(ctx context.Context) error {
	ids := make([]int64, 0)
	for _, t := range c.todos {
		if t.Completed {
			ids = append(ids, t.ID)
		}
	}
	var errs []error
	for _, id := range ids {
		if err := c.Remove(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Controller) SortByCompletion(ctx context.Context) error {
	model.SortByCompletion(c.todos)
	return c.commit(ctx)
}

// Render regenerates the view from the current list and hands it to every
// registered renderer.
func (c *Controller) Render() View {
	v := buildView(c.todos, c.now())
	c.last = v
	for _, r := range c.renderers {
		r.Render(v)
	}
	return v
}

// LastView returns the most recently rendered view.
func (c *Controller) LastView() View {
	return c.last
}

func (c *Controller) Todos() []model.Todo {
	out := make([]model.Todo, 0, len(c.todos))
	for _, t := range c.todos {
		out = append(out, t.Clone())
	}
	return out
}

func (c *Controller) Get(id int64) (model.Todo, bool) {
	idx := model.IndexOf(c.todos, id)
	if idx < 0 {
		return model.Todo{}, false
	}
	return c.todos[idx].Clone(), true
}

func (c *Controller) Len() int {
	return len(c.todos)
}

// commit persists the list and then renders, rendering even when the write
// failed so the screen matches memory.
func (c *Controller) commit(ctx context.Context) error {
	err := c.persist(ctx)
	c.Render()
	return err
}

func (c *Controller) persist(ctx context.Context) error {
	raw, err := storage.EncodeTodos(c.todos)
	if err != nil {
		c.logger.Error("encode todos failed", "err", err)
		return fmt.Errorf("controller: persist todos: %w", err)
	}
	if err := c.store.Set(ctx, storage.TodosKey, raw); err != nil {
		c.logger.Error("persist todos failed", "err", err)
		return fmt.Errorf("controller: persist todos: %w", err)
	}
	return nil
}
