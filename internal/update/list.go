package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/views"
)

func (m Model) handleListKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.currentView().Items)-1 {
			m.Cursor++
		}
	case "a", "tab":
		m = m.focusField(FocusText)
		m.Status = StatusBar{Text: "new todo", IsError: false}
	case " ", "x":
		item, ok := m.selectedItem()
		if !ok {
			return m
		}
		err := m.ctrl.ToggleCompleted(m.ctx, item.ID)
		return m.afterMutation(err, fmt.Sprintf("toggled #%d", item.ID))
	case "d", "delete":
		item, ok := m.selectedItem()
		if !ok {
			return m
		}
		err := m.ctrl.Remove(m.ctx, item.ID)
		return m.afterMutation(err, fmt.Sprintf("removed #%d", item.ID))
	case "e":
		item, ok := m.selectedItem()
		if !ok {
			return m
		}
		return m.openEditDialog(item.ID)
	case "C":
		err := m.ctrl.RemoveCompleted(m.ctx)
		return m.afterMutation(err, "removed completed todos")
	case "s":
		err := m.ctrl.SortByCompletion(m.ctx)
		return m.afterMutation(err, "sorted by completion")
	}
	return m
}

// afterMutation reports the outcome of a controller call and re-arms the
// due watcher with the new list.
func (m Model) afterMutation(err error, okText string) Model {
	m.clampCursor()
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.logger.Error("todo update failed", "err", err)
	} else {
		m.Status = StatusBar{Text: okText, IsError: false}
	}
	m.scheduleDue()
	return m
}

func (m Model) renderListView() string {
	v := m.currentView()
	items := make([]views.TodoItemData, 0, len(v.Items))
	for i, item := range v.Items {
		due := ""
		if item.DueDate != nil {
			due = item.DueDate.Format(model.DateLayout)
		}
		items = append(items, views.TodoItemData{
			ID:        item.ID,
			Text:      item.Text,
			DueDate:   due,
			Overdue:   item.Overdue,
			Completed: item.Completed,
			Label:     item.Label,
			Selected:  m.Focus == FocusList && i == m.Cursor,
		})
	}
	return views.RenderTodoList(views.ListPanelData{
		Items:        items,
		ProgressView: m.progressBar.ViewAs(v.Progress / 100),
		ProgressPct:  v.Progress,
	})
}
