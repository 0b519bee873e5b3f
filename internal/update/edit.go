package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todod/internal/views"
)

func (m Model) openEditDialog(id int64) Model {
	todo, ok := m.ctrl.Get(id)
	if !ok {
		return m
	}
	m.Edit = EditState{Active: true, ID: id}
	m.editInput.SetValue(todo.Text)
	m.editInput.CursorEnd()
	m.editInput.Focus()
	m.Status = StatusBar{Text: fmt.Sprintf("editing #%d", id), IsError: false}
	return m
}

func (m Model) handleEditKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m = m.closeEditDialog()
		m.Status = StatusBar{Text: "edit cancelled", IsError: false}
		return m
	case "enter":
		id := m.Edit.ID
		text := m.editInput.Value()
		m = m.closeEditDialog()
		err := m.ctrl.Edit(m.ctx, id, text)
		return m.afterMutation(err, fmt.Sprintf("edited #%d", id))
	}
	if msg.Type == tea.KeyRunes {
		m.editInput.SetValue(m.editInput.Value() + string(msg.Runes))
		m.editInput.CursorEnd()
		return m
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	_ = cmd
	return m
}

func (m Model) closeEditDialog() Model {
	m.Edit = EditState{}
	m.editInput.SetValue("")
	m.editInput.Blur()
	return m
}

func (m Model) renderEditDialog() string {
	return views.RenderEditDialog(views.EditDialogData{
		Active:    m.Edit.Active,
		ID:        m.Edit.ID,
		InputView: m.editInput.View(),
	})
}
