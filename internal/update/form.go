package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/views"
)

func (m Model) handleFormKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		return m.focusList()
	case "tab":
		if m.Focus == FocusText {
			return m.focusField(FocusDate)
		}
		return m.focusList()
	case "shift+tab":
		if m.Focus == FocusDate {
			return m.focusField(FocusText)
		}
		return m.focusList()
	case "enter":
		return m.submitForm()
	}

	input := &m.textInput
	if m.Focus == FocusDate {
		input = &m.dateInput
	}
	if msg.Type == tea.KeyRunes {
		input.SetValue(input.Value() + string(msg.Runes))
		input.CursorEnd()
		return m
	}
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	_ = cmd
	return m
}

// submitForm adds a todo when both fields are filled and the date parses.
// Otherwise the form keeps its values and shows FormErrorText.
func (m Model) submitForm() Model {
	text := strings.TrimSpace(m.textInput.Value())
	rawDate := strings.TrimSpace(m.dateInput.Value())
	due, dateErr := model.ParseDueDate(rawDate)

	m.Form.TextInvalid = text == ""
	m.Form.DateInvalid = rawDate == "" || dateErr != nil
	if m.Form.TextInvalid || m.Form.DateInvalid {
		m.Form.Err = FormErrorText
		m.logger.Debug("form rejected", "text_missing", m.Form.TextInvalid, "date_invalid", m.Form.DateInvalid)
		return m
	}

	m.Form = FormState{}
	todo, err := m.ctrl.Add(m.ctx, text, &due)
	m.textInput.Reset()
	m.dateInput.Reset()
	m = m.focusField(FocusText)
	m.Cursor = len(m.currentView().Items) - 1
	return m.afterMutation(err, fmt.Sprintf("added #%d", todo.ID))
}

func (m Model) focusField(f Focus) Model {
	m.Focus = f
	m.textInput.Blur()
	m.dateInput.Blur()
	switch f {
	case FocusText:
		m.textInput.Focus()
	case FocusDate:
		m.dateInput.Focus()
	}
	return m
}

func (m Model) focusList() Model {
	return m.focusField(FocusList)
}

func (m Model) renderForm() string {
	return views.RenderForm(views.FormData{
		TextView:    m.textInput.View(),
		DateView:    m.dateInput.View(),
		ErrorText:   m.Form.Err,
		TextInvalid: m.Form.TextInvalid,
		DateInvalid: m.Form.DateInvalid,
	})
}
