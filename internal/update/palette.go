package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todod/internal/commands"
	"github.com/sandeepkv93/todod/internal/views"
)

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.Focus()
	m.commandInput.SetValue("")
	m.Status = StatusBar{Text: "command palette active", IsError: false}
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.commandInput.CursorEnd()
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m.closePalette()
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			due := a.DueDate
			todo, err := m.ctrl.Add(m.ctx, a.Text, &due)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added #%d", todo.ID)}, nil
		},
		Remove: func(a commands.IDArgs) (commands.Result, error) {
			if err := m.requireTodo(a.ID); err != nil {
				return commands.Result{}, err
			}
			if err := m.ctrl.Remove(m.ctx, a.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("removed #%d", a.ID)}, nil
		},
		Edit: func(a commands.EditArgs) (commands.Result, error) {
			if err := m.requireTodo(a.ID); err != nil {
				return commands.Result{}, err
			}
			if err := m.ctrl.Edit(m.ctx, a.ID, a.Text); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("edited #%d", a.ID)}, nil
		},
		Done: func(a commands.IDArgs) (commands.Result, error) {
			if err := m.requireTodo(a.ID); err != nil {
				return commands.Result{}, err
			}
			if err := m.ctrl.ToggleCompleted(m.ctx, a.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("toggled #%d", a.ID)}, nil
		},
		Clear: func() (commands.Result, error) {
			if err := m.ctrl.RemoveCompleted(m.ctx); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "removed completed todos"}, nil
		},
		Sort: func() (commands.Result, error) {
			if err := m.ctrl.SortByCompletion(m.ctx); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "sorted by completion"}, nil
		},
	})
	m = m.closePalette()
	if err != nil {
		m.logger.Debug("command failed", "input", raw, "err", err)
	}
	return m.afterMutation(err, res.Message)
}

func (m Model) requireTodo(id int64) error {
	if _, ok := m.ctrl.Get(id); !ok {
		return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no todo with id %d", id)}
	}
	return nil
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}
