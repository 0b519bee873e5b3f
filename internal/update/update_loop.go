package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todod/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		m.scheduleDue()
		return waitForDueCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.Status
	next, cmd := m.route(msg)
	return next.expireStatus(before, cmd)
}

func (m Model) route(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}
		if m.Edit.Active {
			return m.handleEditKey(typed), nil
		}
		if m.Focus != FocusList {
			return m.handleFormKey(typed), nil
		}

		switch typed.String() {
		case "/":
			return m.openPalette(), nil
		case m.Keys.Help:
			return m.toggleHelp(), nil
		case "pgup", "pgdown":
			if m.HelpVisible {
				var cmd tea.Cmd
				m.helpViewport, cmd = m.helpViewport.Update(typed)
				return m, cmd
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleListKey(typed), nil
	case tea.WindowSizeMsg:
		if h := typed.Height - 10; h > 4 {
			m.helpViewport.Height = h
		}
		return m, nil
	case ClearStatusMsg:
		if typed.Seq == m.statusSeq && !m.Status.IsError {
			m.Status = StatusBar{}
		}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case DueReachedMsg:
		return m.onDueReached(typed.Event)
	}

	return m, nil
}

// expireStatus arms a clear tick when the status bar gained a new
// non-error message. Errors stay until something replaces them.
func (m Model) expireStatus(before StatusBar, cmd tea.Cmd) (Model, tea.Cmd) {
	if m.Status == before || m.Status.Text == "" || m.Status.IsError || m.statusTTL <= 0 {
		return m, cmd
	}
	m.statusSeq++
	return m, tea.Batch(cmd, clearStatusAfter(m.statusTTL, m.statusSeq))
}

func clearStatusAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	right := make([]string, 0, 4)
	for _, pane := range []string{m.renderForm(), m.renderEditDialog(), m.renderCommandPalette(), m.renderHelpIfVisible()} {
		if strings.TrimSpace(pane) != "" {
			right = append(right, pane)
		}
	}

	selected := "-"
	if item, ok := m.selectedItem(); ok {
		selected = fmt.Sprintf("#%d", item.ID)
	}
	v := m.currentView()
	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("todod | todos: %d | done: %.0f%% | selected: %s", len(v.Items), v.Progress, selected),
		LeftPane:   m.renderListView(),
		RightPane:  strings.Join(right, "\n\n"),
		StatusLine: status,
		IsError:    m.Status.IsError,
		Footer:     fmt.Sprintf("keys: a add | space done | e edit | d rm | C clear | s sort | / cmd | %s help | %s quit", m.Keys.Help, m.Keys.Quit),
	})
}
