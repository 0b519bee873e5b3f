package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todod/internal/scheduler"
)

// waitForDueCmd reports the engine shutting down as an AppErrorMsg.
func waitForDueCmd(ch <-chan scheduler.DueEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return AppErrorMsg{Err: scheduler.ErrEngineStopped}
		}
		return DueReachedMsg{Event: ev}
	}
}

// scheduleDue replaces the watcher queue with every todo still due in the
// future.
func (m *Model) scheduleDue() {
	if m.Scheduler == nil || m.ctrl == nil {
		return
	}
	pending := scheduler.PendingDue(m.ctrl.Todos(), m.now())
	if err := m.Scheduler.Replace(pending); err != nil {
		m.logger.Warn("due watcher unavailable", "err", err)
		return
	}
	m.logger.Debug("due watcher armed", "pending", len(pending))
}

func (m Model) onDueReached(ev scheduler.DueEvent) (Model, tea.Cmd) {
	m.ctrl.Render()
	m.LastDue = &ev
	if todo, ok := m.ctrl.Get(ev.TodoID); ok && !todo.Completed {
		m.Status = StatusBar{Text: fmt.Sprintf("#%d is now overdue: %s", todo.ID, todo.Text), IsError: false}
	}
	if m.Scheduler != nil {
		return m, waitForDueCmd(m.Scheduler.C())
	}
	return m, nil
}
