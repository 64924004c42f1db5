package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studyflow/matrixd/internal/engine"
	"github.com/studyflow/matrixd/internal/views"
)

func (m Model) handleFocusKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if m.Focus.Running {
			m.Focus.Running = false
			m.Status = StatusBar{Text: "focus paused", IsError: false}
			return m, nil
		}
		if m.Focus.RemainingSec <= 0 {
			m.Focus.RemainingSec = m.currentFocusTotal()
		}
		m.Focus.Running = true
		m.Status = StatusBar{Text: "focus running", IsError: false}
		return m, focusTickCmd()
	case "r":
		m.Focus.Running = false
		m.Focus.RemainingSec = m.currentFocusTotal()
		m.Status = StatusBar{Text: "focus reset", IsError: false}
		return m, nil
	case "n":
		m.completeFocusPhase()
		return m, nil
	}
	return m, nil
}

func (m Model) onFocusTick() (tea.Model, tea.Cmd) {
	if !m.Focus.Running {
		return m, nil
	}
	if m.Focus.RemainingSec > 0 {
		m.Focus.RemainingSec--
	}
	if m.Focus.RemainingSec == 0 {
		m.Focus.Running = false
		if m.Focus.Phase == FocusPhaseWork {
			m.Status = StatusBar{Text: "work session complete; press n to start break", IsError: false}
		} else {
			m.Status = StatusBar{Text: "break complete; press n for next session", IsError: false}
		}
		return m, nil
	}
	return m, focusTickCmd()
}

// bootstrapFocusTask binds the timer to the selected task and takes the
// work/break durations from its pomodoro settings when present.
func (m *Model) bootstrapFocusTask() {
	task, ok := engine.FindTask(m.Tasks, m.SelectedTaskID)
	if !ok {
		return
	}
	if m.Focus.TaskID == task.ID {
		return
	}
	m.Focus.TaskID = task.ID
	m.Focus.TaskTitle = task.Title
	m.Focus.CompletedSessions = 0
	m.Focus.Phase = FocusPhaseWork
	m.Focus.Running = false
	if task.Pomodoro != nil {
		m.Focus.WorkDurationSec = task.Pomodoro.WorkDuration * 60
		m.Focus.BreakDurationSec = task.Pomodoro.BreakDuration * 60
		m.Focus.TargetSessions = task.Pomodoro.Sessions
	}
	m.Focus.RemainingSec = m.Focus.WorkDurationSec
}

func (m *Model) completeFocusPhase() {
	if m.Focus.Phase == FocusPhaseWork {
		m.Focus.CompletedSessions++
		if m.Focus.TargetSessions > 0 && m.Focus.CompletedSessions >= m.Focus.TargetSessions {
			m.completeFocusTask()
			return
		}
		m.Focus.Phase = FocusPhaseBreak
		m.Focus.RemainingSec = m.Focus.BreakDurationSec
		m.Focus.Running = false
		m.Status = StatusBar{Text: "break ready", IsError: false}
		return
	}
	m.Focus.Phase = FocusPhaseWork
	m.Focus.RemainingSec = m.Focus.WorkDurationSec
	m.Focus.Running = false
	m.Status = StatusBar{Text: "work session ready", IsError: false}
}

// completeFocusTask marks the focused task done after the final session.
func (m *Model) completeFocusTask() {
	m.Focus.Running = false
	m.Focus.Phase = FocusPhaseWork
	m.Focus.RemainingSec = m.Focus.WorkDurationSec

	task, ok := engine.FindTask(m.Tasks, m.Focus.TaskID)
	if !ok || task.Completed {
		m.Status = StatusBar{Text: "all sessions done", IsError: false}
		return
	}
	done := m.Engine.CompleteTask(task)
	m.Tasks = engine.ReplaceTask(m.Tasks, done)
	m.runRecurrenceSweep()
	m.persistTasks()
	points := pointsOf(done)
	m.notify("Task completed", fmt.Sprintf("%s (+%d pts)", done.Title, points), "info")
	m.Status = StatusBar{Text: fmt.Sprintf("all sessions done, completed %q (+%d points)", done.Title, points), IsError: false}
}

func (m Model) currentFocusTotal() int {
	if m.Focus.Phase == FocusPhaseBreak {
		return m.Focus.BreakDurationSec
	}
	return m.Focus.WorkDurationSec
}

func (m Model) renderFocusView() string {
	total := m.currentFocusTotal()
	pct := 0.0
	if total > 0 {
		pct = 1 - float64(m.Focus.RemainingSec)/float64(total)
	}
	return views.RenderFocusPanel(views.FocusPanelData{
		TaskTitle:         m.Focus.TaskTitle,
		Phase:             string(m.Focus.Phase),
		Timer:             formatDuration(m.Focus.RemainingSec),
		ProgressView:      m.focusProgress.ViewAs(pct),
		CompletedSessions: m.Focus.CompletedSessions,
		TargetSessions:    m.Focus.TargetSessions,
		ShowEndPrompt:     !m.Focus.Running && m.Focus.RemainingSec == 0,
	})
}

func focusTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return FocusTickMsg{} })
}
