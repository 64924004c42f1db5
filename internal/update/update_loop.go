package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studyflow/matrixd/internal/scheduler"
	"github.com/studyflow/matrixd/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForDueCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}

		if m.recurrenceEditor.Active {
			next := m.handleRecurrenceEditorKey(typed)
			return next, nil
		}

		keyStr := typed.String()
		if m.CurrentView == ViewMatrix && m.Matrix.QuickAdd && keyStr != "ctrl+c" {
			return m.handleMatrixKey(typed)
		}

		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Matrix:
			m.CurrentView = ViewMatrix
			m.syncSelectedTask()
			return m, nil
		case m.Keys.Review:
			m.CurrentView = ViewReview
			m.Review.Mode = ReviewModeList
			m.clampReviewCursor()
			return m, nil
		case m.Keys.Focus:
			m.CurrentView = ViewFocus
			m.bootstrapFocusTask()
			return m, nil
		case m.Keys.Stats:
			m.CurrentView = ViewStats
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "S":
			if !m.spinnerActive {
				m.spinnerActive = true
				m.persistTasks()
				m.Status = StatusBar{Text: "save started", IsError: m.Status.IsError}
				return m, tea.Batch(m.saveSpinner.Tick, tea.Tick(time.Second, func(time.Time) tea.Msg { return SetStatusMsg{Text: "save complete", IsError: false} }))
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			if m.Scheduler != nil {
				m.Scheduler.Stop()
			}
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewMatrix:
			return m.handleMatrixKey(typed)
		case ViewReview:
			return m.handleReviewKey(typed)
		case ViewFocus:
			return m.handleFocusKey(typed)
		case ViewStats:
			return m.handleStatsKey(typed)
		}
	case spinner.TickMsg:
		if m.spinnerActive {
			var cmd tea.Cmd
			m.saveSpinner, cmd = m.saveSpinner.Update(typed)
			return m, cmd
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewFocus {
				m.bootstrapFocusTask()
			}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		if strings.Contains(strings.ToLower(typed.Text), "save complete") {
			m.spinnerActive = false
		}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case QuickAddTaskMsg:
		m.addTask(typed.Title, typed.Quadrant, typed.Subject)
		return m, nil
	case FocusTickMsg:
		return m.onFocusTick()
	case DueEventMsg:
		m.applyDueEvent(typed.Event)
		if m.Scheduler != nil {
			return m, waitForDueCmd(m.Scheduler.C())
		}
		return m, nil
	}

	return m, nil
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
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewMatrix:
		leftPane = m.renderMatrixView()
		rightPane = m.renderTaskMetadataPane() + m.renderCommandPalette() + m.renderRecurrenceEditorIfVisible() + m.renderHelpIfVisible()
	case ViewReview:
		leftPane = m.renderReviewView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewFocus:
		leftPane = m.renderFocusView()
		rightPane = m.renderHelpIfVisible()
	case ViewStats:
		leftPane = m.renderStatsView()
		rightPane = m.renderHelpIfVisible()
	}

	notificationView := ""
	if len(m.DueLog) > 0 {
		last := m.DueLog[len(m.DueLog)-1]
		notificationView = fmt.Sprintf("last-due: %s (%s) @ %s", last.Title, last.Kind, last.DueAt.Format("15:04:05"))
	}
	if m.spinnerActive {
		spin := m.saveSpinner.View()
		notificationView = strings.TrimSpace(strings.Join([]string{notificationView, "save: " + spin + " running"}, "\n"))
	}
	notificationView = strings.TrimSpace(strings.Join([]string{
		notificationView,
		strings.TrimSpace(m.renderNotificationsView()),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("matrixd | view: %s | selected: %s", m.CurrentView, m.SelectedTaskID),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notificationView,
		Footer:       fmt.Sprintf("keys: %s matrix | %s review | %s focus | %s stats | / cmd | %s help | %s quit", m.Keys.Matrix, m.Keys.Review, m.Keys.Focus, m.Keys.Stats, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewMatrix, ViewReview, ViewFocus, ViewStats:
		return true
	default:
		return false
	}
}

func waitForDueCmd(ch <-chan scheduler.DueEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return DueEventMsg{Event: ev}
	}
}
