package update

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studyflow/matrixd/internal/engine"
	"github.com/studyflow/matrixd/internal/model"
)

func (m Model) handleRecurrenceEditorKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.recurrenceEditor.Active = false
		return m
	case "tab":
		switch m.recurrenceEditor.Interval {
		case model.RecurrenceDaily:
			m.recurrenceEditor.Interval = model.RecurrenceWeekly
		case model.RecurrenceWeekly:
			m.recurrenceEditor.Interval = model.RecurrenceBiweekly
		case model.RecurrenceBiweekly:
			m.recurrenceEditor.Interval = model.RecurrenceMonthly
		case model.RecurrenceMonthly:
			m.recurrenceEditor.Interval = model.RecurrenceCustom
		default:
			m.recurrenceEditor.Interval = model.RecurrenceDaily
		}
		m.computeRecurrencePreview()
	case "enter":
		m.applyRecurrenceToSelected()
	case "backspace":
		if len(m.recurrenceEditor.CustomText) > 0 {
			m.recurrenceEditor.CustomText = m.recurrenceEditor.CustomText[:len(m.recurrenceEditor.CustomText)-1]
			m.computeRecurrencePreview()
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.recurrenceEditor.CustomText += string(msg.Runes)
			m.computeRecurrencePreview()
		}
	}
	return m
}

func (m Model) editorCustomDays() int {
	v := strings.TrimSpace(m.recurrenceEditor.CustomText)
	if v == "" {
		return model.DefaultCustomDays
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return model.DefaultCustomDays
	}
	return parsed
}

func (m *Model) computeRecurrencePreview() {
	interval := model.Recurrence{
		Enabled:    true,
		Interval:   m.recurrenceEditor.Interval,
		CustomDays: m.editorCustomDays(),
	}
	preview, err := interval.Interval.Preview(m.Engine.Now(), interval.CustomDays, 5)
	if err != nil {
		m.recurrenceEditor.Err = err.Error()
		m.recurrenceEditor.Preview = nil
		return
	}
	m.recurrenceEditor.Err = ""
	m.recurrenceEditor.Preview = make([]string, 0, len(preview))
	for _, item := range preview {
		m.recurrenceEditor.Preview = append(m.recurrenceEditor.Preview, item.Format("2006-01-02"))
	}
}

// applyRecurrenceToSelected attaches the edited schedule to the selected
// task and computes its first occurrence.
func (m *Model) applyRecurrenceToSelected() {
	task, ok := m.currentMatrixTask()
	if !ok {
		m.recurrenceEditor.Active = false
		return
	}
	customDays := m.editorCustomDays()
	next, err := m.recurrenceEditor.Interval.Advance(m.Engine.Now(), customDays)
	if err != nil {
		m.recurrenceEditor.Err = err.Error()
		return
	}
	task.Recurrence = &model.Recurrence{
		Enabled:        true,
		Interval:       m.recurrenceEditor.Interval,
		CustomDays:     customDays,
		NextOccurrence: &next,
	}
	m.Tasks = engine.ReplaceTask(m.Tasks, task)
	m.persistTasks()
	m.recurrenceEditor.Active = false
	m.Status = StatusBar{Text: fmt.Sprintf("%q repeats %s, next on %s", task.Title, m.recurrenceEditor.Interval, next.Format("2006-01-02")), IsError: false}
}
