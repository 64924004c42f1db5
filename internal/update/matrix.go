package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studyflow/matrixd/internal/engine"
	"github.com/studyflow/matrixd/internal/model"
	"github.com/studyflow/matrixd/internal/views"
)

func (m Model) tasksInQuadrant(q model.Quadrant) []model.Task {
	out := make([]model.Task, 0)
	for _, task := range m.Tasks {
		if task.Quadrant == q {
			out = append(out, task)
		}
	}
	return out
}

func (m Model) currentMatrixTask() (model.Task, bool) {
	tasks := m.tasksInQuadrant(m.Matrix.Quadrant)
	if len(tasks) == 0 {
		return model.Task{}, false
	}
	cursor := m.Matrix.Cursor
	if cursor >= len(tasks) {
		cursor = len(tasks) - 1
	}
	return tasks[cursor], true
}

func (m *Model) clampMatrixCursor() {
	count := len(m.tasksInQuadrant(m.Matrix.Quadrant))
	if count == 0 {
		m.Matrix.Cursor = 0
		return
	}
	if m.Matrix.Cursor >= count {
		m.Matrix.Cursor = count - 1
	}
	if m.Matrix.Cursor < 0 {
		m.Matrix.Cursor = 0
	}
}

func (m *Model) syncSelectedTask() {
	if task, ok := m.currentMatrixTask(); ok {
		m.SelectedTaskID = task.ID
		return
	}
	m.SelectedTaskID = ""
}

func (m Model) handleMatrixKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Matrix.QuickAdd {
		return m.handleQuickAddKey(msg)
	}

	switch msg.String() {
	case "j", "down":
		m.Matrix.Cursor++
		m.clampMatrixCursor()
		m.syncSelectedTask()
	case "k", "up":
		m.Matrix.Cursor--
		m.clampMatrixCursor()
		m.syncSelectedTask()
	case "h", "left":
		m.Matrix.Quadrant = previousQuadrant(m.Matrix.Quadrant)
		m.Matrix.Cursor = 0
		m.syncSelectedTask()
	case "l", "right", "tab":
		m.Matrix.Quadrant = nextQuadrant(m.Matrix.Quadrant)
		m.Matrix.Cursor = 0
		m.syncSelectedTask()
	case "a":
		m.Matrix.QuickAdd = true
		m.quickAddInput.Focus()
		m.quickAddInput.SetValue("")
		m.Status = StatusBar{Text: fmt.Sprintf("adding to %s", m.Matrix.Quadrant.Label()), IsError: false}
	case " ", "enter":
		m.toggleSelectedComplete()
	case "x":
		m.deleteSelectedTask()
	case "i":
		m.toggleSelectedInterleaving()
	case "R":
		if _, ok := m.currentMatrixTask(); ok {
			m.recurrenceEditor.Active = true
			m.recurrenceEditor.Err = ""
			m.recurrenceEditor.Preview = nil
		}
	}
	return m, nil
}

func (m Model) handleQuickAddKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Matrix.QuickAdd = false
		m.quickAddInput.Blur()
		m.Status = StatusBar{Text: "quick add cancelled", IsError: false}
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.quickAddInput.Value())
		m.Matrix.QuickAdd = false
		m.quickAddInput.Blur()
		if title == "" {
			m.Status = StatusBar{Text: "empty title, nothing added", IsError: true}
			return m, nil
		}
		m.addTask(title, m.Matrix.Quadrant, "")
		return m, nil
	}
	var cmd tea.Cmd
	m.quickAddInput, cmd = m.quickAddInput.Update(msg)
	return m, cmd
}

func (m *Model) addTask(title string, quadrant model.Quadrant, subject string) {
	draft := model.Task{
		Title:    title,
		Quadrant: quadrant,
		Subject:  subject,
	}
	task, err := m.Engine.CreateTask(draft)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Tasks = append(m.Tasks, task)
	m.persistTasks()
	m.notify("Task added", task.Title, "info")
	m.Status = StatusBar{Text: fmt.Sprintf("added %q to %s", task.Title, quadrant.Label()), IsError: false}
}

func (m *Model) toggleSelectedComplete() {
	task, ok := m.currentMatrixTask()
	if !ok {
		return
	}
	toggled := m.Engine.ToggleComplete(task)
	m.Tasks = engine.ReplaceTask(m.Tasks, toggled)
	if toggled.Completed {
		m.runRecurrenceSweep()
		points := 0
		if toggled.Points != nil {
			points = *toggled.Points
		}
		m.notify("Task completed", fmt.Sprintf("%s (+%d pts)", toggled.Title, points), "info")
		m.Status = StatusBar{Text: fmt.Sprintf("completed %q, +%d points", toggled.Title, points), IsError: false}
	} else {
		m.notify("Task reopened", toggled.Title, "info")
		m.Status = StatusBar{Text: fmt.Sprintf("reopened %q", toggled.Title), IsError: false}
	}
	m.persistTasks()
	m.clampMatrixCursor()
	m.syncSelectedTask()
}

func (m *Model) deleteSelectedTask() {
	task, ok := m.currentMatrixTask()
	if !ok {
		return
	}
	m.Tasks = engine.RemoveTask(m.Tasks, task.ID)
	m.persistTasks()
	m.notify("Task deleted", task.Title, "info")
	m.Status = StatusBar{Text: fmt.Sprintf("deleted %q", task.Title), IsError: false}
	m.clampMatrixCursor()
	m.syncSelectedTask()
}

func (m *Model) toggleSelectedInterleaving() {
	task, ok := m.currentMatrixTask()
	if !ok {
		return
	}
	task.Interleaving = !task.Interleaving
	m.Tasks = engine.ReplaceTask(m.Tasks, task)
	m.persistTasks()
	state := "off"
	if task.Interleaving {
		state = "on"
	}
	m.Status = StatusBar{Text: fmt.Sprintf("interleaving %s for %q", state, task.Title), IsError: false}
}

func (m Model) renderMatrixView() string {
	quadrants := make([]views.QuadrantData, 0, 4)
	for _, q := range model.Quadrants() {
		tasks := m.tasksInQuadrant(q)
		items := make([]views.TaskItemData, 0, len(tasks))
		for i, task := range tasks {
			items = append(items, views.TaskItemData{
				ID:        task.ID,
				Title:     task.Title,
				Subject:   task.Subject,
				Completed: task.Completed,
				Points:    pointsOf(task),
				Flags:     taskFlags(task, m.Engine.Now()),
				Selected:  q == m.Matrix.Quadrant && i == m.Matrix.Cursor,
			})
		}
		quadrants = append(quadrants, views.QuadrantData{
			Name:   string(q),
			Label:  q.Label(),
			Active: q == m.Matrix.Quadrant,
			Items:  items,
		})
	}

	quickAdd := ""
	if m.Matrix.QuickAdd {
		quickAdd = m.quickAddInput.View()
	}
	return views.RenderMatrixPanel(views.MatrixPanelData{
		Quadrants:    quadrants,
		QuickAddView: quickAdd,
	})
}

func (m Model) renderTaskMetadataPane() string {
	task, ok := m.currentMatrixTask()
	if !ok {
		return views.RenderTaskMetadataPane(views.TaskMetadataData{})
	}
	data := views.TaskMetadataData{
		SelectedID:  task.ID,
		Title:       task.Title,
		Description: task.Description,
		Subject:     task.Subject,
		Points:      pointsOf(task),
		Flags:       taskFlags(task, m.Engine.Now()),
	}
	if task.SpacedRepetition != nil && task.SpacedRepetition.NextReview != nil {
		data.NextReview = task.SpacedRepetition.NextReview.Format("2006-01-02")
	}
	if task.Recurrence != nil && task.Recurrence.NextOccurrence != nil {
		data.NextOccurrence = task.Recurrence.NextOccurrence.Format("2006-01-02")
	}
	data.RecallCards = len(task.ActiveRecall)
	return views.RenderTaskMetadataPane(data)
}

func nextQuadrant(q model.Quadrant) model.Quadrant {
	all := model.Quadrants()
	for i, cur := range all {
		if cur == q {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func previousQuadrant(q model.Quadrant) model.Quadrant {
	all := model.Quadrants()
	for i, cur := range all {
		if cur == q {
			return all[(i+len(all)-1)%len(all)]
		}
	}
	return all[0]
}

func pointsOf(task model.Task) int {
	if task.Points == nil {
		return 0
	}
	return *task.Points
}
