package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studyflow/matrixd/internal/commands"
	"github.com/studyflow/matrixd/internal/engine"
	"github.com/studyflow/matrixd/internal/model"
	"github.com/studyflow/matrixd/internal/storage"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
		return m, nil
	case "enter":
		input := strings.TrimSpace(m.commandInput.Value())
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.Blur()
		m.runCommand(input)
		return m, nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) runCommand(input string) {
	cmd, err := commands.Parse(input)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	res, err := commands.Execute(cmd, m.commandHandlers())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
}

func (m *Model) commandHandlers() commands.Handlers {
	return commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			quadrant := model.Quadrant(a.Quadrant)
			draft := model.Task{Title: a.Title, Quadrant: quadrant, Subject: a.Subject}
			task, err := m.Engine.CreateTask(draft)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m.Tasks = append(m.Tasks, task)
			m.persistTasks()
			m.notify("Task added", task.Title, "info")
			return commands.Result{Message: fmt.Sprintf("added %q to %s", task.Title, quadrant.Label())}, nil
		},
		Done: func(a commands.DoneArgs) (commands.Result, error) {
			task, ok := m.findByPrefix(a.Target)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task matches %q", a.Target)}
			}
			done := m.Engine.CompleteTask(task)
			m.Tasks = engine.ReplaceTask(m.Tasks, done)
			m.runRecurrenceSweep()
			m.persistTasks()
			return commands.Result{Message: fmt.Sprintf("completed %q (+%d points)", done.Title, pointsOf(done))}, nil
		},
		Undo: func(a commands.UndoArgs) (commands.Result, error) {
			task, ok := m.findByPrefix(a.Target)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task matches %q", a.Target)}
			}
			reopened := m.Engine.UncompleteTask(task)
			m.Tasks = engine.ReplaceTask(m.Tasks, reopened)
			m.persistTasks()
			return commands.Result{Message: fmt.Sprintf("reopened %q", reopened.Title)}, nil
		},
		Show: func(a commands.ShowArgs) (commands.Result, error) {
			matched := m.filterTasks(a)
			if a.Filter == "due" {
				m.CurrentView = ViewReview
			}
			return commands.Result{Message: fmt.Sprintf("%d tasks match %s", len(matched), describeFilter(a))}, nil
		},
		Stats: func(a commands.StatsArgs) (commands.Result, error) {
			m.Stats.Period = engine.Period(a.Period)
			m.CurrentView = ViewStats
			return commands.Result{Message: fmt.Sprintf("showing %s stats", a.Period)}, nil
		},
		Export: func(a commands.ExportArgs) (commands.Result, error) {
			if err := storage.WriteSnapshot(a.Path, m.Tasks); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			return commands.Result{Message: fmt.Sprintf("exported %d tasks to %s", len(m.Tasks), a.Path)}, nil
		},
		Import: func(a commands.ImportArgs) (commands.Result, error) {
			imported, err := storage.ImportSnapshot(a.Path)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			merged := 0
			for _, task := range imported {
				if _, exists := engine.FindTask(m.Tasks, task.ID); exists {
					m.Tasks = engine.ReplaceTask(m.Tasks, task)
					continue
				}
				m.Tasks = append(m.Tasks, task)
				merged++
			}
			m.runRecurrenceSweep()
			m.persistTasks()
			return commands.Result{Message: fmt.Sprintf("imported %d new tasks from %s", merged, a.Path)}, nil
		},
	}
}

// findByPrefix resolves a palette target against task id prefixes, then
// falls back to a case-insensitive title match.
func (m Model) findByPrefix(target string) (model.Task, bool) {
	target = strings.ToLower(strings.TrimSpace(target))
	if target == "" {
		return model.Task{}, false
	}
	for _, task := range m.Tasks {
		if strings.HasPrefix(strings.ToLower(task.ID), target) {
			return task, true
		}
	}
	for _, task := range m.Tasks {
		if strings.HasPrefix(strings.ToLower(task.Title), target) {
			return task, true
		}
	}
	return model.Task{}, false
}

func (m Model) filterTasks(a commands.ShowArgs) []model.Task {
	var base []model.Task
	switch {
	case a.Filter == "due":
		base = engine.DueForReview(m.Tasks, m.Engine.Now())
	case a.Filter == "recurring":
		base = engine.RecurringTasks(m.Tasks)
	case a.Filter == "interleaved":
		base = engine.Interleave(m.Tasks)
	default:
		base = m.tasksInQuadrant(model.Quadrant(a.Filter))
	}
	if a.Subject == "" {
		return base
	}
	out := make([]model.Task, 0, len(base))
	for _, task := range base {
		if strings.EqualFold(task.Subject, a.Subject) {
			out = append(out, task)
		}
	}
	return out
}

func describeFilter(a commands.ShowArgs) string {
	if a.Subject != "" {
		return fmt.Sprintf("%s subject:%s", a.Filter, a.Subject)
	}
	return a.Filter
}
