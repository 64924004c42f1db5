// Package engine holds the task scheduling and review-state core: scoring,
// spaced-repetition transitions, recurrence regeneration, interleaving, and
// the derived queries the presentation layer renders. Every function takes
// and returns values; nothing in here touches shared state or the clock
// directly.
package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/studyflow/matrixd/internal/model"
)

// Engine wires the injectable collaborators: a clock, an id source, and a
// notification sink.
type Engine struct {
	Now      func() time.Time
	NewID    func() string
	Notifier Notifier
}

func New() *Engine {
	return &Engine{
		Now:      func() time.Time { return time.Now().UTC() },
		NewID:    uuid.NewString,
		Notifier: NopNotifier{},
	}
}

func (e *Engine) notify(n Notification) {
	if e.Notifier != nil {
		e.Notifier.Notify(n)
	}
}

// CreateTask turns a validated draft into a stored task: it assigns the id
// and creation time and initializes any present sub-schedules so nothing is
// ever due in the past at creation.
func (e *Engine) CreateTask(draft model.Task) (model.Task, error) {
	now := e.Now()
	task := draft.Clone()
	task.ID = e.NewID()
	task.CreatedAt = now
	task.Completed = false
	task.CompletedAt = nil
	task.Points = nil

	if task.SpacedRepetition != nil && task.SpacedRepetition.Enabled {
		rec := InitSpacedRepetition(now)
		task.SpacedRepetition = &rec
	}
	if task.Recurrence != nil && task.Recurrence.Enabled {
		next, err := task.Recurrence.Interval.Advance(now, task.Recurrence.CustomDays)
		if err != nil {
			return model.Task{}, err
		}
		task.Recurrence.NextOccurrence = &next
		task.Recurrence.LastCompleted = nil
	}

	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	e.notify(Notification{
		Kind:        NotifyTaskAdded,
		Title:       "Task added",
		Description: "\"" + task.Title + "\" added to " + task.Quadrant.Label(),
	})
	return task, nil
}

// CompleteTask marks the task done: points are scored from the snapshot
// before the review transition, then the spaced-repetition schedule advances.
// Completing an already-completed task is a no-op.
func (e *Engine) CompleteTask(task model.Task) model.Task {
	if task.Completed {
		return task
	}
	now := e.Now()
	out := task.Clone()
	points := ComputePoints(task)
	out.Completed = true
	out.CompletedAt = &now
	out.Points = &points
	if out.SpacedRepetition != nil && out.SpacedRepetition.Enabled {
		rec := AdvanceReview(*out.SpacedRepetition, now)
		out.SpacedRepetition = &rec
	}
	e.notify(Notification{
		Kind:        NotifyTaskCompleted,
		Title:       "Task completed",
		Description: "\"" + out.Title + "\" earned points",
	})
	return out
}

// UncompleteTask reopens a completed task. Points and the completion stamp
// are always cleared together; the spaced-repetition ratchet stays advanced.
func (e *Engine) UncompleteTask(task model.Task) model.Task {
	if !task.Completed {
		return task
	}
	out := task.Clone()
	out.Completed = false
	out.CompletedAt = nil
	out.Points = nil
	e.notify(Notification{
		Kind:        NotifyTaskUncompleted,
		Title:       "Task reopened",
		Description: "\"" + out.Title + "\" marked incomplete",
	})
	return out
}

// ToggleComplete flips the completion state through the two transitions
// above.
func (e *Engine) ToggleComplete(task model.Task) model.Task {
	if task.Completed {
		return e.UncompleteTask(task)
	}
	return e.CompleteTask(task)
}

// ReplaceTask swaps the task with a matching id in the collection and
// returns the new collection.
func ReplaceTask(tasks []model.Task, updated model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, task := range tasks {
		if task.ID == updated.ID {
			out[i] = updated
			continue
		}
		out[i] = task
	}
	return out
}

// RemoveTask drops the task with the given id, if present.
func RemoveTask(tasks []model.Task, id string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.ID == id {
			continue
		}
		out = append(out, task)
	}
	return out
}

// FindTask looks a task up by id.
func FindTask(tasks []model.Task, id string) (model.Task, bool) {
	for _, task := range tasks {
		if task.ID == id {
			return task, true
		}
	}
	return model.Task{}, false
}
