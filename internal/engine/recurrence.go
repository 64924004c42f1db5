package engine

import (
	"time"

	"github.com/studyflow/matrixd/internal/model"
)

// Regeneration records one recurrence firing: the original that stays
// completed and the fresh instance spawned from it.
type Regeneration struct {
	OriginalID string
	Spawned    model.Task
}

// RunRecurrenceSweep scans the collection for completed recurring tasks whose
// next occurrence has passed and spawns one successor each. The original
// keeps its completed state and history; its own NextOccurrence is advanced
// past now so an immediate second sweep is a no-op. A task that was stale for
// several periods still produces a single successor per sweep.
func (e *Engine) RunRecurrenceSweep(tasks []model.Task, now time.Time) ([]model.Task, []Regeneration) {
	out := make([]model.Task, 0, len(tasks))
	regens := make([]Regeneration, 0)

	for _, task := range tasks {
		if !recurrenceDue(task, now) {
			out = append(out, task)
			continue
		}

		next, err := task.Recurrence.Interval.Advance(now, task.Recurrence.CustomDays)
		if err != nil {
			// Unknown interval on a stored record: skip this task for the
			// pass rather than aborting the sweep.
			out = append(out, task)
			continue
		}

		spawned := e.spawnSuccessor(task, now, next)

		original := task.Clone()
		original.Recurrence.LastCompleted = &now
		original.Recurrence.NextOccurrence = &next

		out = append(out, original)
		regens = append(regens, Regeneration{OriginalID: task.ID, Spawned: spawned})
	}

	for _, regen := range regens {
		out = append(out, regen.Spawned)
		e.notify(Notification{
			Kind:        NotifyTaskRegenerated,
			Title:       "Task regenerated",
			Description: "\"" + regen.Spawned.Title + "\" is due again",
		})
	}
	return out, regens
}

func recurrenceDue(task model.Task, now time.Time) bool {
	if !task.Completed {
		return false
	}
	rec := task.Recurrence
	if rec == nil || !rec.Enabled || rec.NextOccurrence == nil {
		return false
	}
	return now.After(*rec.NextOccurrence)
}

// spawnSuccessor clones the original's content into a new incomplete task.
// Scoring and review state start over; recall cards keep their text but lose
// their grades.
func (e *Engine) spawnSuccessor(original model.Task, now, next time.Time) model.Task {
	spawned := original.Clone()
	spawned.ID = e.NewID()
	spawned.Completed = false
	spawned.CompletedAt = nil
	spawned.Points = nil
	spawned.CreatedAt = now
	spawned.Recurrence.NextOccurrence = &next
	spawned.Recurrence.LastCompleted = &now
	if spawned.SpacedRepetition != nil && spawned.SpacedRepetition.Enabled {
		rec := InitSpacedRepetition(now)
		spawned.SpacedRepetition = &rec
	}
	for i := range spawned.ActiveRecall {
		spawned.ActiveRecall[i].LastPerformance = model.RecallUnrated
	}
	return spawned
}
