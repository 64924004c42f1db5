package engine

import "github.com/studyflow/matrixd/internal/model"

const (
	pointsQ1 = 100
	pointsQ2 = 75
	pointsQ3 = 50
	pointsQ4 = 25

	pointsPerRecallCard     = 10
	pointsPerRepetition     = 15
	pointsInterleavingBonus = 20
	pointsPerPomodoro       = 5
)

// ComputePoints scores a task at completion time. Base points follow the
// quadrant's urgency/importance rank; study-technique bonuses stack on top.
// The result is stored once at the incomplete-to-complete transition and is
// not recomputed when bonus source fields change afterwards.
func ComputePoints(task model.Task) int {
	points := 0
	switch task.Quadrant {
	case model.QuadrantUrgentImportant:
		points = pointsQ1
	case model.QuadrantImportantNotUrgent:
		points = pointsQ2
	case model.QuadrantUrgentNotImportant:
		points = pointsQ3
	case model.QuadrantNotUrgentNotImportant:
		points = pointsQ4
	}

	if len(task.ActiveRecall) > 0 {
		points += pointsPerRecallCard * len(task.ActiveRecall)
	}
	if task.SpacedRepetition != nil {
		// Floor of one repetition keeps the first-ever completion rewarded.
		reps := task.SpacedRepetition.RepetitionCount
		if reps < 1 {
			reps = 1
		}
		points += pointsPerRepetition * reps
	}
	if task.Interleaving {
		points += pointsInterleavingBonus
	}
	if task.Pomodoro != nil {
		points += pointsPerPomodoro * task.Pomodoro.Sessions
	}
	return points
}
