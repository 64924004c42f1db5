package engine

import (
	"time"

	"github.com/studyflow/matrixd/internal/model"
)

const initialReviewIntervalDays = 1

// InitSpacedRepetition returns the schedule a task starts with when spaced
// repetition is enabled at creation: one-day interval, first review due
// tomorrow, no history.
func InitSpacedRepetition(now time.Time) model.SpacedRepetition {
	next := now.AddDate(0, 0, initialReviewIntervalDays)
	return model.SpacedRepetition{
		Enabled:         true,
		IntervalDays:    initialReviewIntervalDays,
		LastReviewed:    nil,
		NextReview:      &next,
		RepetitionCount: 0,
	}
}

// AdvanceReview applies one successful completion to the schedule: the
// interval doubles, the next review moves out by the new interval, and the
// repetition count grows. There is no shrink path; recall-card grades never
// feed back into the interval.
func AdvanceReview(rec model.SpacedRepetition, now time.Time) model.SpacedRepetition {
	out := rec
	out.IntervalDays = rec.IntervalDays * 2
	next := now.AddDate(0, 0, out.IntervalDays)
	out.LastReviewed = &now
	out.NextReview = &next
	out.RepetitionCount = rec.RepetitionCount + 1
	return out
}

// IsDueForReview reports whether the task should be reviewed now. Completed
// tasks and tasks without a scheduled review are never due.
func IsDueForReview(task model.Task, now time.Time) bool {
	if task.Completed {
		return false
	}
	rec := task.SpacedRepetition
	if rec == nil || !rec.Enabled || rec.NextReview == nil {
		return false
	}
	return now.After(*rec.NextReview)
}

// GradeRecallCard records the outcome of self-testing one card. The returned
// task is a copy; out-of-range indexes leave it unchanged.
func GradeRecallCard(task model.Task, index int, perf model.RecallPerformance) model.Task {
	if index < 0 || index >= len(task.ActiveRecall) {
		return task
	}
	out := task.Clone()
	out.ActiveRecall[index].LastPerformance = perf
	return out
}
