package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/studyflow/matrixd/internal/model"
)

var ErrInvalidPeriod = errors.New("engine: invalid analysis period")

// Period selects the date window for analytics aggregation.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

func (p Period) IsValid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	default:
		return false
	}
}

// Periods lists all analysis periods from narrowest to widest.
func Periods() []Period {
	return []Period{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly}
}

// DateRange is a closed interval over timestamps.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Range returns the calendar window containing now. Weeks start on Monday.
func (p Period) Range(now time.Time) (DateRange, error) {
	y, m, d := now.Date()
	loc := now.Location()
	switch p {
	case PeriodDaily:
		start := time.Date(y, m, d, 0, 0, 0, 0, loc)
		return DateRange{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Nanosecond)}, nil
	case PeriodWeekly:
		offset := (int(now.Weekday()) + 6) % 7
		start := time.Date(y, m, d, 0, 0, 0, 0, loc).AddDate(0, 0, -offset)
		return DateRange{Start: start, End: start.AddDate(0, 0, 7).Add(-time.Nanosecond)}, nil
	case PeriodMonthly:
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return DateRange{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}, nil
	case PeriodYearly:
		start := time.Date(y, 1, 1, 0, 0, 0, 0, loc)
		return DateRange{Start: start, End: start.AddDate(1, 0, 0).Add(-time.Nanosecond)}, nil
	default:
		return DateRange{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, p)
	}
}

// DueForReview returns the tasks matching the spaced-repetition due
// predicate, preserving input order.
func DueForReview(tasks []model.Task, now time.Time) []model.Task {
	out := make([]model.Task, 0)
	for _, task := range tasks {
		if IsDueForReview(task, now) {
			out = append(out, task)
		}
	}
	return out
}

// RecurringTasks returns the tasks carrying an enabled recurrence record.
func RecurringTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0)
	for _, task := range tasks {
		if task.Recurrence != nil && task.Recurrence.Enabled {
			out = append(out, task)
		}
	}
	return out
}

// PendingInRange returns incomplete tasks created within the range.
func PendingInRange(tasks []model.Task, r DateRange) []model.Task {
	out := make([]model.Task, 0)
	for _, task := range tasks {
		if task.Completed {
			continue
		}
		if r.Contains(task.CreatedAt) {
			out = append(out, task)
		}
	}
	return out
}

// CompletedInRange returns tasks completed within the range.
func CompletedInRange(tasks []model.Task, r DateRange) []model.Task {
	out := make([]model.Task, 0)
	for _, task := range tasks {
		if !task.Completed || task.CompletedAt == nil {
			continue
		}
		if r.Contains(*task.CompletedAt) {
			out = append(out, task)
		}
	}
	return out
}

// Analytics aggregates completion and scoring activity for one date window.
type Analytics struct {
	CompletedTasks   int
	PendingTasks     int
	TotalPoints      int
	PointsByQuadrant map[model.Quadrant]int
	TasksByQuadrant  map[model.Quadrant]int
}

// Summarize computes period analytics: completions and stored points are
// bucketed by quadrant, pending counts tasks created in the window that are
// still open.
func Summarize(tasks []model.Task, r DateRange) Analytics {
	out := Analytics{
		PointsByQuadrant: make(map[model.Quadrant]int, 4),
		TasksByQuadrant:  make(map[model.Quadrant]int, 4),
	}
	for _, q := range model.Quadrants() {
		out.PointsByQuadrant[q] = 0
		out.TasksByQuadrant[q] = 0
	}

	out.PendingTasks = len(PendingInRange(tasks, r))
	for _, task := range CompletedInRange(tasks, r) {
		out.CompletedTasks++
		points := 0
		if task.Points != nil {
			points = *task.Points
		}
		out.TotalPoints += points
		out.PointsByQuadrant[task.Quadrant] += points
		out.TasksByQuadrant[task.Quadrant]++
	}
	return out
}
