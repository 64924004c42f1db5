package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidQuadrant    = errors.New("model: invalid task quadrant")
	ErrInvalidReviewState = errors.New("model: invalid spaced repetition state")
	ErrInvalidPomodoro    = errors.New("model: invalid pomodoro settings")
)

type Quadrant string

const (
	QuadrantUrgentImportant       Quadrant = "q1"
	QuadrantImportantNotUrgent    Quadrant = "q2"
	QuadrantUrgentNotImportant    Quadrant = "q3"
	QuadrantNotUrgentNotImportant Quadrant = "q4"
)

func (q Quadrant) IsValid() bool {
	switch q {
	case QuadrantUrgentImportant, QuadrantImportantNotUrgent, QuadrantUrgentNotImportant, QuadrantNotUrgentNotImportant:
		return true
	default:
		return false
	}
}

func (q Quadrant) Label() string {
	switch q {
	case QuadrantUrgentImportant:
		return "Urgent & Important"
	case QuadrantImportantNotUrgent:
		return "Important & Not Urgent"
	case QuadrantUrgentNotImportant:
		return "Urgent & Not Important"
	case QuadrantNotUrgentNotImportant:
		return "Not Urgent & Not Important"
	default:
		return "Unknown"
	}
}

// Quadrants lists all quadrants in priority order, q1 first.
func Quadrants() []Quadrant {
	return []Quadrant{
		QuadrantUrgentImportant,
		QuadrantImportantNotUrgent,
		QuadrantUrgentNotImportant,
		QuadrantNotUrgentNotImportant,
	}
}

// PomodoroSettings configures focus sessions for a task. Durations are in
// minutes; the timer itself lives outside the engine.
type PomodoroSettings struct {
	WorkDuration  int `json:"workDuration"`
	BreakDuration int `json:"breakDuration"`
	Sessions      int `json:"sessions"`
}

func (p PomodoroSettings) Validate() error {
	if p.WorkDuration <= 0 {
		return fmt.Errorf("%w: work duration %d", ErrInvalidPomodoro, p.WorkDuration)
	}
	if p.BreakDuration <= 0 {
		return fmt.Errorf("%w: break duration %d", ErrInvalidPomodoro, p.BreakDuration)
	}
	if p.Sessions <= 0 {
		return fmt.Errorf("%w: sessions %d", ErrInvalidPomodoro, p.Sessions)
	}
	return nil
}

// SpacedRepetition tracks the review schedule for a task. IntervalDays
// doubles on every successful completion and never shrinks.
type SpacedRepetition struct {
	Enabled         bool       `json:"enabled"`
	IntervalDays    int        `json:"interval"`
	LastReviewed    *time.Time `json:"lastReviewed"`
	NextReview      *time.Time `json:"nextReview"`
	RepetitionCount int        `json:"repetitionCount"`
}

func (s SpacedRepetition) Validate() error {
	if s.IntervalDays < 1 {
		return fmt.Errorf("%w: interval %d days", ErrInvalidReviewState, s.IntervalDays)
	}
	if s.RepetitionCount < 0 {
		return fmt.Errorf("%w: repetition count %d", ErrInvalidReviewState, s.RepetitionCount)
	}
	return nil
}

// Recurrence regenerates a fresh task instance once the completed original
// passes NextOccurrence.
type Recurrence struct {
	Enabled        bool               `json:"enabled"`
	Interval       RecurrenceInterval `json:"interval"`
	CustomDays     int                `json:"customDays,omitempty"`
	NextOccurrence *time.Time         `json:"nextOccurrence"`
	LastCompleted  *time.Time         `json:"lastCompleted"`
}

func (r Recurrence) Validate() error {
	if !r.Interval.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRecurrenceInterval, r.Interval)
	}
	if r.CustomDays < 0 {
		return fmt.Errorf("%w: custom days %d", ErrInvalidRecurrenceInterval, r.CustomDays)
	}
	return nil
}

type Task struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	Quadrant     Quadrant          `json:"quadrant"`
	Subject      string            `json:"subject,omitempty"`
	Interleaving bool              `json:"interleaving,omitempty"`
	Completed    bool              `json:"completed"`
	Points       *int              `json:"points,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	CompletedAt  *time.Time        `json:"completedAt,omitempty"`
	Pomodoro     *PomodoroSettings `json:"pomodoro,omitempty"`

	SpacedRepetition *SpacedRepetition `json:"spacedRepetition,omitempty"`
	Recurrence       *Recurrence       `json:"recurrence,omitempty"`
	ActiveRecall     []RecallCard      `json:"activeRecall,omitempty"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Quadrant.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidQuadrant, t.Quadrant)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.Completed && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when task is completed")
	}
	if !t.Completed && t.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when task is not completed")
	}
	if t.Pomodoro != nil {
		if err := t.Pomodoro.Validate(); err != nil {
			return err
		}
	}
	if t.SpacedRepetition != nil {
		if err := t.SpacedRepetition.Validate(); err != nil {
			return err
		}
	}
	if t.Recurrence != nil {
		if err := t.Recurrence.Validate(); err != nil {
			return err
		}
	}
	for i, card := range t.ActiveRecall {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("card %d: %w", i, err)
		}
	}
	return nil
}

// Clone returns a deep copy so callers can derive new tasks without sharing
// embedded records with the original.
func (t Task) Clone() Task {
	out := t
	if t.Points != nil {
		p := *t.Points
		out.Points = &p
	}
	out.CompletedAt = cloneTime(t.CompletedAt)
	if t.Pomodoro != nil {
		p := *t.Pomodoro
		out.Pomodoro = &p
	}
	if t.SpacedRepetition != nil {
		s := *t.SpacedRepetition
		s.LastReviewed = cloneTime(t.SpacedRepetition.LastReviewed)
		s.NextReview = cloneTime(t.SpacedRepetition.NextReview)
		out.SpacedRepetition = &s
	}
	if t.Recurrence != nil {
		r := *t.Recurrence
		r.NextOccurrence = cloneTime(t.Recurrence.NextOccurrence)
		r.LastCompleted = cloneTime(t.Recurrence.LastCompleted)
		out.Recurrence = &r
	}
	if t.ActiveRecall != nil {
		out.ActiveRecall = make([]RecallCard, len(t.ActiveRecall))
		copy(out.ActiveRecall, t.ActiveRecall)
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
