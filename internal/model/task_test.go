package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Title:     "Review calculus notes",
		Quadrant:  QuadrantImportantNotUrgent,
		Subject:   "math",
		CreatedAt: now,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateCompletedRequiresCompletedAt(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Title:     "Done task",
		Quadrant:  QuadrantUrgentImportant,
		Completed: true,
		CreatedAt: now,
	}
	err := task.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "model: completed_at is required when task is completed" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTaskValidateCompletedAtWithoutCompleted(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	done := now.Add(time.Hour)
	task := Task{
		ID:          "task-1",
		Title:       "Stale completion stamp",
		Quadrant:    QuadrantUrgentImportant,
		CreatedAt:   now,
		CompletedAt: &done,
	}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for completed_at on incomplete task")
	}
}

func TestTaskValidateInvalidQuadrant(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Title:     "Bad quadrant",
		Quadrant:  Quadrant("q5"),
		CreatedAt: now,
	}
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidQuadrant) {
		t.Fatalf("expected ErrInvalidQuadrant, got: %v", err)
	}
}

func TestTaskValidateSpacedRepetitionBounds(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Title:     "Review flashcards",
		Quadrant:  QuadrantImportantNotUrgent,
		CreatedAt: now,
		SpacedRepetition: &SpacedRepetition{
			Enabled:      true,
			IntervalDays: 0,
		},
	}
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidReviewState) {
		t.Fatalf("expected ErrInvalidReviewState for zero interval, got: %v", err)
	}

	task.SpacedRepetition.IntervalDays = 1
	task.SpacedRepetition.RepetitionCount = -1
	err = task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidReviewState) {
		t.Fatalf("expected ErrInvalidReviewState for negative count, got: %v", err)
	}
}

func TestTaskValidatePomodoroDurations(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Title:     "Focused study block",
		Quadrant:  QuadrantUrgentImportant,
		CreatedAt: now,
		Pomodoro:  &PomodoroSettings{WorkDuration: 25, BreakDuration: 0, Sessions: 4},
	}
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidPomodoro) {
		t.Fatalf("expected ErrInvalidPomodoro, got: %v", err)
	}
}

func TestQuadrantLabels(t *testing.T) {
	labels := map[Quadrant]string{
		QuadrantUrgentImportant:       "Urgent & Important",
		QuadrantImportantNotUrgent:    "Important & Not Urgent",
		QuadrantUrgentNotImportant:    "Urgent & Not Important",
		QuadrantNotUrgentNotImportant: "Not Urgent & Not Important",
	}
	for q, want := range labels {
		if got := q.Label(); got != want {
			t.Fatalf("label for %s: got %q want %q", q, got, want)
		}
	}
	if Quadrant("q9").Label() != "Unknown" {
		t.Fatal("expected Unknown label for invalid quadrant")
	}
}

func TestTaskCloneIsDeep(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	next := now.AddDate(0, 0, 1)
	points := 120
	task := Task{
		ID:        "task-1",
		Title:     "Original",
		Quadrant:  QuadrantUrgentImportant,
		CreatedAt: now,
		Points:    &points,
		SpacedRepetition: &SpacedRepetition{
			Enabled:      true,
			IntervalDays: 2,
			NextReview:   &next,
		},
		ActiveRecall: []RecallCard{{Question: "Q", Answer: "A"}},
	}

	clone := task.Clone()
	clone.SpacedRepetition.IntervalDays = 8
	*clone.Points = 999
	clone.ActiveRecall[0].LastPerformance = RecallCorrect

	if task.SpacedRepetition.IntervalDays != 2 {
		t.Fatalf("clone shares spaced repetition record: %d", task.SpacedRepetition.IntervalDays)
	}
	if *task.Points != 120 {
		t.Fatalf("clone shares points pointer: %d", *task.Points)
	}
	if task.ActiveRecall[0].LastPerformance != RecallUnrated {
		t.Fatal("clone shares recall card slice")
	}
}
