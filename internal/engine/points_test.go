package engine

import (
	"testing"

	"github.com/studyflow/matrixd/internal/model"
)

func TestComputePointsBaseByQuadrant(t *testing.T) {
	want := map[model.Quadrant]int{
		model.QuadrantUrgentImportant:       100,
		model.QuadrantImportantNotUrgent:    75,
		model.QuadrantUrgentNotImportant:    50,
		model.QuadrantNotUrgentNotImportant: 25,
	}
	for quadrant, expected := range want {
		got := ComputePoints(model.Task{Quadrant: quadrant})
		if got != expected {
			t.Fatalf("base points for %s: got %d want %d", quadrant, got, expected)
		}
	}
}

func TestComputePointsRecallCardBonus(t *testing.T) {
	task := model.Task{
		Quadrant: model.QuadrantUrgentImportant,
		ActiveRecall: []model.RecallCard{
			{Question: "Q1", Answer: "A1"},
			{Question: "Q2", Answer: "A2"},
		},
	}
	if got := ComputePoints(task); got != 120 {
		t.Fatalf("expected 120 points for q1 with two cards, got %d", got)
	}
}

func TestComputePointsRepetitionFloor(t *testing.T) {
	task := model.Task{
		Quadrant:         model.QuadrantImportantNotUrgent,
		SpacedRepetition: &model.SpacedRepetition{Enabled: true, IntervalDays: 1},
	}
	// First-ever completion still earns the review bonus.
	if got := ComputePoints(task); got != 75+15 {
		t.Fatalf("expected floor-of-one repetition bonus, got %d", got)
	}

	task.SpacedRepetition.RepetitionCount = 3
	if got := ComputePoints(task); got != 75+45 {
		t.Fatalf("expected 45-point bonus for three repetitions, got %d", got)
	}
}

func TestComputePointsInterleavingAndPomodoro(t *testing.T) {
	task := model.Task{
		Quadrant:     model.QuadrantNotUrgentNotImportant,
		Interleaving: true,
		Pomodoro:     &model.PomodoroSettings{WorkDuration: 25, BreakDuration: 5, Sessions: 4},
	}
	if got := ComputePoints(task); got != 25+20+20 {
		t.Fatalf("expected stacked interleaving and pomodoro bonuses, got %d", got)
	}
}

func TestComputePointsMonotonicInBonusSources(t *testing.T) {
	base := model.Task{Quadrant: model.QuadrantUrgentImportant}
	prev := ComputePoints(base)
	for cards := 1; cards <= 4; cards++ {
		task := base
		task.ActiveRecall = make([]model.RecallCard, cards)
		got := ComputePoints(task)
		if got <= prev {
			t.Fatalf("points not increasing with card count %d: %d <= %d", cards, got, prev)
		}
		prev = got
	}
}
