package scheduler

import (
	"testing"
	"time"

	"github.com/studyflow/matrixd/internal/model"
)

func TestEngineEmitsInDueOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(DueEvent{TaskID: "later", Kind: DueReview, DueAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(DueEvent{TaskID: "sooner", Kind: DueOccurrence, DueAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.TaskID != "sooner" || second.TaskID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.TaskID, second.TaskID)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(DueEvent{
			TaskID: "evt",
			Kind:   DueReview,
			DueAt:  now,
		}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesDueTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(DueEvent{TaskID: "bad"}); err != ErrInvalidDueTime {
		t.Fatalf("expected ErrInvalidDueTime, got %v", err)
	}
}

func TestEventsForTasksCollectsFutureDates(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tasks := []model.Task{
		{
			ID: "review-soon", Title: "Review soon",
			SpacedRepetition: &model.SpacedRepetition{Enabled: true, IntervalDays: 1, NextReview: &future},
		},
		{
			ID: "already-due", Title: "Already due",
			SpacedRepetition: &model.SpacedRepetition{Enabled: true, IntervalDays: 1, NextReview: &past},
		},
		{
			ID: "done", Title: "Done", Completed: true,
			SpacedRepetition: &model.SpacedRepetition{Enabled: true, IntervalDays: 1, NextReview: &future},
		},
		{
			ID: "recurring", Title: "Recurring",
			Recurrence: &model.Recurrence{Enabled: true, Interval: model.RecurrenceDaily, NextOccurrence: &future},
		},
	}

	events := EventsForTasks(tasks, now)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d: %#v", len(events), events)
	}
	kinds := map[string]DueKind{}
	for _, ev := range events {
		kinds[ev.TaskID] = ev.Kind
	}
	if kinds["review-soon"] != DueReview {
		t.Fatalf("review event missing: %#v", kinds)
	}
	if kinds["recurring"] != DueOccurrence {
		t.Fatalf("occurrence event missing: %#v", kinds)
	}
}

func TestResetReplacesQueue(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	stale := now.Add(time.Hour)
	if err := engine.Schedule(DueEvent{TaskID: "stale", Kind: DueReview, DueAt: stale}); err != nil {
		t.Fatalf("schedule stale: %v", err)
	}

	soon := now.Add(30 * time.Millisecond)
	tasks := []model.Task{
		{
			ID: "fresh", Title: "Fresh",
			SpacedRepetition: &model.SpacedRepetition{Enabled: true, IntervalDays: 1, NextReview: &soon},
		},
	}
	if err := engine.Reset(tasks, now); err != nil {
		t.Fatalf("reset: %v", err)
	}

	got := waitEvent(t, engine.C(), time.Second)
	if got.TaskID != "fresh" {
		t.Fatalf("expected fresh event, got %s", got.TaskID)
	}
}

func waitEvent(t *testing.T, ch <-chan DueEvent, timeout time.Duration) DueEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return DueEvent{}
	}
}
