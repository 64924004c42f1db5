package model

import (
	"errors"
	"testing"
	"time"
)

func TestAdvanceDaily(t *testing.T) {
	from := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	next, err := RecurrenceDaily.Advance(from, 0)
	if err != nil {
		t.Fatalf("advance daily failed: %v", err)
	}
	if next.Format("2006-01-02 15:04") != "2026-03-03 09:00" {
		t.Fatalf("unexpected next occurrence: %s", next.Format(time.RFC3339))
	}
}

func TestAdvanceWeeklyAndBiweekly(t *testing.T) {
	from := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	next, err := RecurrenceWeekly.Advance(from, 0)
	if err != nil {
		t.Fatalf("advance weekly failed: %v", err)
	}
	if next.Format("2006-01-02") != "2026-03-09" {
		t.Fatalf("unexpected weekly occurrence: %s", next.Format(time.RFC3339))
	}

	next, err = RecurrenceBiweekly.Advance(from, 0)
	if err != nil {
		t.Fatalf("advance biweekly failed: %v", err)
	}
	if next.Format("2006-01-02") != "2026-03-16" {
		t.Fatalf("unexpected biweekly occurrence: %s", next.Format(time.RFC3339))
	}
}

func TestAdvanceMonthlyUsesCalendarMonth(t *testing.T) {
	from := time.Date(2026, 1, 15, 17, 0, 0, 0, time.UTC)
	next, err := RecurrenceMonthly.Advance(from, 0)
	if err != nil {
		t.Fatalf("advance monthly failed: %v", err)
	}
	if next.Format("2006-01-02 15:04") != "2026-02-15 17:00" {
		t.Fatalf("unexpected monthly occurrence: %s", next.Format(time.RFC3339))
	}
}

func TestAdvanceCustomFallsBackToDefault(t *testing.T) {
	from := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	next, err := RecurrenceCustom.Advance(from, 3)
	if err != nil {
		t.Fatalf("advance custom failed: %v", err)
	}
	if next.Format("2006-01-02") != "2026-03-05" {
		t.Fatalf("unexpected custom occurrence: %s", next.Format(time.RFC3339))
	}

	next, err = RecurrenceCustom.Advance(from, 0)
	if err != nil {
		t.Fatalf("advance custom with default failed: %v", err)
	}
	if next.Format("2006-01-02") != "2026-03-09" {
		t.Fatalf("expected %d-day fallback, got: %s", DefaultCustomDays, next.Format(time.RFC3339))
	}
}

func TestAdvanceRejectsUnknownInterval(t *testing.T) {
	from := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err := RecurrenceInterval("hourly").Advance(from, 0)
	if !errors.Is(err, ErrInvalidRecurrenceInterval) {
		t.Fatalf("expected ErrInvalidRecurrenceInterval, got %v", err)
	}
}

func TestRecurrencePreview(t *testing.T) {
	from := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	list, err := RecurrenceWeekly.Preview(from, 0, 3)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 preview items, got %d", len(list))
	}
	want := []string{"2026-03-09", "2026-03-16", "2026-03-23"}
	for i := range list {
		if got := list[i].Format("2006-01-02"); got != want[i] {
			t.Fatalf("preview[%d] got %s want %s", i, got, want[i])
		}
	}
}
