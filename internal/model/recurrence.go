package model

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRecurrenceInterval = errors.New("model: invalid recurrence interval")

// DefaultCustomDays is used when a custom recurrence has no usable day count.
const DefaultCustomDays = 7

type RecurrenceInterval string

const (
	RecurrenceDaily    RecurrenceInterval = "daily"
	RecurrenceWeekly   RecurrenceInterval = "weekly"
	RecurrenceBiweekly RecurrenceInterval = "biweekly"
	RecurrenceMonthly  RecurrenceInterval = "monthly"
	RecurrenceCustom   RecurrenceInterval = "custom"
)

func (r RecurrenceInterval) IsValid() bool {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly, RecurrenceCustom:
		return true
	default:
		return false
	}
}

// Advance returns the occurrence that follows from. Monthly steps by one
// calendar month; custom steps by customDays, falling back to
// DefaultCustomDays when the count is unset or invalid.
func (r RecurrenceInterval) Advance(from time.Time, customDays int) (time.Time, error) {
	switch r {
	case RecurrenceDaily:
		return from.AddDate(0, 0, 1), nil
	case RecurrenceWeekly:
		return from.AddDate(0, 0, 7), nil
	case RecurrenceBiweekly:
		return from.AddDate(0, 0, 14), nil
	case RecurrenceMonthly:
		return from.AddDate(0, 1, 0), nil
	case RecurrenceCustom:
		days := customDays
		if days <= 0 {
			days = DefaultCustomDays
		}
		return from.AddDate(0, 0, days), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidRecurrenceInterval, r)
	}
}

// Preview returns the next count occurrences after from, for display in the
// recurrence editor.
func (r RecurrenceInterval) Preview(from time.Time, customDays int, count int) ([]time.Time, error) {
	if count <= 0 {
		return []time.Time{}, nil
	}
	out := make([]time.Time, 0, count)
	cursor := from
	for i := 0; i < count; i++ {
		next, err := r.Advance(cursor, customDays)
		if err != nil {
			return nil, err
		}
		out = append(out, next)
		cursor = next
	}
	return out, nil
}
