package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/studyflow/matrixd/internal/engine"
	"github.com/studyflow/matrixd/internal/model"
)

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func formatDuration(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	min := totalSec / 60
	sec := totalSec % 60
	return fmt.Sprintf("%02d:%02d", min, sec)
}

// taskFlags summarises a task's schedule markers for list rendering:
// SR! when a review is due, SR otherwise, RC for recurrence, IL for
// interleaving, P for pomodoro settings.
func taskFlags(task model.Task, now time.Time) []string {
	flags := make([]string, 0, 4)
	if task.SpacedRepetition != nil && task.SpacedRepetition.Enabled {
		if engine.IsDueForReview(task, now) {
			flags = append(flags, "SR!")
		} else {
			flags = append(flags, "SR")
		}
	}
	if task.Recurrence != nil && task.Recurrence.Enabled {
		flags = append(flags, "RC")
	}
	if task.Interleaving {
		flags = append(flags, "IL")
	}
	if task.Pomodoro != nil {
		flags = append(flags, "P")
	}
	return flags
}
