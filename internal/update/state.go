package update

import (
	"context"
	"fmt"

	"github.com/studyflow/matrixd/internal/scheduler"
	"github.com/studyflow/matrixd/internal/storage"
)

// persistTasks writes the in-memory collection through the repository and
// realigns the due-event queue. Nil repo means in-memory mode (tests, demos).
func (m *Model) persistTasks() {
	if m.Repo != nil {
		if err := m.Repo.ReplaceTasks(context.Background(), m.Tasks); err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: fmt.Sprintf("save failed: %v", err), IsError: true}
			return
		}
	}
	if m.SnapshotPath != "" {
		if err := storage.WriteSnapshot(m.SnapshotPath, m.Tasks); err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("snapshot failed: %v", err), IsError: true}
			return
		}
	}
	if m.Scheduler != nil {
		_ = m.Scheduler.Reset(m.Tasks, m.Engine.Now())
	}
}

// runRecurrenceSweep regenerates completed recurring tasks whose next
// occurrence has passed. Safe to call at startup and after every completion.
func (m *Model) runRecurrenceSweep() {
	updated, regens := m.Engine.RunRecurrenceSweep(m.Tasks, m.Engine.Now())
	m.Tasks = updated
	for _, regen := range regens {
		m.notify("Recurring task", fmt.Sprintf("%q is back on the board", regen.Spawned.Title), "info")
	}
}

func (m *Model) applyDueEvent(ev scheduler.DueEvent) {
	m.DueLog = append(m.DueLog, ev)
	if len(m.DueLog) > 20 {
		m.DueLog = m.DueLog[len(m.DueLog)-20:]
	}
	switch ev.Kind {
	case scheduler.DueReview:
		m.notify("Review due", ev.Title, "info")
	case scheduler.DueOccurrence:
		m.runRecurrenceSweep()
		m.persistTasks()
		m.notify("Recurrence due", ev.Title, "info")
	}
}
