package update

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studyflow/matrixd/internal/model"
	"github.com/studyflow/matrixd/internal/scheduler"
)

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeString(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel()
	if m.CurrentView != ViewMatrix {
		t.Fatalf("expected default view %q, got %q", ViewMatrix, m.CurrentView)
	}
	if m.Matrix.Quadrant != model.QuadrantUrgentImportant {
		t.Fatalf("expected q1 active, got %q", m.Matrix.Quadrant)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m := NewModel()
	updated, _ := m.Update(keyMsg("2"))
	next := updated.(Model)
	if next.CurrentView != ViewReview {
		t.Fatalf("expected review view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(keyMsg("4"))
	next = updated.(Model)
	if next.CurrentView != ViewStats {
		t.Fatalf("expected stats view, got %q", next.CurrentView)
	}
}

func TestQuickAddCreatesTaskInActiveQuadrant(t *testing.T) {
	m := NewModel()
	updated, _ := m.Update(keyMsg("l"))
	m = updated.(Model)
	if m.Matrix.Quadrant != model.QuadrantImportantNotUrgent {
		t.Fatalf("expected q2 active, got %q", m.Matrix.Quadrant)
	}

	updated, _ = m.Update(keyMsg("a"))
	m = updated.(Model)
	if !m.Matrix.QuickAdd {
		t.Fatal("expected quick add mode")
	}
	m = typeString(t, m, "Read chapter 5")
	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(Model)

	if len(m.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(m.Tasks))
	}
	task := m.Tasks[0]
	if task.Title != "Read chapter 5" || task.Quadrant != model.QuadrantImportantNotUrgent {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.ID == "" {
		t.Fatal("task must get an id")
	}
}

func TestToggleCompleteScoresTask(t *testing.T) {
	m := NewModel()
	m.Tasks = []model.Task{{
		ID:        "t1",
		Title:     "Lab writeup",
		Quadrant:  model.QuadrantUrgentImportant,
		CreatedAt: time.Now().UTC(),
	}}
	m.syncSelectedTask()

	updated, _ := m.Update(keyMsg(" "))
	m = updated.(Model)
	if !m.Tasks[0].Completed {
		t.Fatal("expected task completed")
	}
	if m.Tasks[0].Points == nil || *m.Tasks[0].Points != 100 {
		t.Fatalf("expected 100 points, got %v", m.Tasks[0].Points)
	}

	updated, _ = m.Update(keyMsg(" "))
	m = updated.(Model)
	if m.Tasks[0].Completed || m.Tasks[0].Points != nil {
		t.Fatalf("expected task reopened with points cleared: %+v", m.Tasks[0])
	}
}

func TestPaletteAddCommand(t *testing.T) {
	m := NewModel()
	updated, _ := m.Update(keyMsg("/"))
	m = updated.(Model)
	if !m.Palette.Active {
		t.Fatal("expected palette active")
	}
	m = typeString(t, m, "add q3 email the TA subject:admin")
	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(Model)

	if m.Palette.Active {
		t.Fatal("palette must close on enter")
	}
	if len(m.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(m.Tasks))
	}
	task := m.Tasks[0]
	if task.Quadrant != model.QuadrantUrgentNotImportant || task.Subject != "admin" {
		t.Fatalf("unexpected task: %+v", task)
	}
	if m.Status.IsError {
		t.Fatalf("unexpected error status: %q", m.Status.Text)
	}
}

func TestPaletteDoneAndUndoByPrefix(t *testing.T) {
	m := NewModel()
	m.Tasks = []model.Task{{
		ID:        "abc123",
		Title:     "Flashcards",
		Quadrant:  model.QuadrantImportantNotUrgent,
		CreatedAt: time.Now().UTC(),
	}}

	m.runCommand("done abc")
	if !m.Tasks[0].Completed {
		t.Fatalf("expected completion via palette: %+v", m.Tasks[0])
	}
	m.runCommand("undo abc")
	if m.Tasks[0].Completed {
		t.Fatalf("expected reopen via palette: %+v", m.Tasks[0])
	}

	m.runCommand("done zzz")
	if !m.Status.IsError {
		t.Fatal("expected error for unknown target")
	}
}

func TestReviewFlowAdvancesSchedule(t *testing.T) {
	past := time.Now().UTC().Add(-time.Hour)
	m := NewModel()
	m.Tasks = []model.Task{{
		ID:        "rev1",
		Title:     "Verb drill",
		Quadrant:  model.QuadrantImportantNotUrgent,
		CreatedAt: past,
		SpacedRepetition: &model.SpacedRepetition{
			Enabled:      true,
			IntervalDays: 1,
			NextReview:   &past,
		},
	}}

	updated, _ := m.Update(keyMsg("2"))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("r"))
	m = updated.(Model)

	sr := m.Tasks[0].SpacedRepetition
	if sr.IntervalDays != 2 || sr.RepetitionCount != 1 {
		t.Fatalf("review schedule did not advance: %+v", sr)
	}
	if sr.NextReview == nil || !sr.NextReview.After(time.Now().UTC()) {
		t.Fatalf("next review must move to the future: %v", sr.NextReview)
	}
}

func TestPracticeGradesCards(t *testing.T) {
	past := time.Now().UTC().Add(-time.Hour)
	m := NewModel()
	m.Tasks = []model.Task{{
		ID:        "rev1",
		Title:     "Capital cities",
		Quadrant:  model.QuadrantImportantNotUrgent,
		CreatedAt: past,
		SpacedRepetition: &model.SpacedRepetition{
			Enabled:      true,
			IntervalDays: 1,
			NextReview:   &past,
		},
		ActiveRecall: []model.RecallCard{
			{Question: "Capital of France?", Answer: "Paris"},
		},
	}}

	updated, _ := m.Update(keyMsg("2"))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(Model)
	if m.Review.Mode != ReviewModePractice {
		t.Fatalf("expected practice mode, got %q", m.Review.Mode)
	}

	// Grading is ignored until the answer is revealed.
	updated, _ = m.Update(keyMsg("y"))
	m = updated.(Model)
	if m.Tasks[0].ActiveRecall[0].LastPerformance != "" {
		t.Fatal("grade must require reveal first")
	}

	updated, _ = m.Update(keyMsg(" "))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("y"))
	m = updated.(Model)

	if m.Tasks[0].ActiveRecall[0].LastPerformance != model.RecallCorrect {
		t.Fatalf("card not graded: %+v", m.Tasks[0].ActiveRecall[0])
	}
	if m.Review.Mode != ReviewModeList {
		t.Fatalf("practice must end after last card, mode %q", m.Review.Mode)
	}
	if m.Tasks[0].SpacedRepetition.RepetitionCount != 1 {
		t.Fatalf("finishing practice must advance the schedule: %+v", m.Tasks[0].SpacedRepetition)
	}
}

func TestDueEventAddsNotification(t *testing.T) {
	m := NewModel()
	updated, _ := m.Update(DueEventMsg{Event: scheduler.DueEvent{
		TaskID: "t1",
		Title:  "Verb drill",
		Kind:   scheduler.DueReview,
		DueAt:  time.Now().UTC(),
	}})
	m = updated.(Model)

	if len(m.DueLog) != 1 {
		t.Fatalf("expected due log entry, got %d", len(m.DueLog))
	}
	if len(m.Notifications) == 0 || !strings.Contains(m.Notifications[len(m.Notifications)-1].Body, "Verb drill") {
		t.Fatalf("expected notification for due review: %+v", m.Notifications)
	}
}

func TestTaskFlags(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	task := model.Task{
		Interleaving:     true,
		Pomodoro:         &model.PomodoroSettings{WorkDuration: 25, BreakDuration: 5, Sessions: 4},
		SpacedRepetition: &model.SpacedRepetition{Enabled: true, IntervalDays: 1, NextReview: &past},
		Recurrence:       &model.Recurrence{Enabled: true, Interval: model.RecurrenceDaily},
	}
	flags := taskFlags(task, now)
	want := []string{"SR!", "RC", "IL", "P"}
	if strings.Join(flags, ",") != strings.Join(want, ",") {
		t.Fatalf("flags: got %v want %v", flags, want)
	}
}

func TestViewRendersWithoutPanic(t *testing.T) {
	m := NewModelWithTasks([]model.Task{{
		ID:        "t1",
		Title:     "Lab writeup",
		Quadrant:  model.QuadrantUrgentImportant,
		CreatedAt: time.Now().UTC(),
	}})
	for _, view := range []View{ViewMatrix, ViewReview, ViewFocus, ViewStats} {
		m.CurrentView = view
		if out := m.View(); !strings.Contains(out, "matrixd") {
			t.Fatalf("view %s missing header: %q", view, out)
		}
	}
}
