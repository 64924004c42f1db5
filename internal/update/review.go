package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studyflow/matrixd/internal/engine"
	"github.com/studyflow/matrixd/internal/model"
	"github.com/studyflow/matrixd/internal/views"
)

// reviewQueue is the due list in interleaved order, so adjacent reviews
// rotate between subjects.
func (m Model) reviewQueue() []model.Task {
	return engine.Interleave(engine.DueForReview(m.Tasks, m.Engine.Now()))
}

func (m Model) currentReviewTask() (model.Task, bool) {
	due := m.reviewQueue()
	if len(due) == 0 {
		return model.Task{}, false
	}
	cursor := m.Review.Cursor
	if cursor >= len(due) {
		cursor = len(due) - 1
	}
	return due[cursor], true
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Review.Mode == ReviewModePractice {
		return m.handlePracticeKey(msg)
	}

	due := m.reviewQueue()
	switch msg.String() {
	case "j", "down":
		if m.Review.Cursor < len(due)-1 {
			m.Review.Cursor++
		}
	case "k", "up":
		if m.Review.Cursor > 0 {
			m.Review.Cursor--
		}
	case "enter":
		task, ok := m.currentReviewTask()
		if !ok {
			return m, nil
		}
		if len(task.ActiveRecall) == 0 {
			m.finishReview(task)
			return m, nil
		}
		m.Review.Mode = ReviewModePractice
		m.Review.CardIndex = 0
		m.Review.Revealed = false
		m.Status = StatusBar{Text: fmt.Sprintf("practicing %q", task.Title), IsError: false}
	case "r":
		if task, ok := m.currentReviewTask(); ok {
			m.finishReview(task)
		}
	}
	return m, nil
}

func (m Model) handlePracticeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	task, ok := m.currentReviewTask()
	if !ok {
		m.Review.Mode = ReviewModeList
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.Review.Mode = ReviewModeList
		m.Status = StatusBar{Text: "practice closed", IsError: false}
	case " ":
		m.Review.Revealed = true
	case "y", "n":
		if !m.Review.Revealed {
			return m, nil
		}
		perf := model.RecallCorrect
		if msg.String() == "n" {
			perf = model.RecallIncorrect
		}
		graded := engine.GradeRecallCard(task, m.Review.CardIndex, perf)
		m.Tasks = engine.ReplaceTask(m.Tasks, graded)
		m.persistTasks()
		m.Review.Revealed = false
		m.Review.CardIndex++
		if m.Review.CardIndex >= len(graded.ActiveRecall) {
			m.Review.Mode = ReviewModeList
			m.finishReview(graded)
		}
	}
	return m, nil
}

// finishReview advances the repetition schedule without completing the task.
func (m *Model) finishReview(task model.Task) {
	if task.SpacedRepetition == nil {
		return
	}
	advanced := task.Clone()
	rec := engine.AdvanceReview(*advanced.SpacedRepetition, m.Engine.Now())
	advanced.SpacedRepetition = &rec
	m.Tasks = engine.ReplaceTask(m.Tasks, advanced)
	m.persistTasks()
	m.clampReviewCursor()
	next := "unscheduled"
	if advanced.SpacedRepetition != nil && advanced.SpacedRepetition.NextReview != nil {
		next = advanced.SpacedRepetition.NextReview.Format("2006-01-02")
	}
	m.notify("Review done", advanced.Title, "info")
	m.Status = StatusBar{Text: fmt.Sprintf("reviewed %q, next on %s", advanced.Title, next), IsError: false}
}

func (m *Model) clampReviewCursor() {
	count := len(m.reviewQueue())
	if count == 0 {
		m.Review.Cursor = 0
		return
	}
	if m.Review.Cursor >= count {
		m.Review.Cursor = count - 1
	}
}

func (m Model) renderReviewView() string {
	if m.Review.Mode == ReviewModePractice {
		task, ok := m.currentReviewTask()
		if ok && m.Review.CardIndex < len(task.ActiveRecall) {
			card := task.ActiveRecall[m.Review.CardIndex]
			return views.RenderPracticePanel(views.PracticePanelData{
				TaskTitle:  task.Title,
				CardNumber: m.Review.CardIndex + 1,
				CardTotal:  len(task.ActiveRecall),
				Question:   card.Question,
				Answer:     card.Answer,
				Revealed:   m.Review.Revealed,
			})
		}
	}

	ordered := m.reviewQueue()
	items := make([]views.ReviewItemData, 0, len(ordered))
	for i, task := range ordered {
		item := views.ReviewItemData{
			Title:    task.Title,
			Subject:  task.Subject,
			Cards:    len(task.ActiveRecall),
			Selected: i == m.Review.Cursor,
		}
		if task.SpacedRepetition != nil {
			item.IntervalDays = task.SpacedRepetition.IntervalDays
			item.Repetitions = task.SpacedRepetition.RepetitionCount
		}
		items = append(items, item)
	}
	return views.RenderReviewPanel(views.ReviewPanelData{Items: items})
}
