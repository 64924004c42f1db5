package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studyflow/matrixd/internal/engine"
	"github.com/studyflow/matrixd/internal/model"
	"github.com/studyflow/matrixd/internal/views"
)

func (m Model) handleStatsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "p", "l", "right":
		m.Stats.Period = nextPeriod(m.Stats.Period)
		m.Status = StatusBar{Text: fmt.Sprintf("showing %s stats", m.Stats.Period), IsError: false}
	case "h", "left":
		m.Stats.Period = previousPeriod(m.Stats.Period)
		m.Status = StatusBar{Text: fmt.Sprintf("showing %s stats", m.Stats.Period), IsError: false}
	}
	return m, nil
}

func (m Model) renderStatsView() string {
	r, err := m.Stats.Period.Range(m.Engine.Now())
	if err != nil {
		return fmt.Sprintf("stats unavailable: %v", err)
	}
	summary := engine.Summarize(m.Tasks, r)

	rows := make([]views.QuadrantStatData, 0, 4)
	for _, q := range model.Quadrants() {
		rows = append(rows, views.QuadrantStatData{
			Label:  q.Label(),
			Tasks:  summary.TasksByQuadrant[q],
			Points: summary.PointsByQuadrant[q],
		})
	}
	return views.RenderStatsPanel(views.StatsPanelData{
		Period:         string(m.Stats.Period),
		RangeStart:     r.Start.Format("2006-01-02"),
		RangeEnd:       r.End.Format("2006-01-02"),
		CompletedTasks: summary.CompletedTasks,
		PendingTasks:   summary.PendingTasks,
		TotalPoints:    summary.TotalPoints,
		Quadrants:      rows,
	})
}

func nextPeriod(p engine.Period) engine.Period {
	all := engine.Periods()
	for i, cur := range all {
		if cur == p {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func previousPeriod(p engine.Period) engine.Period {
	all := engine.Periods()
	for i, cur := range all {
		if cur == p {
			return all[(i+len(all)-1)%len(all)]
		}
	}
	return all[0]
}
