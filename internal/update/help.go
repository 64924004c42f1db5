package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/studyflow/matrixd/internal/views"
)

const helpMarkdown = `# matrixd

Tasks live in four quadrants sorted by **urgency** and **importance**.
Completing a task scores points; spaced repetition brings study tasks
back on a doubling interval, and recurring tasks respawn on schedule.

- Quadrant 1: urgent and important
- Quadrant 2: important, not urgent
- Quadrant 3: urgent, not important
- Quadrant 4: neither
`

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView:  string(m.CurrentView),
		Bindings:     plain,
		MarkdownView: m.helpViewport.View(),
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Matrix, Action: "switch to Matrix"},
		{Key: m.Keys.Review, Action: "switch to Review"},
		{Key: m.Keys.Focus, Action: "switch to Focus"},
		{Key: m.Keys.Stats, Action: "switch to Stats"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewMatrix:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next quadrant"},
			{Key: "j/k", Action: "move selection"},
			{Key: "a", Action: "quick add to quadrant"},
			{Key: "space", Action: "toggle complete"},
			{Key: "x", Action: "delete task"},
			{Key: "i", Action: "toggle interleaving"},
			{Key: "R", Action: "edit recurrence"},
		}
	case ViewReview:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "enter", Action: "start recall practice"},
			{Key: "r", Action: "mark reviewed"},
			{Key: "space", Action: "reveal answer"},
			{Key: "y/n", Action: "grade card correct/incorrect"},
		}
	case ViewFocus:
		return []KeyBinding{
			{Key: "space", Action: "start/pause timer"},
			{Key: "r", Action: "reset timer"},
			{Key: "n", Action: "next session phase"},
		}
	case ViewStats:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next period"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
