package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TaskItemData struct {
	ID        string
	Title     string
	Subject   string
	Completed bool
	Points    int
	Flags     []string
	Selected  bool
}

type QuadrantData struct {
	Name   string
	Label  string
	Active bool
	Items  []TaskItemData
}

type MatrixPanelData struct {
	Quadrants    []QuadrantData
	QuickAddView string
}

type ReviewItemData struct {
	Title        string
	Subject      string
	Cards        int
	IntervalDays int
	Repetitions  int
	Selected     bool
}

type ReviewPanelData struct {
	Items []ReviewItemData
}

type PracticePanelData struct {
	TaskTitle  string
	CardNumber int
	CardTotal  int
	Question   string
	Answer     string
	Revealed   bool
}

type FocusPanelData struct {
	TaskTitle         string
	Phase             string
	Timer             string
	ProgressView      string
	CompletedSessions int
	TargetSessions    int
	ShowEndPrompt     bool
}

type QuadrantStatData struct {
	Label  string
	Tasks  int
	Points int
}

type StatsPanelData struct {
	Period         string
	RangeStart     string
	RangeEnd       string
	CompletedTasks int
	PendingTasks   int
	TotalPoints    int
	Quadrants      []QuadrantStatData
}

type HelpPanelData struct {
	CurrentView  string
	Bindings     []string
	MarkdownView string
	HelpView     string
}

type TaskMetadataData struct {
	SelectedID     string
	Title          string
	Description    string
	Subject        string
	Points         int
	Flags          []string
	NextReview     string
	NextOccurrence string
	RecallCards    int
}

type RecurrenceEditorData struct {
	Active     bool
	Interval   string
	CustomText string
	ErrorText  string
	Preview    []string
}

func RenderMatrixPanel(data MatrixPanelData) string {
	cells := make([]string, 0, len(data.Quadrants))
	for _, q := range data.Quadrants {
		cells = append(cells, renderQuadrantCell(q))
	}

	var b strings.Builder
	b.WriteString("matrix:\n")
	b.WriteString("actions: [h/l]quadrant [j/k]move [a]add [space]done [x]delete [i]interleave [R]repeat\n")
	if len(cells) == 4 {
		top := lipgloss.JoinHorizontal(lipgloss.Top, cells[0], cells[1])
		bottom := lipgloss.JoinHorizontal(lipgloss.Top, cells[2], cells[3])
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, top, bottom))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cells...))
	}
	if data.QuickAddView != "" {
		b.WriteString("\nquick-add: " + data.QuickAddView)
	}
	return strings.TrimSpace(b.String())
}

func renderQuadrantCell(q QuadrantData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s (%d)\n", q.Label, len(q.Items)))
	if len(q.Items) == 0 {
		b.WriteString("  (empty)")
	}
	for _, item := range q.Items {
		cursor := " "
		if item.Selected {
			cursor = ">"
		}
		mark := "[ ]"
		if item.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s %s", cursor, mark, item.Title)
		if item.Subject != "" {
			line += fmt.Sprintf(" #%s", item.Subject)
		}
		if len(item.Flags) > 0 {
			line += " " + strings.Join(item.Flags, ",")
		}
		if badge := PointsBadge(item.Points); badge != "" {
			line += " " + badge
		}
		if item.Completed {
			line = completedItem.Render(line)
		}
		b.WriteString(line + "\n")
	}
	style := panelStyle
	if q.Active {
		style = activeQuad
	}
	return style.Width(27).Render(strings.TrimSuffix(b.String(), "\n"))
}

func RenderReviewPanel(data ReviewPanelData) string {
	var b strings.Builder
	b.WriteString("review:\n")
	b.WriteString("actions: [j/k]move [enter]practice [r]mark-reviewed\n")
	if len(data.Items) == 0 {
		b.WriteString("(nothing due for review)")
		return b.String()
	}
	for _, item := range data.Items {
		cursor := " "
		if item.Selected {
			cursor = ">"
		}
		subject := item.Subject
		if subject == "" {
			subject = "general"
		}
		b.WriteString(fmt.Sprintf("%s %s #%s interval:%dd reps:%d", cursor, item.Title, subject, item.IntervalDays, item.Repetitions))
		if item.Cards > 0 {
			b.WriteString(fmt.Sprintf(" cards:%d", item.Cards))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderPracticePanel(data PracticePanelData) string {
	var b strings.Builder
	b.WriteString("practice:\n")
	b.WriteString(fmt.Sprintf("task: %s\n", data.TaskTitle))
	b.WriteString(fmt.Sprintf("card %d of %d\n\n", data.CardNumber, data.CardTotal))
	b.WriteString("Q: " + data.Question + "\n")
	if data.Revealed {
		b.WriteString("A: " + data.Answer + "\n")
		b.WriteString("grade: [y]correct [n]incorrect")
	} else {
		b.WriteString("A: (press space to reveal)")
	}
	return b.String()
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	if data.TaskTitle != "" {
		b.WriteString(fmt.Sprintf("task: %s\n", data.TaskTitle))
	} else {
		b.WriteString("task: (none selected)\n")
	}
	b.WriteString(fmt.Sprintf("phase: %s\n", strings.ToUpper(data.Phase)))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s\n", data.ProgressView))
	if data.TargetSessions > 0 {
		b.WriteString(fmt.Sprintf("sessions: %d of %d\n", data.CompletedSessions, data.TargetSessions))
	} else {
		b.WriteString(fmt.Sprintf("sessions completed: %d\n", data.CompletedSessions))
	}
	b.WriteString("actions: [space]start/pause [r]reset [n]next-phase\n")
	if data.ShowEndPrompt {
		b.WriteString("prompt: session ended, press [n] to continue")
	}
	return strings.TrimSpace(b.String())
}

func RenderStatsPanel(data StatsPanelData) string {
	var b strings.Builder
	b.WriteString("stats:\n")
	b.WriteString("actions: [h/l]period\n")
	b.WriteString(fmt.Sprintf("period: %s (%s .. %s)\n", data.Period, data.RangeStart, data.RangeEnd))
	b.WriteString(fmt.Sprintf("completed: %d | pending: %d\n", data.CompletedTasks, data.PendingTasks))
	b.WriteString(fmt.Sprintf("total points: %s\n", PointsBadge(data.TotalPoints)))
	b.WriteString("by quadrant:\n")
	for _, q := range data.Quadrants {
		b.WriteString(fmt.Sprintf("  %-28s tasks:%-3d points:%d\n", q.Label, q.Tasks, q.Points))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", inputView)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s view:\n%s\n%s",
		data.MarkdownView,
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func RenderTaskMetadataPane(data TaskMetadataData) string {
	if strings.TrimSpace(data.SelectedID) == "" {
		return "metadata:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("metadata:\n")
	b.WriteString(fmt.Sprintf("id: %s\n", data.SelectedID))
	b.WriteString(fmt.Sprintf("title: %s\n", data.Title))
	if data.Description != "" {
		b.WriteString(fmt.Sprintf("notes: %s\n", data.Description))
	}
	if data.Subject != "" {
		b.WriteString(fmt.Sprintf("subject: %s\n", data.Subject))
	}
	if len(data.Flags) > 0 {
		b.WriteString(fmt.Sprintf("flags: %s\n", strings.Join(data.Flags, ",")))
	}
	if badge := PointsBadge(data.Points); badge != "" {
		b.WriteString(fmt.Sprintf("points: %s\n", badge))
	}
	if data.NextReview != "" {
		b.WriteString(fmt.Sprintf("next review: %s\n", data.NextReview))
	}
	if data.NextOccurrence != "" {
		b.WriteString(fmt.Sprintf("next occurrence: %s\n", data.NextOccurrence))
	}
	if data.RecallCards > 0 {
		b.WriteString(fmt.Sprintf("recall cards: %d\n", data.RecallCards))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderRecurrenceEditor(data RecurrenceEditorData) string {
	if !data.Active {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nrecurrence-editor:\n")
	b.WriteString("keys: [tab] interval [enter] apply [esc] close\n")
	b.WriteString(fmt.Sprintf("interval: %s\n", data.Interval))
	if data.Interval == "custom" {
		b.WriteString(fmt.Sprintf("every-n-days: %s\n", data.CustomText))
	}
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText + "\n")
	}
	if len(data.Preview) > 0 {
		b.WriteString("preview:\n")
		for _, item := range data.Preview {
			b.WriteString("- " + item + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
