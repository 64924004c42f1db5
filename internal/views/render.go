package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	Footer       string
	Notification string
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	activeQuad    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 1)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	completedItem = lipgloss.NewStyle().Faint(true).Strikethrough(true)
)

// Points tiers, brightest for the biggest scores.
var pointsTiers = []struct {
	min   int
	style lipgloss.Style
}{
	{500, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))},
	{250, lipgloss.NewStyle().Foreground(lipgloss.Color("12"))},
	{150, lipgloss.NewStyle().Foreground(lipgloss.Color("14"))},
	{100, lipgloss.NewStyle().Foreground(lipgloss.Color("10"))},
	{50, lipgloss.NewStyle().Foreground(lipgloss.Color("11"))},
	{0, lipgloss.NewStyle().Foreground(lipgloss.Color("8"))},
}

func PointsBadge(points int) string {
	if points <= 0 {
		return ""
	}
	label := fmt.Sprintf("+%dpts", points)
	for _, tier := range pointsTiers {
		if points >= tier.min {
			return tier.style.Render(label)
		}
	}
	return label
}

func RenderApp(data AppData) string {
	left := panelStyle.Width(58).Render(data.LeftPane)
	right := panelStyle.Width(58).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := statusStyle.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
