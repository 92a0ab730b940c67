package ui

import (
	"github.com/charmbracelet/lipgloss"

	"cosmic/internal/task"
)

const (
	colorViolet = "#6C63FF"
	colorPink   = "#FF6584"
	colorCyan   = "#36D1DC"
	colorAmber  = "#FFC107"
	colorWhite  = "#FFFFFF"
	colorMuted  = "#6B7280"

	colorSuccess = "#4CAF50"
	colorError   = "#F44336"
	colorInfo    = "#2196F3"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorViolet)).Bold(true)
	starStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))

	activeChipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWhite)).Background(lipgloss.Color(colorViolet)).Padding(0, 1)
	chipStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Padding(0, 1)

	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorCyan)).Bold(true)
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Strikethrough(true)
	dropStyle      = lipgloss.NewStyle().Underline(true)

	priorityStyles = map[task.Priority]lipgloss.Style{
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorPink)).Bold(true),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color(colorAmber)),
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorCyan)),
	}

	toastBase = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWhite)).Bold(true).Padding(0, 1)
)

func priorityBadge(p task.Priority) string {
	st, ok := priorityStyles[p]
	if !ok {
		return string(p)
	}
	return st.Render(string(p))
}
