// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Status badges, priority colors, board columns, and panels

package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/reemkandil/askbob-project-mgmt/internal/domain"
)

var (
	// Colors - Core palette
	Primary = lipgloss.Color("#7C3AED") // Purple
	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Danger  = lipgloss.Color("#EF4444") // Red
	Muted   = lipgloss.Color("#6B7280") // Gray
	Text    = lipgloss.Color("#F9FAFB") // Light
	Info    = lipgloss.Color("#3B82F6") // Blue

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginBottom(1)

	ErrorText = lipgloss.NewStyle().
			Foreground(Danger)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	// Board columns
	Column = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	ActiveColumn = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	ColumnHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text)

	SelectedItem = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)
)

// projectStatusColors maps each project status to its badge color.
var projectStatusColors = map[domain.ProjectStatus]lipgloss.Color{
	domain.ProjectPlanning:   Info,
	domain.ProjectInProgress: Success,
	domain.ProjectOnHold:     Warning,
	domain.ProjectCompleted:  Muted,
	domain.ProjectCancelled:  Danger,
}

// priorityColors maps each task priority to its badge color.
var priorityColors = map[domain.TaskPriority]lipgloss.Color{
	domain.PriorityLow:    Muted,
	domain.PriorityMedium: Info,
	domain.PriorityHigh:   Warning,
	domain.PriorityUrgent: Danger,
}

// ProjectStatusBadge renders a colored label for a project status.
func ProjectStatusBadge(s domain.ProjectStatus) string {
	color, ok := projectStatusColors[s]
	if !ok {
		color = Muted
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(s.Label())
}

// PriorityBadge renders a colored label for a task priority.
func PriorityBadge(p domain.TaskPriority) string {
	color, ok := priorityColors[p]
	if !ok {
		color = Muted
	}
	return lipgloss.NewStyle().Foreground(color).Render(p.Label())
}
