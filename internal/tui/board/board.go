// ABOUTME: Task board screen grouping a project's tasks into status columns
// ABOUTME: Emits mutation messages; the app executes them and pushes fresh state

package board

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/reemkandil/askbob-project-mgmt/internal/domain"
	"github.com/reemkandil/askbob-project-mgmt/internal/tracker"
	"github.com/reemkandil/askbob-project-mgmt/internal/tui/styles"
)

// BackMsg asks the app to return to the project list.
type BackMsg struct{}

// CreateTaskMsg asks the app to create a task in the shown project.
type CreateTaskMsg struct {
	ProjectID string
	Input     tracker.CreateTaskInput
}

// SetTaskStatusMsg asks the app to move a task to a new status.
type SetTaskStatusMsg struct {
	ProjectID string
	TaskID    string
	Status    domain.TaskStatus
}

// SetProjectStatusMsg asks the app to change the project's status.
type SetProjectStatusMsg struct {
	ProjectID string
	Status    domain.ProjectStatus
}

// DeleteTaskMsg asks the app to delete a task.
type DeleteTaskMsg struct {
	ProjectID string
	TaskID    string
}

// Board is the task board for one project.
type Board struct {
	project *domain.Project
	columns [][]domain.Task
	col     int
	row     int
	width   int
	err     string
	confirm bool

	form      *huh.Form
	formTitle string
	formDesc  string
	formPrio  string
	formDue   string
	creating  bool

	description string // glamour-rendered project description
}

// New creates a board for the project and its tasks.
func New(project *domain.Project, tasks []domain.Task, width int) *Board {
	b := &Board{project: project, width: width}
	b.SetTasks(tasks)
	b.renderDescription()
	return b
}

// SetTasks regroups tasks into status columns, keeping the selection in
// range.
func (b *Board) SetTasks(tasks []domain.Task) {
	statuses := domain.TaskStatuses()
	b.columns = make([][]domain.Task, len(statuses))
	for _, t := range tasks {
		for i, s := range statuses {
			if t.Status == s {
				b.columns[i] = append(b.columns[i], t)
				break
			}
		}
	}
	if b.col >= len(b.columns) {
		b.col = len(b.columns) - 1
	}
	b.clampRow()
}

// SetProject replaces the shown project, e.g. after a status change.
func (b *Board) SetProject(project *domain.Project) {
	b.project = project
	b.renderDescription()
}

// SetError displays an inline error near the board.
func (b *Board) SetError(msg string) {
	b.err = msg
}

// SetWidth adjusts the layout to the terminal width.
func (b *Board) SetWidth(width int) {
	b.width = width
	b.renderDescription()
}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if b.creating {
		return b.updateForm(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	if b.confirm {
		if key.String() == "y" {
			b.confirm = false
			if t, ok := b.selected(); ok {
				return b, func() tea.Msg {
					return DeleteTaskMsg{ProjectID: b.project.ID, TaskID: t.ID}
				}
			}
		}
		b.confirm = false
		return b, nil
	}

	switch key.String() {
	case "left", "h":
		if b.col > 0 {
			b.col--
			b.clampRow()
		}
	case "right", "l":
		if b.col < len(b.columns)-1 {
			b.col++
			b.clampRow()
		}
	case "up", "k":
		if b.row > 0 {
			b.row--
		}
	case "down", "j":
		if b.row < len(b.columns[b.col])-1 {
			b.row++
		}
	case "s":
		// Move the selected task one column to the right, wrapping. Any
		// status is settable from any other; this is just the quick path.
		if t, ok := b.selected(); ok {
			statuses := domain.TaskStatuses()
			next := statuses[(b.col+1)%len(statuses)]
			return b, func() tea.Msg {
				return SetTaskStatusMsg{ProjectID: b.project.ID, TaskID: t.ID, Status: next}
			}
		}
	case "S":
		// Cycle the project status.
		statuses := domain.ProjectStatuses()
		for i, s := range statuses {
			if s == b.project.Status {
				next := statuses[(i+1)%len(statuses)]
				return b, func() tea.Msg {
					return SetProjectStatusMsg{ProjectID: b.project.ID, Status: next}
				}
			}
		}
	case "n":
		b.startCreate()
		return b, b.form.Init()
	case "d":
		if _, ok := b.selected(); ok {
			b.confirm = true
		}
	case "esc", "b":
		return b, func() tea.Msg { return BackMsg{} }
	}
	return b, nil
}

// View implements tea.Model.
func (b *Board) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(b.project.Name))
	sb.WriteString("  ")
	sb.WriteString(styles.ProjectStatusBadge(b.project.Status))
	sb.WriteString("\n")
	if b.description != "" {
		sb.WriteString(b.description)
		sb.WriteString("\n")
	}

	if b.creating {
		sb.WriteString(b.form.View())
		return sb.String()
	}

	statuses := domain.TaskStatuses()
	colWidth := b.columnWidth()
	rendered := make([]string, len(statuses))
	for i, status := range statuses {
		rendered[i] = b.renderColumn(i, status, colWidth)
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))

	if b.err != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.ErrorText.Render(b.err))
	}
	sb.WriteString(styles.Help.Render("h/l: column  j/k: task  s: move task  S: project status  n: new  d: delete  esc: back"))
	return sb.String()
}

func (b *Board) renderColumn(i int, status domain.TaskStatus, width int) string {
	var sb strings.Builder
	header := fmt.Sprintf("%s (%d)", status.Label(), len(b.columns[i]))
	sb.WriteString(styles.ColumnHeader.Render(header))
	sb.WriteString("\n")

	for j, t := range b.columns[i] {
		line := t.Title
		if t.Priority != "" {
			line += " " + styles.PriorityBadge(t.Priority)
		}
		if i == b.col && j == b.row {
			line = styles.SelectedItem.Render("> ") + line
			if b.confirm {
				line += styles.ErrorText.Render(" delete? y/n")
			}
		} else {
			line = "  " + line
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	style := styles.Column
	if i == b.col {
		style = styles.ActiveColumn
	}
	return style.Width(width).Render(sb.String())
}

func (b *Board) columnWidth() int {
	n := len(domain.TaskStatuses())
	w := b.width/n - 4
	if w < 16 {
		w = 16
	}
	return w
}

func (b *Board) selected() (domain.Task, bool) {
	if b.col >= len(b.columns) || b.row >= len(b.columns[b.col]) {
		return domain.Task{}, false
	}
	return b.columns[b.col][b.row], true
}

func (b *Board) clampRow() {
	if len(b.columns) == 0 {
		b.row = 0
		return
	}
	if b.row >= len(b.columns[b.col]) {
		b.row = len(b.columns[b.col]) - 1
	}
	if b.row < 0 {
		b.row = 0
	}
}

func (b *Board) renderDescription() {
	b.description = ""
	if b.project == nil || b.project.Description == "" {
		return
	}
	width := b.width - 4
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		b.description = b.project.Description
		return
	}
	out, err := r.Render(b.project.Description)
	if err != nil {
		b.description = b.project.Description
		return
	}
	b.description = strings.TrimRight(out, "\n")
}

func (b *Board) startCreate() {
	b.err = ""
	b.formTitle = ""
	b.formDesc = ""
	b.formPrio = string(domain.PriorityMedium)
	b.formDue = ""
	b.creating = true

	var priorityOptions []huh.Option[string]
	for _, p := range domain.TaskPriorities() {
		priorityOptions = append(priorityOptions, huh.NewOption(p.Label(), string(p)))
	}

	b.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task Title").
				Validate(func(v string) error {
					if v == "" {
						return fmt.Errorf("task title is required")
					}
					if len(v) > 200 {
						return fmt.Errorf("title must be less than 200 characters")
					}
					return nil
				}).
				Value(&b.formTitle),
			huh.NewText().
				Title("Description").
				Placeholder("Optional task description...").
				Value(&b.formDesc),
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorityOptions...).
				Value(&b.formPrio),
			huh.NewInput().
				Title("Due Date").
				Placeholder("YYYY-MM-DD").
				Value(&b.formDue),
		),
	)
}

func (b *Board) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		b.creating = false
		return b, nil
	}

	model, cmd := b.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		b.form = form
	}

	if b.form.State == huh.StateCompleted {
		b.creating = false
		input := tracker.CreateTaskInput{
			Title:       b.formTitle,
			Description: b.formDesc,
			Priority:    domain.TaskPriority(b.formPrio),
			DueDate:     b.formDue,
		}
		projectID := b.project.ID
		return b, tea.Batch(cmd, func() tea.Msg {
			return CreateTaskMsg{ProjectID: projectID, Input: input}
		})
	}
	return b, cmd
}
