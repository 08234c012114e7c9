// ABOUTME: Project list screen as a bubbletea model
// ABOUTME: Cursor navigation, inline create form, and two-key delete confirmation

package projectlist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/reemkandil/askbob-project-mgmt/internal/domain"
	"github.com/reemkandil/askbob-project-mgmt/internal/tui/styles"
)

// OpenMsg asks the app to open a project's board.
type OpenMsg struct {
	ID string
}

// CreateMsg asks the app to create a project.
type CreateMsg struct {
	Name        string
	Description string
}

// DeleteMsg asks the app to delete a project. Sent only after the user
// confirmed.
type DeleteMsg struct {
	ID string
}

// QuitMsg asks the app to exit.
type QuitMsg struct{}

// List is the project list screen.
type List struct {
	projects  []domain.Project
	cursor    int
	err       string
	confirm   bool // pending delete confirmation for the cursored project
	form      *huh.Form
	formName  string
	formDesc  string
	creating  bool
}

// New creates the list over the given projects.
func New(projects []domain.Project) *List {
	return &List{projects: projects}
}

// SetProjects replaces the listed projects, keeping the cursor in range.
func (l *List) SetProjects(projects []domain.Project) {
	l.projects = projects
	if l.cursor >= len(projects) {
		l.cursor = len(projects) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// SetError displays an inline error near the action row.
func (l *List) SetError(msg string) {
	l.err = msg
}

// Init implements tea.Model.
func (l *List) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (l *List) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if l.creating {
		return l.updateForm(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	if l.confirm {
		switch key.String() {
		case "y":
			l.confirm = false
			id := l.projects[l.cursor].ID
			return l, func() tea.Msg { return DeleteMsg{ID: id} }
		default:
			l.confirm = false
		}
		return l, nil
	}

	switch key.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < len(l.projects)-1 {
			l.cursor++
		}
	case "enter":
		if len(l.projects) > 0 {
			id := l.projects[l.cursor].ID
			return l, func() tea.Msg { return OpenMsg{ID: id} }
		}
	case "n":
		l.startCreate()
		return l, l.form.Init()
	case "d":
		if len(l.projects) > 0 {
			l.confirm = true
		}
	case "q":
		return l, func() tea.Msg { return QuitMsg{} }
	}
	return l, nil
}

// View implements tea.Model.
func (l *List) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Projects"))
	b.WriteString("\n")

	if l.creating {
		b.WriteString(l.form.View())
		return b.String()
	}

	if len(l.projects) == 0 {
		b.WriteString(styles.Subtitle.Render("No projects yet. Press n to create your first project."))
	}

	for i, p := range l.projects {
		line := fmt.Sprintf("%s  %s", p.Name, styles.ProjectStatusBadge(p.Status))
		if i == l.cursor {
			line = styles.SelectedItem.Render("> ") + line
			if l.confirm {
				line += styles.ErrorText.Render("  delete? y/n")
			}
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if l.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorText.Render(l.err))
	}
	b.WriteString(styles.Help.Render("enter: open  n: new  d: delete  q: quit"))
	return b.String()
}

func (l *List) startCreate() {
	l.err = ""
	l.formName = ""
	l.formDesc = ""
	l.creating = true
	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Name").
				Validate(func(v string) error {
					if v == "" {
						return fmt.Errorf("project name is required")
					}
					if len(v) > 200 {
						return fmt.Errorf("name must be less than 200 characters")
					}
					return nil
				}).
				Value(&l.formName),
			huh.NewText().
				Title("Description").
				Placeholder("Optional project description...").
				Value(&l.formDesc),
		),
	)
}

func (l *List) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		l.creating = false
		return l, nil
	}

	model, cmd := l.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		l.form = form
	}

	if l.form.State == huh.StateCompleted {
		l.creating = false
		name, desc := l.formName, l.formDesc
		return l, tea.Batch(cmd, func() tea.Msg {
			return CreateMsg{Name: name, Description: desc}
		})
	}
	return l, cmd
}
