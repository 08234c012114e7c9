// ABOUTME: Root bubbletea model for the interactive board
// ABOUTME: Routes screens through the access gate and runs tracker operations

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/reemkandil/askbob-project-mgmt/internal/domain"
	"github.com/reemkandil/askbob-project-mgmt/internal/gate"
	"github.com/reemkandil/askbob-project-mgmt/internal/session"
	"github.com/reemkandil/askbob-project-mgmt/internal/tracker"
	"github.com/reemkandil/askbob-project-mgmt/internal/tui/authview"
	"github.com/reemkandil/askbob-project-mgmt/internal/tui/board"
	"github.com/reemkandil/askbob-project-mgmt/internal/tui/projectlist"
	"github.com/reemkandil/askbob-project-mgmt/internal/tui/styles"
)

// restoredMsg is sent when session restoration finishes.
type restoredMsg struct{}

// authDoneMsg is sent when a login or registration attempt completes.
type authDoneMsg struct {
	err error
}

// projectsLoadedMsg is sent when the project list read completes.
type projectsLoadedMsg struct {
	projects []domain.Project
	err      error
}

// boardLoadedMsg is sent when a project and its tasks are loaded.
type boardLoadedMsg struct {
	project *domain.Project
	tasks   []domain.Task
	err     error
}

// projectMutatedMsg is sent when a project mutation completes.
type projectMutatedMsg struct {
	err error
}

// taskMutatedMsg is sent when a task mutation completes.
type taskMutatedMsg struct {
	projectID string
	err       error
}

// App is the root model. The current route is resolved through the access
// gate on every navigation, so protected screens are unreachable without
// an authenticated session and restoration never flashes the login page.
type App struct {
	session *session.Store
	tracker *tracker.Tracker

	route  gate.Route
	width  int
	height int
	spin   spinner.Model
	err    error

	auth     *authview.Auth
	projects *projectlist.List
	taskView *board.Board

	projectID string // project shown on the board
}

// New creates the TUI over an already-constructed session and tracker.
// The session may still be restoring; the app starts on the loading screen.
func New(sess *session.Store, tr *tracker.Tracker) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &App{
		session: sess,
		tracker: tr,
		route:   gate.RouteLoading,
		spin:    sp,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.restore())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.taskView != nil {
			a.taskView.SetWidth(msg.Width)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.routeMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case restoredMsg:
		return a.navigate(gate.RouteProjects)

	case authview.LoginSubmitMsg:
		return a, a.login(msg.Email, msg.Password)

	case authview.RegisterSubmitMsg:
		return a, a.register(msg.Input)

	case authDoneMsg:
		if msg.err != nil {
			if a.auth != nil {
				a.auth.SetError(msg.err.Error())
			}
			return a, nil
		}
		return a.navigate(gate.RouteProjects)

	case projectsLoadedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		if a.projects == nil {
			a.projects = projectlist.New(msg.projects)
		} else {
			a.projects.SetProjects(msg.projects)
		}
		a.route = gate.RouteProjects
		return a, nil

	case boardLoadedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		if a.taskView == nil {
			a.taskView = board.New(msg.project, msg.tasks, a.width)
		} else {
			a.taskView.SetProject(msg.project)
			a.taskView.SetTasks(msg.tasks)
		}
		a.route = gate.RouteProject
		return a, nil

	case projectlist.OpenMsg:
		a.projectID = msg.ID
		a.taskView = nil
		return a.navigate(gate.RouteProject)

	case projectlist.CreateMsg:
		return a, a.createProject(msg.Name, msg.Description)

	case projectlist.DeleteMsg:
		return a, a.deleteProject(msg.ID)

	case projectlist.QuitMsg:
		return a, tea.Quit

	case board.BackMsg:
		return a.navigate(gate.RouteProjects)

	case board.CreateTaskMsg:
		return a, a.createTask(msg.ProjectID, msg.Input)

	case board.SetTaskStatusMsg:
		return a, a.setTaskStatus(msg.ProjectID, msg.TaskID, msg.Status)

	case board.SetProjectStatusMsg:
		return a, a.setProjectStatus(msg.ProjectID, msg.Status)

	case board.DeleteTaskMsg:
		return a, a.deleteTask(msg.ProjectID, msg.TaskID)

	case projectMutatedMsg:
		if msg.err != nil {
			a.surfaceError(msg.err)
			return a, nil
		}
		// Invalidation already happened; re-read to reflect server truth.
		if a.route == gate.RouteProject {
			return a, a.loadBoard(a.projectID)
		}
		return a, a.loadProjects()

	case taskMutatedMsg:
		if msg.err != nil {
			a.surfaceError(msg.err)
			return a, nil
		}
		return a, a.loadBoard(msg.projectID)

	}

	// huh forms need all remaining messages to animate and validate.
	return a.routeMsg(msg)
}

// View implements tea.Model.
func (a *App) View() string {
	switch a.route {
	case gate.RouteLoading:
		return lipgloss.NewStyle().Padding(1, 2).Render(a.spin.View() + " Loading...")
	case gate.RouteAuth:
		if a.auth == nil {
			return ""
		}
		return a.auth.View()
	case gate.RouteProjects:
		if a.err != nil {
			return a.errorPage("Error loading projects: " + a.err.Error())
		}
		if a.projects == nil {
			return lipgloss.NewStyle().Padding(1, 2).Render(a.spin.View() + " Loading projects...")
		}
		return lipgloss.NewStyle().Padding(1, 2).Render(a.projects.View())
	case gate.RouteProject:
		if a.err != nil {
			return a.errorPage("Error loading project: " + a.err.Error())
		}
		if a.taskView == nil {
			return lipgloss.NewStyle().Padding(1, 2).Render(a.spin.View() + " Loading project...")
		}
		return lipgloss.NewStyle().Padding(1, 2).Render(a.taskView.View())
	}
	return ""
}

// navigate resolves a route through the gate and kicks off whatever load
// the resolved screen needs.
func (a *App) navigate(route gate.Route) (tea.Model, tea.Cmd) {
	decision := gate.Decide(route, gate.State{
		Restoring:     a.session.Loading(),
		Authenticated: a.session.Authenticated(),
	})
	if !decision.Allow {
		route = decision.Redirect
	}

	a.route = route
	switch route {
	case gate.RouteAuth:
		if a.auth == nil {
			a.auth = authview.New()
			return a, a.auth.Init()
		}
		return a, nil
	case gate.RouteProjects:
		return a, a.loadProjects()
	case gate.RouteProject:
		return a, a.loadBoard(a.projectID)
	}
	return a, nil
}

// routeMsg forwards a message to the active screen's model.
func (a *App) routeMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch a.route {
	case gate.RouteAuth:
		if a.auth == nil {
			return a, nil
		}
		model, cmd := a.auth.Update(msg)
		a.auth = model.(*authview.Auth)
		return a, cmd
	case gate.RouteProjects:
		if a.projects == nil {
			return a, nil
		}
		model, cmd := a.projects.Update(msg)
		a.projects = model.(*projectlist.List)
		return a, cmd
	case gate.RouteProject:
		if a.taskView == nil {
			return a, nil
		}
		model, cmd := a.taskView.Update(msg)
		a.taskView = model.(*board.Board)
		return a, cmd
	}
	return a, nil
}

// surfaceError shows a mutation failure inline on the active screen.
func (a *App) surfaceError(err error) {
	switch a.route {
	case gate.RouteProjects:
		if a.projects != nil {
			a.projects.SetError(err.Error())
		}
	case gate.RouteProject:
		if a.taskView != nil {
			a.taskView.SetError(err.Error())
		}
	}
}

func (a *App) errorPage(msg string) string {
	return lipgloss.NewStyle().Padding(1, 2).Render(
		styles.ErrorText.Render(msg) + "\n" + styles.Help.Render("q: quit"))
}

func (a *App) restore() tea.Cmd {
	return func() tea.Msg {
		a.session.Restore(context.Background())
		return restoredMsg{}
	}
}

func (a *App) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		_, err := a.session.Login(context.Background(), email, password)
		return authDoneMsg{err: err}
	}
}

func (a *App) register(input session.RegisterInput) tea.Cmd {
	return func() tea.Msg {
		_, err := a.session.Register(context.Background(), input)
		return authDoneMsg{err: err}
	}
}

func (a *App) loadProjects() tea.Cmd {
	return func() tea.Msg {
		projects, err := a.tracker.Projects(context.Background())
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func (a *App) loadBoard(projectID string) tea.Cmd {
	return func() tea.Msg {
		project, err := a.tracker.Project(context.Background(), projectID)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		tasks, err := a.tracker.Tasks(context.Background(), projectID)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		return boardLoadedMsg{project: project, tasks: tasks}
	}
}

func (a *App) createProject(name, description string) tea.Cmd {
	return func() tea.Msg {
		_, err := a.tracker.CreateProject(context.Background(), tracker.CreateProjectInput{
			Name:        name,
			Description: description,
		})
		return projectMutatedMsg{err: err}
	}
}

func (a *App) deleteProject(id string) tea.Cmd {
	return func() tea.Msg {
		return projectMutatedMsg{err: a.tracker.DeleteProject(context.Background(), id)}
	}
}

func (a *App) setProjectStatus(id string, status domain.ProjectStatus) tea.Cmd {
	return func() tea.Msg {
		_, err := a.tracker.UpdateProject(context.Background(), id, tracker.UpdateProjectInput{
			Status: &status,
		})
		return projectMutatedMsg{err: err}
	}
}

func (a *App) createTask(projectID string, input tracker.CreateTaskInput) tea.Cmd {
	return func() tea.Msg {
		_, err := a.tracker.CreateTask(context.Background(), projectID, input)
		return taskMutatedMsg{projectID: projectID, err: err}
	}
}

func (a *App) setTaskStatus(projectID, taskID string, status domain.TaskStatus) tea.Cmd {
	return func() tea.Msg {
		_, err := a.tracker.UpdateTask(context.Background(), projectID, taskID, tracker.UpdateTaskInput{
			Status: &status,
		})
		return taskMutatedMsg{projectID: projectID, err: err}
	}
}

func (a *App) deleteTask(projectID, taskID string) tea.Cmd {
	return func() tea.Msg {
		return taskMutatedMsg{
			projectID: projectID,
			err:       a.tracker.DeleteTask(context.Background(), projectID, taskID),
		}
	}
}

// Run starts the TUI.
func Run(sess *session.Store, tr *tracker.Tracker) error {
	p := tea.NewProgram(
		New(sess, tr),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
