// ABOUTME: Login and registration screen as a bubbletea model
// ABOUTME: huh forms that emit submit messages for the app to execute

package authview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/reemkandil/askbob-project-mgmt/internal/domain"
	"github.com/reemkandil/askbob-project-mgmt/internal/session"
	"github.com/reemkandil/askbob-project-mgmt/internal/tui/styles"
)

// LoginSubmitMsg is sent when the login form completes.
type LoginSubmitMsg struct {
	Email    string
	Password string
}

// RegisterSubmitMsg is sent when the registration form completes.
type RegisterSubmitMsg struct {
	Input session.RegisterInput
}

type mode int

const (
	modeLogin mode = iota
	modeRegister
)

// Auth is the authentication screen: a login form by default, switchable
// to registration with tab.
type Auth struct {
	mode mode
	form *huh.Form
	err  string

	email        string
	password     string
	firstName    string
	lastName     string
	tenantName   string
	tenantDomain string
}

// New creates the auth screen in login mode.
func New() *Auth {
	a := &Auth{}
	a.buildForm()
	return a
}

// SetError displays an inline error under the form, e.g. a rejected login.
func (a *Auth) SetError(msg string) {
	a.err = msg
}

// Init implements tea.Model.
func (a *Auth) Init() tea.Cmd {
	return a.form.Init()
}

// Update implements tea.Model.
func (a *Auth) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "tab" {
		a.toggleMode()
		return a, a.form.Init()
	}

	model, cmd := a.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		a.form = form
	}

	if a.form.State == huh.StateCompleted {
		submit := a.submitMsg()
		a.buildForm() // fresh form in case the submit is rejected
		return a, tea.Batch(cmd, func() tea.Msg { return submit })
	}
	return a, cmd
}

// View implements tea.Model.
func (a *Auth) View() string {
	title := "Sign In"
	hint := "tab: create an account instead"
	if a.mode == modeRegister {
		title = "Create Account"
		hint = "tab: sign in instead"
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("AskBob Project Management"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(title))
	b.WriteString("\n")
	b.WriteString(a.form.View())
	if a.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorText.Render(a.err))
	}
	b.WriteString("\n")
	b.WriteString(styles.Help.Render(hint))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (a *Auth) toggleMode() {
	if a.mode == modeLogin {
		a.mode = modeRegister
	} else {
		a.mode = modeLogin
	}
	a.err = ""
	a.buildForm()
}

func (a *Auth) submitMsg() tea.Msg {
	if a.mode == modeLogin {
		return LoginSubmitMsg{Email: a.email, Password: a.password}
	}
	return RegisterSubmitMsg{Input: session.RegisterInput{
		Email:        a.email,
		Password:     a.password,
		FirstName:    a.firstName,
		LastName:     a.lastName,
		TenantName:   a.tenantName,
		TenantDomain: a.tenantDomain,
	}}
}

func (a *Auth) buildForm() {
	if a.mode == modeLogin {
		a.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Email").
					Value(&a.email),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&a.password),
			),
		)
		return
	}

	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First Name").
				Value(&a.firstName),
			huh.NewInput().
				Title("Last Name").
				Value(&a.lastName),
			huh.NewInput().
				Title("Email").
				Value(&a.email),
			huh.NewInput().
				Title("Password").
				Description("At least 6 characters").
				EchoMode(huh.EchoModePassword).
				Value(&a.password),
			huh.NewInput().
				Title("Organization Name").
				Value(&a.tenantName),
			huh.NewInput().
				Title("Organization Domain").
				Description("Derived from the name when left blank").
				Value(&a.tenantDomain).
				Validate(func(v string) error {
					if v == "" {
						return nil
					}
					if !domain.ValidTenantDomain(v) {
						return errInvalidDomain
					}
					return nil
				}),
		),
	)
}

var errInvalidDomain = validationError("only lowercase letters, numbers, and hyphens allowed")

type validationError string

func (e validationError) Error() string { return string(e) }
