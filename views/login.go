package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/donut-tui/donut-tui/internal/backend"
	"github.com/donut-tui/donut-tui/internal/components"
	"github.com/donut-tui/donut-tui/internal/theme"
	"github.com/donut-tui/donut-tui/internal/validate"
)

// LoginModel is the entry screen. Credentials go to the mock
// backend, which issues the session token the rest of the app holds.
type LoginModel struct {
	client *backend.Client

	username *components.InputField
	password *components.InputField
	focusPwd bool

	session *backend.Session
	errText string
	busy    bool

	width  int
	height int
}

type loginResultMsg struct {
	session *backend.Session
	err     error
}

func NewLoginModel(client *backend.Client) LoginModel {
	username := components.NewInputField("dev").
		SetLabel("Username").
		SetMaxLength(64).
		SetRules(validate.Rules{Required: true}).
		SetFocused(true)

	password := components.NewInputField("password").
		SetLabel("Password").
		SetMaxLength(64).
		SetPassword(true).
		SetRules(validate.Rules{Required: true})

	return LoginModel{
		client:   client,
		username: username,
		password: password,
		width:    100,
		height:   30,
	}
}

func (m LoginModel) Init() tea.Cmd {
	return nil
}

// Session returns the authenticated session, nil before login.
func (m LoginModel) Session() *backend.Session {
	return m.session
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.session = msg.session
		return m, func() tea.Msg { return "dashboard_view" }

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m LoginModel) handleKey(msg tea.KeyMsg) (LoginModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		m.focusPwd = !m.focusPwd
		m.username.SetFocused(!m.focusPwd)
		m.password.SetFocused(m.focusPwd)
		return m, nil
	case "enter":
		if !m.focusPwd {
			m.focusPwd = true
			m.username.SetFocused(false)
			m.password.SetFocused(true)
			return m, nil
		}
		return m.submit()
	}

	if m.focusPwd {
		m.password.HandleKey(msg)
	} else {
		m.username.HandleKey(msg)
	}
	return m, nil
}

func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	m.username.Touch()
	m.password.Touch()
	if !m.username.IsValid() || !m.password.IsValid() {
		return m, nil
	}

	m.busy = true
	m.errText = ""
	client := m.client
	user := m.username.GetValue()
	pass := m.password.GetValue()

	return m, func() tea.Msg {
		session, err := client.Login(user, pass)
		return loginResultMsg{session: session, err: err}
	}
}

func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString(theme.RenderTitle(theme.IconModel, "Donut Trainer") + "\n")
	b.WriteString(theme.TextDimStyle.Render("Sign in to manage extraction models") + "\n\n")
	b.WriteString(m.username.SetWidth(32).Render() + "\n")
	b.WriteString(m.password.SetWidth(32).Render() + "\n")

	if m.busy {
		b.WriteString(theme.TextDimStyle.Render("Signing in...") + "\n")
	}
	if m.errText != "" {
		b.WriteString(theme.ErrorStyle.Render(m.errText) + "\n")
	}

	b.WriteString("\n" + theme.FooterKeyStyle.Render("[Tab] Switch  [Enter] Sign In  [Ctrl+C] Quit"))

	box := theme.PanelFocusedStyle.Width(48).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
