package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/donut-tui/donut-tui/internal/autosave"
	"github.com/donut-tui/donut-tui/internal/backend"
	"github.com/donut-tui/donut-tui/internal/config"
	"github.com/donut-tui/donut-tui/internal/logging"
	"github.com/donut-tui/donut-tui/views"
	wizardview "github.com/donut-tui/donut-tui/views/wizard"
)

const Version = "0.1.0"

const wizardSaveKey = "wizard_session"

type model struct {
	currentView   string
	loginView     views.LoginModel
	dashboardView views.DashboardView
	analyticsView *views.AnalyticsModel
	wizardView    *wizardview.Model
	deps          wizardview.Deps
	width         int
	height        int
	initialized   map[string]bool
}

func initialModel(deps wizardview.Deps) model {
	return model{
		currentView:   "login",
		loginView:     views.NewLoginModel(deps.Client),
		dashboardView: views.NewDashboardView(deps.Client),
		deps:          deps,
		initialized:   make(map[string]bool),
	}
}

func (m model) Init() tea.Cmd {
	m.initialized["login"] = true
	return m.loginView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
	}

	if strMsg, ok := msg.(string); ok {
		switch strMsg {
		case "main_menu", "dashboard_view":
			m.currentView = "dashboard"
			if !m.initialized["dashboard"] {
				m.initialized["dashboard"] = true
				return m, m.dashboardView.Init()
			}
		case "wizard_view":
			m.currentView = "wizard"
			if m.wizardView == nil {
				wiz := wizardview.New(m.deps)
				m.wizardView = &wiz
				m.initialized["wizard"] = true
				return m, tea.Batch(m.wizardView.Init(), m.resize())
			}
			// Re-entering an existing session restarts status polling.
			return m, tea.Batch(m.wizardView.ResumePolling(), m.resize())
		case "analytics_view":
			m.currentView = "analytics"
			if m.analyticsView == nil {
				analytics := views.NewAnalyticsModel(m.deps.Client)
				m.analyticsView = &analytics
				m.initialized["analytics"] = true
				return m, tea.Batch(m.analyticsView.Init(), m.resize())
			}
		}
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "login":
		m.loginView, cmd = m.loginView.Update(msg)
	case "dashboard":
		m.dashboardView, cmd = m.dashboardView.Update(msg)
	case "wizard":
		if m.wizardView != nil {
			*m.wizardView, cmd = m.wizardView.Update(msg)
		}
	case "analytics":
		if m.analyticsView != nil {
			*m.analyticsView, cmd = m.analyticsView.Update(msg)
		}
	}

	return m, cmd
}

// resize replays the window size to a freshly created view.
func (m model) resize() tea.Cmd {
	if m.width == 0 {
		return nil
	}
	size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
	return func() tea.Msg { return size }
}

func (m model) View() string {
	switch m.currentView {
	case "login":
		return m.loginView.View()
	case "dashboard":
		return m.dashboardView.View()
	case "wizard":
		if m.wizardView != nil {
			return m.wizardView.View()
		}
	case "analytics":
		if m.analyticsView != nil {
			return m.analyticsView.View()
		}
	}
	return m.dashboardView.View()
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("donut-tui v%s\n", Version)
		os.Exit(0)
	}

	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logging.Init(&logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Dir:    config.DataDir(),
	})

	store, err := autosave.NewFileStore(cfg.Autosave.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "autosave: %v\n", err)
		os.Exit(1)
	}
	saver := autosave.NewSaver(store, wizardSaveKey,
		autosave.WithDelay(cfg.AutosaveDelay()),
		autosave.WithTTL(cfg.AutosaveTTL()))

	deps := wizardview.Deps{
		Cfg:    cfg,
		Client: backend.NewClient(cfg),
		Saver:  saver,
	}

	p := tea.NewProgram(initialModel(deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
	slog.Info("shutdown")
}
