package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/donut-tui/donut-tui/internal/backend"
	"github.com/donut-tui/donut-tui/views/dashboard"
)

// DashboardView wraps the dashboard model to provide a consistent interface
type DashboardView struct {
	model dashboard.Model
}

// NewDashboardView creates a new dashboard view
func NewDashboardView(client *backend.Client) DashboardView {
	return DashboardView{
		model: dashboard.New(client),
	}
}

// Init initializes the dashboard view
func (d DashboardView) Init() tea.Cmd {
	return d.model.Init()
}

// Update updates the dashboard view
func (d DashboardView) Update(msg tea.Msg) (DashboardView, tea.Cmd) {
	newModel, cmd := d.model.Update(msg)
	return DashboardView{model: newModel}, cmd
}

// View renders the dashboard view
func (d DashboardView) View() string {
	return d.model.View()
}

// GetCursor returns the current cursor position (for compatibility with main.go)
func (d DashboardView) GetCursor() int {
	return d.model.GetCursor()
}
