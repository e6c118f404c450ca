package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/donut-tui/donut-tui/internal/backend"
	"github.com/donut-tui/donut-tui/internal/model"
	"github.com/donut-tui/donut-tui/internal/theme"
)

const refreshInterval = 2 * time.Second

// Model is the landing view: metric cards, the trained model table,
// and the sidebar into the other screens.
type Model struct {
	client *backend.Client

	width  int
	height int
	cursor int

	sidebarItems []MenuItem

	metrics    *backend.Metrics
	models     []model.TrainedModel
	apiKeys    []model.APIKey
	activity   []backend.ActivityEntry
	lastUpdate time.Time
	err        error
}

type MenuItem struct {
	Icon   string
	Title  string
	Action string
}

type tickMsg time.Time

type refreshMsg struct {
	metrics  *backend.Metrics
	models   []model.TrainedModel
	apiKeys  []model.APIKey
	activity []backend.ActivityEntry
	err      error
}

func New(client *backend.Client) Model {
	return Model{
		client: client,
		width:  100,
		height: 30,
		sidebarItems: []MenuItem{
			{Icon: theme.IconModel, Title: "Training Wizard", Action: "wizard_view"},
			{Icon: theme.IconResults, Title: "Analytics", Action: "analytics_view"},
			{Icon: theme.IconSettings, Title: "API Keys", Action: "keys"},
			{Icon: theme.IconCross, Title: "Quit", Action: "quit"},
		},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh pulls fresh aggregates from the backend.
func (m Model) refresh() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		msg := refreshMsg{}
		msg.metrics, msg.err = client.Metrics()
		if msg.err == nil {
			msg.models, msg.err = client.Models()
		}
		if msg.err == nil {
			msg.apiKeys, msg.err = client.ListAPIKeys()
		}
		if msg.err == nil {
			msg.activity, msg.err = client.RecentActivity(6)
		}
		return msg
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tea.Batch(m.refresh(), tick())

	case refreshMsg:
		m.err = msg.err
		if msg.err == nil {
			m.metrics = msg.metrics
			m.models = msg.models
			m.apiKeys = msg.apiKeys
			m.activity = msg.activity
			m.lastUpdate = time.Now()
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.sidebarItems)-1 {
			m.cursor++
		}
	case "enter":
		action := m.sidebarItems[m.cursor].Action
		switch action {
		case "quit":
			return m, tea.Quit
		case "keys":
			// Rendered inline in the main panel.
			return m, nil
		default:
			return m, func() tea.Msg { return action }
		}
	case "w":
		return m, func() tea.Msg { return "wizard_view" }
	case "a":
		return m, func() tea.Msg { return "analytics_view" }
	}
	return m, nil
}

// GetCursor exposes the sidebar position for the root model.
func (m Model) GetCursor() int {
	return m.cursor
}
