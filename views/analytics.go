package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/donut-tui/donut-tui/internal/backend"
	"github.com/donut-tui/donut-tui/internal/theme"
	"github.com/donut-tui/donut-tui/internal/utils"
)

var sparkChars = []rune("▁▂▃▄▅▆▇█")

// AnalyticsModel shows extraction trends: the accuracy sparkline and
// per-document-type volume.
type AnalyticsModel struct {
	client  *backend.Client
	metrics *backend.Metrics
	width   int
	height  int
	err     error
}

type analyticsTickMsg time.Time

type analyticsDataMsg struct {
	metrics *backend.Metrics
	err     error
}

func NewAnalyticsModel(client *backend.Client) AnalyticsModel {
	return AnalyticsModel{client: client, width: 100, height: 30}
}

func (m AnalyticsModel) Init() tea.Cmd {
	return tea.Batch(m.load(), analyticsTick())
}

func analyticsTick() tea.Cmd {
	return tea.Tick(5*time.Second, func(t time.Time) tea.Msg {
		return analyticsTickMsg(t)
	})
}

func (m AnalyticsModel) load() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		metrics, err := client.Metrics()
		return analyticsDataMsg{metrics: metrics, err: err}
	}
}

func (m AnalyticsModel) Update(msg tea.Msg) (AnalyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case analyticsTickMsg:
		return m, tea.Batch(m.load(), analyticsTick())

	case analyticsDataMsg:
		m.metrics = msg.metrics
		m.err = msg.err

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			return m, func() tea.Msg { return "dashboard_view" }
		}
	}
	return m, nil
}

func (m AnalyticsModel) View() string {
	header := theme.RenderTitle(theme.IconResults, "Analytics")

	var body string
	switch {
	case m.err != nil:
		body = theme.ErrorStyle.Render(m.err.Error())
	case m.metrics == nil:
		body = theme.TextDimStyle.Render("Loading...")
	default:
		body = m.renderMetrics()
	}

	panel := theme.PanelActiveStyle.
		Width(m.width - 2).
		Height(m.height - 5).
		Render(body)

	footer := theme.RenderHelpBar([]string{"[Esc] Dashboard", "[Q] Quit"}, m.width)
	return lipgloss.JoinVertical(lipgloss.Left, header, panel, footer)
}

func (m AnalyticsModel) renderMetrics() string {
	s := m.metrics
	var b strings.Builder

	b.WriteString(theme.TextBoldStyle.Render("Field accuracy, last 14 days") + "\n")
	b.WriteString(sparkline(s.AccuracyTrend) + "  " +
		theme.TextDimStyle.Render("now "+utils.FormatPercent(s.AvgFieldAccuracy)) + "\n\n")

	b.WriteString(theme.TextBoldStyle.Render("Extractions by document type") + "\n")
	b.WriteString(m.renderTypeBars() + "\n")

	b.WriteString(theme.TextBoldStyle.Render("Totals") + "\n")
	b.WriteString(utils.PadString("Documents processed", 24) +
		utils.FormatNumber(int64(s.DocumentsProcessed)) + "\n")
	b.WriteString(utils.PadString("Models trained", 24) +
		utils.FormatNumber(int64(s.ModelsTrained)) + "\n")
	b.WriteString(utils.PadString("Avg inference", 24) +
		fmt.Sprintf("%d ms", s.AvgInferenceMS) + "\n")

	return b.String()
}

func (m AnalyticsModel) renderTypeBars() string {
	s := m.metrics
	if len(s.ExtractionsByType) == 0 {
		return theme.TextDimStyle.Render("No extractions yet.") + "\n"
	}

	names := make([]string, 0, len(s.ExtractionsByType))
	max := 0
	for name, n := range s.ExtractionsByType {
		names = append(names, name)
		if n > max {
			max = n
		}
	}
	sort.Strings(names)

	barWidth := m.width - 44
	if barWidth < 10 {
		barWidth = 10
	}

	var b strings.Builder
	for _, name := range names {
		n := s.ExtractionsByType[name]
		filled := 0
		if max > 0 {
			filled = n * barWidth / max
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		b.WriteString(utils.PadString(utils.TruncateString(name, 22), 24) +
			theme.ProgressBarStyle.Render(bar) +
			fmt.Sprintf(" %d\n", n))
	}
	return b.String()
}

// sparkline maps a series onto eighth-block characters.
func sparkline(series []float64) string {
	if len(series) == 0 {
		return ""
	}

	lo, hi := series[0], series[0]
	for _, v := range series {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var b strings.Builder
	for _, v := range series {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkChars)-1))
		}
		b.WriteRune(sparkChars[idx])
	}
	return theme.InfoStyle.Render(b.String())
}
