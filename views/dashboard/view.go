package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/donut-tui/donut-tui/internal/theme"
	"github.com/donut-tui/donut-tui/internal/utils"
)

func (m Model) View() string {
	header := theme.RenderTitle(theme.IconDashboard, "Donut Trainer")

	sidebarWidth := m.width / 4
	if sidebarWidth < 24 {
		sidebarWidth = 24
	}
	mainWidth := m.width - sidebarWidth - 3
	contentHeight := m.height - 5

	sidebar := theme.PanelStyle.
		Width(sidebarWidth).
		Height(contentHeight).
		Render(m.renderSidebar(sidebarWidth - 2))

	main := theme.PanelActiveStyle.
		Width(mainWidth).
		Height(contentHeight).
		Render(m.renderMain(mainWidth-4, contentHeight-2))

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", main)
	footer := theme.RenderHelpBar(append(theme.GetStandardHelpItems(),
		"[W] Wizard", "[A] Analytics"), m.width)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderSidebar(width int) string {
	items := make([]theme.NavigationItem, 0, len(m.sidebarItems))
	for _, it := range m.sidebarItems {
		items = append(items, theme.NavigationItem{
			Label: it.Icon + " " + it.Title,
		})
	}
	menu := theme.RenderNavigationMenu(items, m.cursor, width)

	status := theme.TextDimStyle.Render("updated " + m.lastUpdate.Format("15:04:05"))
	if m.lastUpdate.IsZero() {
		status = theme.TextDimStyle.Render("loading...")
	}

	return menu + "\n\n" + status
}

func (m Model) renderMain(width, height int) string {
	if m.err != nil {
		return theme.ErrorStyle.Render(m.err.Error())
	}
	if m.metrics == nil {
		return theme.TextDimStyle.Render("Loading metrics...")
	}

	if m.cursor < len(m.sidebarItems) && m.sidebarItems[m.cursor].Action == "keys" {
		return m.renderCards(width) + "\n\n" + m.renderAPIKeys(width)
	}

	return m.renderCards(width) + "\n\n" + m.renderModels(width) +
		"\n" + m.renderActivity(width)
}

func (m Model) renderActivity(width int) string {
	var b strings.Builder
	b.WriteString(theme.TextBoldStyle.Render("Recent activity") + "\n")

	if len(m.activity) == 0 {
		b.WriteString(theme.TextDimStyle.Render("Nothing yet."))
		return b.String()
	}

	for _, a := range m.activity {
		b.WriteString(theme.TextDimStyle.Render(a.At.Format("15:04:05")) +
			"  " + utils.TruncateString(a.Message, width-10) + "\n")
	}
	return b.String()
}

func (m Model) renderCards(width int) string {
	cardWidth := (width - 6) / 4
	if cardWidth < 14 {
		cardWidth = 14
	}

	card := func(label, value string) string {
		return theme.PanelStyle.Width(cardWidth).Render(
			theme.TextDimStyle.Render(label) + "\n" +
				theme.TitleStyle.Render(value))
	}

	s := m.metrics
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Documents", utils.FormatNumber(int64(s.DocumentsProcessed))),
		card("Models", utils.FormatNumber(int64(s.ModelsTrained))),
		card("Active jobs", utils.FormatNumber(int64(s.ActiveJobs))),
		card("Avg accuracy", utils.FormatPercent(s.AvgFieldAccuracy)),
	)
}

func (m Model) renderModels(width int) string {
	var b strings.Builder
	b.WriteString(theme.TextBoldStyle.Render("Trained models") + "\n")

	if len(m.models) == 0 {
		b.WriteString(theme.TextDimStyle.Render("None yet. Run the training wizard to create one."))
		return b.String()
	}

	b.WriteString(theme.TableHeaderStyle.Render(
		utils.PadString("Name", 24) +
			utils.PadString("Version", 9) +
			utils.PadString("Accuracy", 10) +
			utils.PadString("Status", 12) +
			"Created") + "\n")

	for _, tm := range m.models {
		status := tm.Status
		if tm.IsProduction {
			status = "production"
		}
		b.WriteString(
			utils.PadString(utils.TruncateString(tm.Name, 22), 24) +
				utils.PadString("v"+tm.Version, 9) +
				utils.PadString(utils.FormatPercent(tm.FieldAccuracy), 10) +
				theme.StatusTextStyle(status).Render(utils.PadString(status, 12)) +
				theme.TextDimStyle.Render(tm.CreatedAt.Format("2006-01-02 15:04")) + "\n")
	}
	return b.String()
}

func (m Model) renderAPIKeys(width int) string {
	var b strings.Builder
	b.WriteString(theme.TextBoldStyle.Render("API keys") + "\n")

	if len(m.apiKeys) == 0 {
		b.WriteString(theme.TextDimStyle.Render("No keys issued. Create one from the wizard's deploy step."))
		return b.String()
	}

	for _, k := range m.apiKeys {
		active := theme.IconCheck
		if !k.IsActive {
			active = theme.IconCross
		}
		b.WriteString(fmt.Sprintf(" %s %s %s %s\n",
			active,
			utils.PadString(utils.TruncateString(k.Name, 28), 28),
			utils.PadString(k.KeyPrefix+"...", 14),
			theme.TextDimStyle.Render(fmt.Sprintf("%d req", k.TotalRequests))))
	}
	return b.String()
}
