package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/donut-tui/donut-tui/internal/components"
	"github.com/donut-tui/donut-tui/internal/theme"
)

func (m Model) View() string {
	switch m.mode {
	case modeResumePrompt:
		return m.renderPrompt(
			"Saved session found",
			"A previous wizard session was saved less than a day ago.",
			"[R] Resume  [D] Discard")
	case modeResetConfirm:
		return m.renderPrompt(
			"Reset wizard?",
			"All progress in this session will be lost.",
			"[Y] Reset  [N] Cancel")
	}

	sidebarWidth := 28
	if m.width < 90 {
		sidebarWidth = 22
	}
	contentWidth := m.width - sidebarWidth - 5
	contentHeight := m.height - 6

	sidebar := m.renderSidebar(sidebarWidth, contentHeight)
	content := m.renderContent(contentWidth, contentHeight)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.PanelStyle.Width(sidebarWidth).Height(contentHeight).Render(sidebar),
		" ",
		theme.PanelActiveStyle.Width(contentWidth).Height(contentHeight).Render(content),
	)

	header := m.renderHeader()
	footer := theme.RenderHelpBar(theme.GetWizardHelpItems(), m.width)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader() string {
	s := m.state()

	parts := make([]string, 0, 3)
	for i := 0; i <= m.container.CurrentStep() && i < len(s.Steps); i++ {
		parts = append(parts, s.Steps[i].Title)
	}

	title := theme.RenderTitle(theme.IconModel, "Model Training Wizard")
	crumb := theme.RenderBreadcrumb(parts, m.width)

	line := title + "\n" + crumb
	if m.alert != "" {
		style := theme.InfoStyle
		if m.alertError {
			style = theme.ErrorStyle
		}
		line += "\n" + style.Render(m.alert)
	} else {
		line += "\n"
	}
	return line
}

func (m Model) renderSidebar(width, height int) string {
	s := m.state()

	items := make([]theme.NavigationItem, 0, len(s.Steps))
	for i, step := range s.Steps {
		items = append(items, theme.NavigationItem{
			Label:     fmt.Sprintf("%d. %s", i+1, step.Title),
			Active:    m.container.Active(i),
			Completed: step.Completed,
			Disabled:  i > m.container.CurrentStep() && !step.Completed,
		})
	}

	menu := theme.RenderNavigationMenu(items, m.container.CurrentStep(), width-2)

	bar := components.NewProgressBar(int64(len(s.Steps))).
		SetWidth(width - 4).
		SetShowPercent(true).
		SetProgress(int64(m.completedSteps()), int64(len(s.Steps)))

	saved := theme.TextDimStyle.Render("autosave on")
	if !m.savedAt.IsZero() {
		saved = theme.TextDimStyle.Render("saved " + m.savedAt.Format("15:04:05"))
	}

	return menu + "\n\n" + bar.RenderCompact() + "\n" + saved +
		"\n" + theme.TextDimStyle.Render("[1-9] jump to step")
}

func (m Model) completedSteps() int {
	done := 0
	for _, step := range m.state().Steps {
		if step.Completed {
			done++
		}
	}
	return done
}

func (m Model) renderContent(width, height int) string {
	cur := m.container.CurrentStep()
	s := m.state()

	var body string
	switch cur {
	case stepDocumentType:
		body = m.docType.render(&m, width, height)
	case stepFields:
		body = m.fields.render(&m, width, height)
	case stepUpload:
		body = m.upload.render(&m, width, height)
	case stepAnnotate:
		body = m.annotate.render(&m, width, height)
	case stepConfigure:
		body = m.configure.render(&m, width, height)
	case stepTrain:
		body = m.train.render(&m, width, height)
	case stepTest:
		body = m.test.render(&m, width, height)
	case stepReview:
		body = m.review.render(&m, width, height)
	case stepDeploy:
		body = m.deploy.render(&m, width, height)
	}

	head := theme.SubtitleStyle.Render(s.Steps[cur].Title) + "\n" +
		theme.TextDimStyle.Render(s.Steps[cur].Description)

	if m.busy {
		body += "\n\n" + m.spinner.View() + theme.TextDimStyle.Render("Working...")
	}

	return head + "\n\n" + body
}

func (m Model) renderPrompt(title, text, keys string) string {
	box := theme.PanelFocusedStyle.Width(52).Render(strings.Join([]string{
		theme.TextBoldStyle.Render(title),
		"",
		text,
		"",
		theme.FooterKeyStyle.Render(keys),
	}, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
