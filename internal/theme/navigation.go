package theme

import (
	"fmt"
	"strings"
)

// Navigation rendering shared by the wizard shell and dashboard.

// NavigationItem represents a single navigation entry: a wizard step,
// a sidebar action, or a top-level view.
type NavigationItem struct {
	Label     string
	Key       string
	Icon      string
	Active    bool
	Completed bool
	Disabled  bool
}

// RenderNavigationMenu renders a vertical navigation menu (the wizard
// step list, the dashboard sidebar).
func RenderNavigationMenu(items []NavigationItem, selectedIndex int, width int) string {
	if len(items) == 0 {
		return ""
	}

	lines := make([]string, 0, len(items))
	for i, item := range items {
		lines = append(lines, formatMenuItem(item, i == selectedIndex, width))
	}
	return strings.Join(lines, "\n")
}

func formatMenuItem(item NavigationItem, selected bool, width int) string {
	icon := IconStepPending
	switch {
	case item.Completed:
		icon = IconStepDone
	case item.Active:
		icon = IconStepActive
	}

	content := fmt.Sprintf(" %s  %s", icon, item.Label)

	if item.Key != "" {
		keyHelp := fmt.Sprintf("[%s]", item.Key)
		maxLabelWidth := width - len(keyHelp) - 5
		if len(item.Label) > maxLabelWidth && maxLabelWidth > 1 {
			label := item.Label[:maxLabelWidth-1] + "…"
			content = fmt.Sprintf(" %s  %s", icon, label)
		}
		padding := width - len(content) - len(keyHelp) - 1
		if padding > 0 {
			content += strings.Repeat(" ", padding) + keyHelp
		}
	}

	if selected {
		return RenderSelection(content, width)
	}
	if item.Disabled {
		return TextDimStyle.Width(width).Render(content)
	}
	if item.Completed {
		return SuccessStyle.Width(width).Render(content)
	}
	return TextStyle.Width(width).Render(content)
}

// RenderBreadcrumb renders a path of wizard steps, truncated from the
// left so the current step stays visible.
func RenderBreadcrumb(parts []string, width int) string {
	if len(parts) == 0 {
		return ""
	}

	separator := " " + IconChevronRight + " "
	breadcrumb := strings.Join(parts, separator)

	if len(breadcrumb) > width-3 {
		if len(parts) > 1 {
			lastPart := parts[len(parts)-1]
			secondLastPart := parts[len(parts)-2]
			shortBreadcrumb := "…" + separator + secondLastPart + separator + lastPart

			if len(shortBreadcrumb) <= width {
				breadcrumb = shortBreadcrumb
			} else {
				breadcrumb = "…" + separator + lastPart
			}
		}
	}

	return TextDimStyle.Width(width).Render(breadcrumb)
}

// RenderHelpBar renders the footer help line.
func RenderHelpBar(helpItems []string, width int) string {
	if len(helpItems) == 0 {
		return ""
	}

	helpText := strings.Join(helpItems, "  ")
	if len(helpText) > width-3 && width > 3 {
		helpText = helpText[:width-3] + "…"
	}
	return FooterStyle.Width(width).Render(helpText)
}

// GetStandardHelpItems returns the default navigation help shortcuts.
func GetStandardHelpItems() []string {
	return []string{
		"[↑↓] Navigate",
		"[Enter] Select",
		"[Tab] Switch",
		"[Esc] Back",
		"[Q] Quit",
	}
}

// GetWizardHelpItems returns the wizard shell help shortcuts.
func GetWizardHelpItems() []string {
	return []string{
		"[Ctrl+P] Back",
		"[Ctrl+N] Next",
		"[Tab] Field",
		"[Ctrl+S] Save Progress",
		"[Esc] Dashboard",
	}
}

// RenderStatusBar renders left- and right-aligned status segments.
func RenderStatusBar(leftItems, rightItems []string, width int) string {
	leftText := strings.Join(leftItems, " | ")
	rightText := strings.Join(rightItems, " | ")

	totalText := len(leftText) + len(rightText)
	if totalText >= width {
		maxRight := width - len(leftText) - 3
		if maxRight > 0 && len(rightText) > maxRight {
			rightText = rightText[:maxRight-1] + "…"
		} else if maxRight <= 0 {
			rightText = ""
		}
	}

	spacing := width - len(leftText) - len(rightText)
	if spacing < 0 {
		spacing = 0
	}

	return FooterStyle.Width(width).Render(leftText + strings.Repeat(" ", spacing) + rightText)
}
