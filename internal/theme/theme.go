package theme

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Monochrome palette - high contrast, no blue hues
	ColorBackground        = lipgloss.Color("#1A1A1A") // Near-black
	ColorBackgroundDarker  = lipgloss.Color("#111111")
	ColorBackgroundLighter = lipgloss.Color("#2A2A2A")

	// Text colors
	ColorForeground       = lipgloss.Color("#ECECEC")
	ColorForegroundDim    = lipgloss.Color("#8A8A8A")
	ColorForegroundBright = lipgloss.Color("#FFFFFF")

	// Border colors
	ColorBorderInactive = lipgloss.Color("#3A3A3A")
	ColorBorderActive   = lipgloss.Color("#D0D0D0")
	ColorBorderFocused  = lipgloss.Color("#FFFFFF")

	// Accent colors
	ColorAccent    = lipgloss.Color("#D0D0D0")
	ColorSecondary = lipgloss.Color("#8A8A8A")
	ColorSuccess   = lipgloss.Color("#7FBF7F") // Soft green
	ColorWarning   = lipgloss.Color("#E0B060") // Amber
	ColorError     = lipgloss.Color("#D07070") // Soft red
	ColorInfo      = lipgloss.Color("#A0A0A0")
	ColorHighlight = lipgloss.Color("#F0E68C")

	// Common aliases
	ColorPrimary = ColorAccent
	ColorText    = ColorForeground
	ColorBorder  = ColorBorderInactive
)

// Border characters - rounded style
const (
	BorderTop         = "─"
	BorderBottom      = "─"
	BorderLeft        = "│"
	BorderRight       = "│"
	BorderTopLeft     = "╭"
	BorderTopRight    = "╮"
	BorderBottomLeft  = "╰"
	BorderBottomRight = "╯"
	BorderDividerH    = "─"
	BorderDividerV    = "│"
)

// Icons - minimal Unicode symbols
const (
	IconFolder       = "▶"
	IconFile         = "▫"
	IconDocument     = "▫"
	IconModel        = "◆"
	IconDataset      = "▦"
	IconTraining     = "◈"
	IconResults      = "◉"
	IconDashboard    = "▣"
	IconSettings     = "●"
	IconCheck        = "✓"
	IconCross        = "✗"
	IconArrowRight   = "→"
	IconArrowLeft    = "←"
	IconDot          = "•"
	IconChevronRight = "›"
	IconStepDone     = "✓"
	IconStepActive   = "●"
	IconStepPending  = "○"
)

// Base styles
var (
	BaseStyle = lipgloss.NewStyle().
			Background(ColorBackground).
			Foreground(ColorForeground)

	TextStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	TextDimStyle = lipgloss.NewStyle().
			Foreground(ColorForegroundDim)

	TextBoldStyle = lipgloss.NewStyle().
			Foreground(ColorForegroundBright).
			Bold(true)

	// Panel styles with rounded borders
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderInactive).
			Padding(0, 1)

	PanelActiveStyle = PanelStyle.
				BorderForeground(ColorBorderActive)

	PanelFocusedStyle = PanelStyle.
				BorderForeground(ColorBorderFocused)

	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorForegroundBright).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorForegroundDim).
			Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	// Menu styles
	MenuItemStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Padding(0, 1)

	MenuItemSelectedStyle = lipgloss.NewStyle().
				Background(ColorBackgroundLighter).
				Foreground(ColorForegroundBright).
				Bold(true).
				Padding(0, 1)

	MenuItemFocusedStyle = lipgloss.NewStyle().
				Background(ColorAccent).
				Foreground(ColorBackground).
				Bold(true).
				Padding(0, 1)

	// Status styles
	StatusStyle = lipgloss.NewStyle().
			Background(ColorBackgroundDarker).
			Foreground(ColorForeground).
			Padding(0, 1)

	StatusSuccessStyle = StatusStyle.
				Foreground(ColorSuccess)

	StatusErrorStyle = StatusStyle.
				Foreground(ColorError)

	StatusWarningStyle = StatusStyle.
				Foreground(ColorWarning)

	// Footer styles
	FooterStyle = lipgloss.NewStyle().
			Background(ColorBackgroundDarker).
			Foreground(ColorForegroundDim).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Background(ColorBackgroundLighter).
			Foreground(ColorAccent).
			Padding(0, 1).
			Margin(0, 1)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	// Table styles
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				BorderBottom(true).
				BorderForeground(ColorBorderInactive)

	TableRowStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	TableRowSelectedStyle = lipgloss.NewStyle().
				Background(ColorBackgroundLighter).
				Foreground(ColorForegroundBright)

	// Input styles
	InputStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorderInactive).
			Padding(0, 1)

	InputFocusedStyle = InputStyle.
				BorderForeground(ColorBorderActive)

	// Button styles
	ButtonStyle = lipgloss.NewStyle().
			Background(ColorBackgroundLighter).
			Foreground(ColorForeground).
			Padding(0, 2).
			Margin(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderInactive)

	ButtonActiveStyle = lipgloss.NewStyle().
				Background(ColorAccent).
				Foreground(ColorBackground).
				Padding(0, 2).
				Margin(0, 1).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorAccent).
				Bold(true)

	// Progress bar styles
	ProgressBarStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)

	ProgressBarEmptyStyle = lipgloss.NewStyle().
				Foreground(ColorForegroundDim)
)

// StatusTextStyle maps a backend status string to a display style.
func StatusTextStyle(status string) lipgloss.Style {
	switch status {
	case "completed", "active", "labeled", "uploaded":
		return SuccessStyle
	case "failed", "error", "cancelled":
		return ErrorStyle
	case "preparing", "training", "evaluating", "processing", "testing", "pending":
		return WarningStyle
	default:
		return TextDimStyle
	}
}

// RenderTitle renders an icon + text title.
func RenderTitle(icon, text string) string {
	if icon != "" {
		return TitleStyle.Render(icon + " " + text)
	}
	return TitleStyle.Render(text)
}

// RenderSelection renders content with the focused-row treatment.
func RenderSelection(content string, width int) string {
	return MenuItemFocusedStyle.Width(width).Render(content)
}

// RenderKeyHelp renders a key binding with its description.
func RenderKeyHelp(key, desc string) string {
	return FooterKeyStyle.Render(key) + FooterDescStyle.Render(desc)
}
