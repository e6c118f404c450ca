package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/donut-tui/donut-tui/internal/theme"
	"github.com/donut-tui/donut-tui/internal/utils"
)

// ProgressBar - determinate or indeterminate progress display, used
// by the wizard shell for overall completion and by the training
// monitor for epoch/step progress.
type ProgressBar struct {
	// Progress data
	current    int64
	total      int64
	percentage float64

	// Configuration
	width       int
	showPercent bool
	showNumbers bool
	showETA     bool
	label       string

	// Animation
	indeterminate bool
	animFrame     int

	// ETA calculation
	startTime time.Time

	// Styling
	fillChar  string
	emptyChar string
}

// NewProgressBar creates a new progress bar component
func NewProgressBar(total int64) *ProgressBar {
	return &ProgressBar{
		total:       total,
		width:       40,
		showPercent: true,
		showNumbers: true,
		fillChar:    "█",
		emptyChar:   "░",
		startTime:   time.Now(),
	}
}

// NewIndeterminateProgressBar creates a progress bar for unknown
// duration tasks
func NewIndeterminateProgressBar() *ProgressBar {
	return &ProgressBar{
		indeterminate: true,
		width:         40,
		fillChar:      "▶",
		emptyChar:     "─",
		startTime:     time.Now(),
	}
}

// Configuration methods
func (pb *ProgressBar) SetWidth(width int) *ProgressBar {
	pb.width = width
	return pb
}

func (pb *ProgressBar) SetLabel(label string) *ProgressBar {
	pb.label = label
	return pb
}

func (pb *ProgressBar) SetShowPercent(show bool) *ProgressBar {
	pb.showPercent = show
	return pb
}

func (pb *ProgressBar) SetShowNumbers(show bool) *ProgressBar {
	pb.showNumbers = show
	return pb
}

func (pb *ProgressBar) SetShowETA(show bool) *ProgressBar {
	pb.showETA = show
	return pb
}

// Progress methods
func (pb *ProgressBar) SetProgress(current, total int64) *ProgressBar {
	pb.current = current
	pb.total = total

	if total > 0 {
		pb.percentage = utils.SafePercent(current, total)
	}
	return pb
}

func (pb *ProgressBar) SetPercentage(percentage float64) *ProgressBar {
	pb.percentage = percentage
	if percentage < 0 {
		pb.percentage = 0
	} else if percentage > 100 {
		pb.percentage = 100
	}

	if pb.total > 0 {
		pb.current = int64(pb.percentage / 100 * float64(pb.total))
	}
	return pb
}

// Tick advances the indeterminate animation one frame.
func (pb *ProgressBar) Tick() *ProgressBar {
	if pb.indeterminate {
		pb.animFrame++
		if pb.animFrame >= pb.width {
			pb.animFrame = 0
		}
	}
	return pb
}

// Status methods
func (pb *ProgressBar) IsComplete() bool {
	if pb.indeterminate {
		return false
	}
	return pb.total > 0 && pb.current >= pb.total
}

func (pb *ProgressBar) GetPercentage() float64 {
	return pb.percentage
}

func (pb *ProgressBar) GetETA() time.Duration {
	if pb.indeterminate || pb.current <= 0 || pb.total <= 0 {
		return 0
	}

	elapsed := time.Since(pb.startTime).Seconds()
	if elapsed <= 0 {
		return 0
	}
	rate := float64(pb.current) / elapsed
	if rate <= 0 {
		return 0
	}

	remaining := pb.total - pb.current
	return time.Duration(float64(remaining)/rate) * time.Second
}

// Rendering
func (pb *ProgressBar) Render() string {
	lines := []string{}

	if pb.label != "" {
		lines = append(lines, theme.TextBoldStyle.Render(pb.label))
	}

	lines = append(lines, pb.renderBar())

	if statusLine := pb.renderStatus(); statusLine != "" {
		lines = append(lines, statusLine)
	}

	return strings.Join(lines, "\n")
}

// RenderCompact renders just the bar for inline use.
func (pb *ProgressBar) RenderCompact() string {
	return pb.renderBar()
}

func (pb *ProgressBar) renderBar() string {
	if pb.indeterminate {
		return pb.renderIndeterminateBar()
	}

	filled := int(pb.percentage / 100 * float64(pb.width))
	if filled > pb.width {
		filled = pb.width
	}

	bar := theme.ProgressBarStyle.Render(strings.Repeat(pb.fillChar, filled)) +
		theme.ProgressBarEmptyStyle.Render(strings.Repeat(pb.emptyChar, pb.width-filled))
	return bar
}

func (pb *ProgressBar) renderIndeterminateBar() string {
	// A single marker sweeping across the track.
	var b strings.Builder
	for i := 0; i < pb.width; i++ {
		if i == pb.animFrame {
			b.WriteString(theme.ProgressBarStyle.Render(pb.fillChar))
		} else {
			b.WriteString(theme.ProgressBarEmptyStyle.Render(pb.emptyChar))
		}
	}
	return b.String()
}

func (pb *ProgressBar) renderStatus() string {
	if pb.indeterminate {
		return theme.TextDimStyle.Render(
			"elapsed " + utils.FormatDurationShort(time.Since(pb.startTime)))
	}

	parts := []string{}
	if pb.showPercent {
		parts = append(parts, fmt.Sprintf("%.0f%%", pb.percentage))
	}
	if pb.showNumbers && pb.total > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", pb.current, pb.total))
	}
	if pb.showETA {
		if eta := pb.GetETA(); eta > 0 {
			parts = append(parts, "ETA "+utils.FormatDurationShort(eta))
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return theme.TextDimStyle.Render(strings.Join(parts, "  "))
}
