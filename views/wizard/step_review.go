package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/donut-tui/donut-tui/internal/theme"
	"github.com/donut-tui/donut-tui/internal/utils"
)

// reviewStep summarizes the run before deployment: model metrics and
// aggregate test outcomes.
type reviewStep struct{}

func (s *reviewStep) init(m *Model) {}

func (s *reviewStep) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	return nil
}

func (s *reviewStep) render(m *Model, width, height int) string {
	st := m.state()
	tm := st.TrainedModel
	if tm == nil {
		return theme.TextDimStyle.Render("No trained model yet.")
	}

	var b strings.Builder

	b.WriteString(theme.TextBoldStyle.Render(tm.Name) +
		theme.TextDimStyle.Render("  v"+tm.Version) + "\n\n")

	metric := func(label string, v float64) {
		b.WriteString(utils.PadString(label, 22) +
			theme.TextBoldStyle.Render(utils.FormatPercent(v)) + "\n")
	}
	metric("JSON exact match", tm.JSONExactMatch)
	metric("Field accuracy", tm.FieldAccuracy)
	metric("Row recall", tm.RowRecall)
	b.WriteString(utils.PadString("Avg inference", 22) +
		theme.TextBoldStyle.Render(fmt.Sprintf("%.0f ms", tm.AvgInferenceTime*1000)) + "\n\n")

	if len(st.TestResults) > 0 {
		exact := 0
		totalMS := 0
		for _, r := range st.TestResults {
			if r.ExactMatch {
				exact++
			}
			totalMS += r.InferenceMS
		}
		n := len(st.TestResults)
		b.WriteString(theme.TextBoldStyle.Render("Test run") + "\n")
		b.WriteString(utils.PadString("Documents tested", 22) + fmt.Sprintf("%d", n) + "\n")
		b.WriteString(utils.PadString("Exact matches", 22) +
			fmt.Sprintf("%d (%s)", exact, utils.FormatPercent(float64(exact)/float64(n))) + "\n")
		b.WriteString(utils.PadString("Avg latency", 22) + fmt.Sprintf("%d ms", totalMS/n) + "\n\n")
	}

	b.WriteString(theme.TextBoldStyle.Render("Dataset") + "\n")
	if ds := st.Dataset; ds != nil {
		b.WriteString(utils.PadString("Documents", 22) + fmt.Sprintf("%d", len(st.UploadedDocuments)) + "\n")
		b.WriteString(utils.PadString("Labeled", 22) + fmt.Sprintf("%d", len(st.LabeledDocuments)) + "\n")
		b.WriteString(utils.PadString("Splits", 22) +
			fmt.Sprintf("%.0f/%.0f/%.0f", ds.TrainSplit*100, ds.ValSplit*100, ds.TestSplit*100) + "\n")
	}

	b.WriteString("\n" + theme.RenderHelpBar([]string{"[Ctrl+N] Continue to Deploy"}, width-4))
	return b.String()
}
