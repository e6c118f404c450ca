package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/donut-tui/donut-tui/internal/components"
	"github.com/donut-tui/donut-tui/internal/model"
	"github.com/donut-tui/donut-tui/internal/theme"
	"github.com/donut-tui/donut-tui/internal/utils"
)

// testStep runs the trained model over the uploaded documents and
// shows per-document extraction results.
type testStep struct {
	table *components.TableView
}

func (s *testStep) init(m *Model) {
	s.table = components.NewTableView("Extraction results").
		SetSelectable(true).
		SetColumns([]components.TableColumn{
			{Header: "Document", Width: 0},
			{Header: "Exact", Width: 7},
			{Header: "Fields", Width: 8, Align: "right"},
			{Header: "Latency", Width: 9, Align: "right"},
		})
	s.refresh(m)
}

func (s *testStep) refresh(m *Model) {
	st := m.state()
	rows := make([]components.TableRow, 0, len(st.TestResults))
	for _, d := range st.UploadedDocuments {
		res, ok := st.TestResults[d.ID]
		if !ok {
			continue
		}
		exact := theme.IconCross
		if res.ExactMatch {
			exact = theme.IconCheck
		}
		rows = append(rows, components.TableRow{
			Cells: []string{
				d.Filename,
				exact,
				fmt.Sprintf("%d", len(res.Fields)),
				fmt.Sprintf("%d ms", res.InferenceMS),
			},
			Ref: res,
		})
	}
	s.table.SetRows(rows)
}

func (s *testStep) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "t" {
		return s.run(m)
	}
	s.table.HandleKey(msg)
	return nil
}

// run executes the extraction test against every uploaded document.
func (s *testStep) run(m *Model) tea.Cmd {
	st := m.state()
	if st.TrainedModel == nil {
		return m.setAlert("Train a model first", true)
	}
	if len(st.UploadedDocuments) == 0 {
		return m.setAlert("No documents to test against", true)
	}

	client := m.deps.Client
	modelID := st.TrainedModel.ID
	docs := st.UploadedDocuments
	fields := st.Fields
	m.busy = true

	return func() tea.Msg {
		results, err := client.TestModel(modelID, docs, fields)
		if err != nil {
			return errMsg{err}
		}
		return testResultsMsg{results: results}
	}
}

func (s *testStep) render(m *Model, width, height int) string {
	st := m.state()

	if len(st.TestResults) == 0 {
		return theme.TextDimStyle.Render("Press [T] to run the model over your documents.") + "\n\n" +
			theme.RenderHelpBar([]string{"[T] Run Test"}, width-4)
	}

	s.refresh(m)
	s.table.SetSize(width-4, height-12)

	var b strings.Builder
	b.WriteString(s.table.Render() + "\n")

	// Field detail for the highlighted document.
	if row, i := s.table.CurrentRow(); i >= 0 {
		b.WriteString(s.renderDetail(m, row))
	}

	b.WriteString("\n" + theme.RenderHelpBar([]string{
		"[T] Re-run", "[↑↓] Inspect", "[Ctrl+N] Continue",
	}, width-4))
	return b.String()
}

func (s *testStep) renderDetail(m *Model, row components.TableRow) string {
	res, ok := row.Ref.(model.TestResult)
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n" + theme.TextBoldStyle.Render("Extracted fields") + "\n")
	for _, f := range m.state().Fields {
		ef, ok := res.Fields[f.ID]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf(" %s %s %s\n",
			utils.PadString(f.Name, 22),
			utils.PadString(utils.TruncateString(ef.Value, 28), 28),
			theme.TextDimStyle.Render(utils.FormatPercent(ef.Confidence))))
	}
	return b.String()
}
