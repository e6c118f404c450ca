package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/donut-tui/donut-tui/internal/components"
	"github.com/donut-tui/donut-tui/internal/model"
	"github.com/donut-tui/donut-tui/internal/theme"
	"github.com/donut-tui/donut-tui/internal/utils"
	"github.com/donut-tui/donut-tui/internal/validate"
	"github.com/donut-tui/donut-tui/internal/wizard"
)

// annotateStep collects ground-truth values for each uploaded
// document, one field at a time.
type annotateStep struct {
	cursor int

	// Label editor for the selected document
	editing    bool
	editDoc    model.Document
	inputs     []*components.InputField
	fieldIdx   int
	editFields []model.FieldDef
}

func (s *annotateStep) init(m *Model) {
	s.reload(m)
}

func (s *annotateStep) reload(m *Model) {
	if s.cursor >= len(m.state().UploadedDocuments) {
		s.cursor = 0
	}
}

func (s *annotateStep) labelFor(m *Model, docID string) *model.DocumentLabel {
	for i, l := range m.state().LabeledDocuments {
		if l.DocumentID == docID {
			return &m.state().LabeledDocuments[i]
		}
	}
	return nil
}

func (s *annotateStep) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	if s.editing {
		return s.handleEditKey(m, msg)
	}

	docs := m.state().UploadedDocuments
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(docs)-1 {
			s.cursor++
		}
	case "enter":
		if s.cursor < len(docs) {
			s.openEditor(m, docs[s.cursor])
		}
	case "s":
		return s.saveAll(m)
	}
	return nil
}

func (s *annotateStep) openEditor(m *Model, doc model.Document) {
	s.editing = true
	s.editDoc = doc
	s.fieldIdx = 0
	s.editFields = m.state().Fields

	existing := map[string]string{}
	if l := s.labelFor(m, doc.ID); l != nil {
		existing = l.LabelData
	}

	s.inputs = make([]*components.InputField, len(s.editFields))
	for i, f := range s.editFields {
		rules := validate.Rules{Required: f.Required}
		switch f.Type {
		case "number", "currency":
			rules.Numeric = true
		}
		inp := components.NewInputField(f.Type).
			SetLabel(f.Name).
			SetMaxLength(128).
			SetRules(rules).
			SetValue(existing[f.ID])
		s.inputs[i] = inp
	}
	if len(s.inputs) > 0 {
		s.inputs[0].SetFocused(true)
	}
}

func (s *annotateStep) handleEditKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.editing = false
		return nil
	case "tab", "shift+tab", "enter":
		if msg.String() == "enter" && s.fieldIdx == len(s.inputs)-1 {
			return s.commitLabel(m)
		}
		s.inputs[s.fieldIdx].SetFocused(false)
		if msg.String() == "shift+tab" {
			s.fieldIdx = (s.fieldIdx + len(s.inputs) - 1) % len(s.inputs)
		} else {
			s.fieldIdx = (s.fieldIdx + 1) % len(s.inputs)
		}
		s.inputs[s.fieldIdx].SetFocused(true)
		return nil
	case "ctrl+d":
		return s.commitLabel(m)
	}

	s.inputs[s.fieldIdx].HandleKey(msg)
	return nil
}

// commitLabel validates the editor and stores the label in wizard
// state. The backend write happens in saveAll.
func (s *annotateStep) commitLabel(m *Model) tea.Cmd {
	valid := true
	for _, inp := range s.inputs {
		inp.Touch()
		if !inp.IsValid() {
			valid = false
		}
	}
	if !valid {
		return m.setAlert("Fix the highlighted fields first", true)
	}

	data := make(map[string]string, len(s.inputs))
	for i, f := range s.editFields {
		if v := s.inputs[i].GetValue(); v != "" {
			data[f.ID] = v
		}
	}

	labels := make([]model.DocumentLabel, 0, len(m.state().LabeledDocuments)+1)
	for _, l := range m.state().LabeledDocuments {
		if l.DocumentID != s.editDoc.ID {
			labels = append(labels, l)
		}
	}
	labels = append(labels, model.DocumentLabel{
		DocumentID: s.editDoc.ID,
		LabelData:  data,
		Validated:  true,
	})

	m.dispatch(wizard.SetLabeledDocuments{Labels: labels})
	s.editing = false
	return nil
}

// saveAll pushes the collected labels to the backend.
func (s *annotateStep) saveAll(m *Model) tea.Cmd {
	labels := m.state().LabeledDocuments
	if len(labels) == 0 {
		return m.setAlert("Annotate at least one document first", true)
	}
	ds := m.state().Dataset
	if ds == nil {
		return m.setAlert("Finish the fields step first", true)
	}

	client := m.deps.Client
	datasetID := ds.ID
	m.busy = true

	return func() tea.Msg {
		if err := client.SaveAnnotations(datasetID, labels); err != nil {
			return errMsg{err}
		}
		return labelsSavedMsg{labels: labels}
	}
}

func (s *annotateStep) render(m *Model, width, height int) string {
	if s.editing {
		return s.renderEditor(width)
	}

	docs := m.state().UploadedDocuments
	if len(docs) == 0 {
		return theme.TextDimStyle.Render("Upload documents first.")
	}

	var b strings.Builder
	for i, d := range docs {
		mark := theme.IconStepPending
		if s.labelFor(m, d.ID) != nil {
			mark = theme.IconStepDone
		}
		line := fmt.Sprintf(" %s %s %s", mark,
			utils.PadString(utils.TruncateString(d.Filename, 40), 40),
			theme.TextDimStyle.Render(fmt.Sprintf("%d pages", d.PageCount)))
		if i == s.cursor {
			line = theme.RenderSelection(line, width-4)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + theme.TextDimStyle.Render(
		fmt.Sprintf("%d of %d annotated", len(m.state().LabeledDocuments), len(docs))))
	b.WriteString("\n" + theme.RenderHelpBar([]string{
		"[Enter] Annotate", "[S] Save All", "[Ctrl+N] Continue",
	}, width-4))
	return b.String()
}

func (s *annotateStep) renderEditor(width int) string {
	var b strings.Builder
	b.WriteString(theme.TextBoldStyle.Render(s.editDoc.Filename) + "\n\n")
	for _, inp := range s.inputs {
		b.WriteString(inp.SetWidth(width-30).Render() + "\n")
	}
	b.WriteString(theme.FooterKeyStyle.Render("[Tab] Next field  [Ctrl+D] Done  [Esc] Cancel"))
	return b.String()
}
