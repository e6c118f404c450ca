package wizard

import (
	"fmt"
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/donut-tui/donut-tui/internal/components"
	"github.com/donut-tui/donut-tui/internal/model"
	"github.com/donut-tui/donut-tui/internal/theme"
	"github.com/donut-tui/donut-tui/internal/utils"
	"github.com/donut-tui/donut-tui/internal/validate"
	"github.com/donut-tui/donut-tui/internal/wizard"
)

// fieldsStep edits the extraction schema: the list of fields the
// model should pull out of each document.
type fieldsStep struct {
	rows   []model.FieldDef
	cursor int

	// Add-field form
	adding    bool
	nameInput *components.InputField
	typeIdx   int
	required  bool
}

func (s *fieldsStep) init(m *Model) {
	s.nameInput = components.NewInputField("field_name").
		SetLabel("Field name").
		SetMaxLength(48).
		SetRules(validate.Rules{
			Required:  true,
			MinLength: 2,
			Pattern:   regexp.MustCompile(`^[a-z][a-z0-9_]*$`),
			Messages: map[string]string{
				"pattern": "Lowercase letters, digits and underscores only",
			},
		})
	s.reload(m)
}

func (s *fieldsStep) reload(m *Model) {
	s.rows = m.state().Fields
	if s.cursor >= len(s.rows) {
		s.cursor = 0
	}
}

func (s *fieldsStep) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	if s.adding {
		return s.handleFormKey(m, msg)
	}

	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.rows)-1 {
			s.cursor++
		}
	case "a":
		s.adding = true
		s.typeIdx = 0
		s.required = false
		s.nameInput.Clear().SetFocused(true)
	case "d":
		s.remove(m)
	case "r":
		s.toggleRequired(m)
	}
	return nil
}

func (s *fieldsStep) handleFormKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.adding = false
		s.nameInput.SetFocused(false)
		return nil
	case "tab":
		s.typeIdx = (s.typeIdx + 1) % len(model.FieldTypes())
		return nil
	case "ctrl+t":
		s.required = !s.required
		return nil
	case "enter":
		return s.commit(m)
	}
	s.nameInput.HandleKey(msg)
	return nil
}

func (s *fieldsStep) commit(m *Model) tea.Cmd {
	s.nameInput.Submit()
	if !s.nameInput.IsValid() {
		return nil
	}

	name := s.nameInput.GetValue()
	for _, f := range s.rows {
		if f.Name == name {
			return m.setAlert("A field with that name already exists", true)
		}
	}

	rows := append(s.rows, model.FieldDef{
		ID:       uuid.NewString(),
		Name:     name,
		Type:     model.FieldTypes()[s.typeIdx],
		Required: s.required,
	})
	m.dispatch(wizard.SetFields{Fields: rows})
	s.rows = rows
	s.adding = false
	s.nameInput.SetFocused(false)
	return nil
}

func (s *fieldsStep) remove(m *Model) {
	if s.cursor >= len(s.rows) {
		return
	}
	rows := append(s.rows[:s.cursor:s.cursor], s.rows[s.cursor+1:]...)
	m.dispatch(wizard.SetFields{Fields: rows})
	s.reload(m)
}

func (s *fieldsStep) toggleRequired(m *Model) {
	if s.cursor >= len(s.rows) {
		return
	}
	rows := make([]model.FieldDef, len(s.rows))
	copy(rows, s.rows)
	rows[s.cursor].Required = !rows[s.cursor].Required
	m.dispatch(wizard.SetFields{Fields: rows})
	s.rows = rows
}

// save commits the schema to the backend, which creates the dataset
// the later steps upload into.
func (s *fieldsStep) save(m *Model) tea.Cmd {
	st := m.state()
	client := m.deps.Client
	docType := *st.DocumentType
	name := st.TrainingConfig["modelName"]
	fields := st.Fields

	return func() tea.Msg {
		ds, err := client.SaveWizardConfig(docType, name, fields)
		if err != nil {
			return errMsg{err}
		}
		return configSavedMsg{dataset: ds}
	}
}

func (s *fieldsStep) render(m *Model, width, height int) string {
	var b strings.Builder

	if len(s.rows) == 0 {
		b.WriteString(theme.TextDimStyle.Render("No fields yet. Press [A] to add one."))
	}

	for i, f := range s.rows {
		req := " "
		if f.Required {
			req = "*"
		}
		line := fmt.Sprintf(" %s %s  %s", req,
			utils.PadString(f.Name, 24),
			theme.TextDimStyle.Render(f.Type))
		if i == s.cursor && !s.adding {
			line = theme.RenderSelection(line, width-4)
		}
		b.WriteString(line + "\n")
	}

	if s.adding {
		b.WriteString("\n" + theme.PanelFocusedStyle.Width(width-8).Render(
			s.nameInput.SetWidth(width-26).Render()+"\n"+
				"Type: "+theme.TextBoldStyle.Render(model.FieldTypes()[s.typeIdx])+
				theme.TextDimStyle.Render("  [Tab] cycle")+"\n"+
				"Required: "+utils.CBox(s.required)+
				theme.TextDimStyle.Render("  [Ctrl+T] toggle")+"\n"+
				theme.FooterKeyStyle.Render("[Enter] Add  [Esc] Cancel")))
	} else {
		b.WriteString("\n" + theme.RenderHelpBar([]string{
			"[A] Add", "[D] Delete", "[R] Required", "[Ctrl+N] Save & Continue",
		}, width-4))
	}

	return b.String()
}
