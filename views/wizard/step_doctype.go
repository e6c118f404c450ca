package wizard

import (
	"regexp"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/donut-tui/donut-tui/internal/components"
	"github.com/donut-tui/donut-tui/internal/model"
	"github.com/donut-tui/donut-tui/internal/theme"
	"github.com/donut-tui/donut-tui/internal/validate"
	"github.com/donut-tui/donut-tui/internal/wizard"
)

// docTypeStep picks the document category and names the model.
type docTypeStep struct {
	list      *components.ListSelector
	nameInput *components.InputField
	focusName bool
}

func (s *docTypeStep) init(m *Model) {
	types := model.BuiltinDocumentTypes()
	items := make([]components.ListItem, 0, len(types))
	for _, t := range types {
		items = append(items, components.ListItem{
			Label:       t.DisplayName,
			Value:       t,
			Description: t.Description,
		})
	}

	s.list = components.NewListSelector("Document type", false).
		SetItems(items)

	s.nameInput = components.NewInputField("my-invoice-model").
		SetLabel("Model name").
		SetMaxLength(64).
		SetRules(validate.Rules{
			Required:  true,
			MinLength: 3,
			MaxLength: 64,
			Pattern:   regexp.MustCompile(`^[a-zA-Z0-9._-]+$`),
			Messages: map[string]string{
				"pattern": "Use letters, digits, dots, dashes and underscores",
			},
		})

	// Preselect the stored choice after a restore.
	if dt := m.state().DocumentType; dt != nil {
		for i := range types {
			if types[i].ID == dt.ID {
				break
			}
			s.list.MoveDown()
		}
	}
	if cfg := m.state().TrainingConfig; cfg["modelName"] != "" {
		s.nameInput.SetValue(cfg["modelName"])
	}
}

func (s *docTypeStep) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "tab" {
		s.focusName = !s.focusName
		s.nameInput.SetFocused(s.focusName)
		return nil
	}

	if s.focusName {
		s.nameInput.HandleKey(msg)
		s.storeName(m)
		return nil
	}

	switch msg.String() {
	case "up", "k", "down", "j":
		s.list.HandleKey(msg)
	case "enter", " ":
		s.choose(m)
	}
	return nil
}

func (s *docTypeStep) choose(m *Model) {
	item, ok := s.list.Selected()
	if !ok {
		return
	}
	t, ok := item.Value.(model.DocumentType)
	if !ok {
		return
	}

	m.dispatch(wizard.SetDocumentType{DocumentType: &t})

	// Seed the field editor with the catalog defaults unless the
	// user already customized them.
	if len(m.state().Fields) == 0 {
		m.dispatch(wizard.SetFields{Fields: model.DefaultFields(t.ID)})
		m.fields.reload(m)
	}
}

func (s *docTypeStep) storeName(m *Model) {
	cfg := m.state().TrainingConfig
	if cfg == nil {
		cfg = make(map[string]string)
	}
	cfg["modelName"] = s.nameInput.GetValue()
	m.dispatch(wizard.SetTrainingConfig{Config: cfg})
}

func (s *docTypeStep) render(m *Model, width, height int) string {
	s.list.SetSize(width-2, height-10)

	chosen := "none"
	if dt := m.state().DocumentType; dt != nil {
		chosen = dt.DisplayName
	}

	return s.list.Render() + "\n\n" +
		theme.TextDimStyle.Render("Selected: ") + theme.TextBoldStyle.Render(chosen) + "\n\n" +
		s.nameInput.SetWidth(width-20).Render()
}
