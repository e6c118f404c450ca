package wizard

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/donut-tui/donut-tui/internal/model"
	"github.com/donut-tui/donut-tui/internal/theme"
)

// deployStep promotes the model to production and issues an API key
// with usage snippets.
type deployStep struct {
	promoted bool
	apiKey   *model.APIKey
}

func (s *deployStep) init(m *Model) {
	if tm := m.state().TrainedModel; tm != nil && tm.IsProduction {
		s.promoted = true
	}
	s.apiKey = nil
}

func (s *deployStep) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "p":
		return s.promote(m)
	case "g":
		return s.createKey(m)
	}
	return nil
}

func (s *deployStep) promote(m *Model) tea.Cmd {
	tm := m.state().TrainedModel
	if tm == nil {
		return m.setAlert("Train a model first", true)
	}
	if s.promoted {
		return m.setAlert("Model already in production", true)
	}

	client := m.deps.Client
	modelID := tm.ID
	m.busy = true

	return func() tea.Msg {
		promoted, err := client.PromoteModel(modelID)
		if err != nil {
			return errMsg{err}
		}
		return promotedMsg{promoted: promoted}
	}
}

func (s *deployStep) createKey(m *Model) tea.Cmd {
	tm := m.state().TrainedModel
	if tm == nil {
		return m.setAlert("Train a model first", true)
	}

	client := m.deps.Client
	name := tm.Name + " key"
	m.busy = true

	return func() tea.Msg {
		key, err := client.CreateAPIKey(name)
		if err != nil {
			return errMsg{err}
		}
		return apiKeyMsg{key: key}
	}
}

func (s *deployStep) render(m *Model, width, height int) string {
	tm := m.state().TrainedModel
	if tm == nil {
		return theme.TextDimStyle.Render("No trained model yet.")
	}

	var b strings.Builder

	status := theme.WarningStyle.Render("not deployed")
	if s.promoted || tm.IsProduction {
		status = theme.SuccessStyle.Render("production")
	}
	b.WriteString(theme.TextBoldStyle.Render(tm.Name) + "  " + status + "\n\n")

	if s.apiKey != nil {
		b.WriteString(theme.TextBoldStyle.Render("API key") + "\n")
		b.WriteString(theme.PanelFocusedStyle.Width(width-8).Render(s.apiKey.Key) + "\n")
		b.WriteString(theme.WarningStyle.Render("Shown once. Store it now.") + "\n\n")
		b.WriteString(s.renderSnippets(tm, width))
	} else {
		b.WriteString(theme.TextDimStyle.Render("Create an API key to call the extraction endpoint.") + "\n\n")
	}

	b.WriteString("\n" + theme.RenderHelpBar([]string{
		"[P] Promote to Production", "[G] Generate API Key", "[Esc] Dashboard",
	}, width-4))
	return b.String()
}

func (s *deployStep) renderSnippets(tm *model.TrainedModel, width int) string {
	key := s.apiKey.Key
	curl := fmt.Sprintf(
		"curl -X POST https://api.example.com/v1/extract \\\n"+
			"  -H 'Authorization: Bearer %s' \\\n"+
			"  -F 'model=%s' -F 'file=@document.pdf'", key, tm.ID)

	python := fmt.Sprintf(
		"import requests\n"+
			"r = requests.post(\n"+
			"    'https://api.example.com/v1/extract',\n"+
			"    headers={'Authorization': 'Bearer %s'},\n"+
			"    data={'model': '%s'},\n"+
			"    files={'file': open('document.pdf', 'rb')})\n"+
			"print(r.json())", key, tm.ID)

	return theme.TextBoldStyle.Render("curl") + "\n" +
		highlightSnippet(curl, "bash") + "\n\n" +
		theme.TextBoldStyle.Render("Python") + "\n" +
		highlightSnippet(python, "python") + "\n"
}

// highlightSnippet syntax-highlights a usage snippet for the
// terminal. Falls back to the plain text on any tokenizer error.
func highlightSnippet(code, lang string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}
