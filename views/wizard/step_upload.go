package wizard

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/donut-tui/donut-tui/internal/components"
	"github.com/donut-tui/donut-tui/internal/model"
	"github.com/donut-tui/donut-tui/internal/theme"
	"github.com/donut-tui/donut-tui/internal/utils"
)

// uploadStep picks local documents and registers them with the
// backend's dataset.
type uploadStep struct {
	browser *components.FileBrowser
}

func (s *uploadStep) init(m *Model) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	s.browser = components.NewFileBrowser(home, true).
		SetExtensions(model.AllowedExtensions())
}

func (s *uploadStep) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "s" {
		return s.uploadSelected(m)
	}
	s.browser.HandleKey(msg)
	return nil
}

func (s *uploadStep) uploadSelected(m *Model) tea.Cmd {
	paths := s.browser.GetSelectedPaths()
	if len(paths) == 0 {
		return m.setAlert("Select at least one document first", true)
	}

	ds := m.state().Dataset
	if ds == nil {
		return m.setAlert("Finish the fields step first", true)
	}

	// Skip anything already uploaded.
	seen := make(map[string]bool)
	for _, d := range m.state().UploadedDocuments {
		seen[d.Path] = true
	}
	fresh := paths[:0]
	for _, p := range paths {
		if !seen[p] {
			fresh = append(fresh, p)
		}
	}
	if len(fresh) == 0 {
		return m.setAlert("All selected documents are already uploaded", true)
	}

	client := m.deps.Client
	datasetID := ds.ID
	m.busy = true
	s.browser.ClearSelection()

	return func() tea.Msg {
		docs, err := client.UploadDocuments(datasetID, fresh)
		if err != nil {
			return errMsg{err}
		}
		return uploadedMsg{docs: docs}
	}
}

func (s *uploadStep) render(m *Model, width, height int) string {
	docs := m.state().UploadedDocuments

	browserHeight := height - len(docs) - 8
	if browserHeight < 8 {
		browserHeight = 8
	}
	s.browser.SetSize(width-4, browserHeight)

	var b strings.Builder
	b.WriteString(s.browser.Render())
	b.WriteString("\n")
	b.WriteString(theme.TextBoldStyle.Render(
		fmt.Sprintf("Uploaded (%d)", len(docs))) + "\n")

	if len(docs) == 0 {
		b.WriteString(theme.TextDimStyle.Render(
			"Nothing yet. Mark files with [Space], upload with [S]."))
	}
	for _, d := range docs {
		b.WriteString(fmt.Sprintf(" %s %s %s %s\n",
			theme.IconDocument,
			utils.PadString(utils.TruncateString(d.Filename, 36), 36),
			utils.PadString(utils.FormatFileSize(d.Size), 10),
			theme.StatusTextStyle(d.Status).Render(d.Status)))
	}

	return b.String()
}
