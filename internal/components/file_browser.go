package components

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/donut-tui/donut-tui/internal/theme"
	"github.com/donut-tui/donut-tui/internal/utils"
)

// FileBrowser - directory navigation with optional multi-select. The
// upload step uses it with an extension filter so only supported
// document formats are selectable.
type FileBrowser struct {
	// Current state
	currentPath   string
	entries       []FileEntry
	cursor        int
	selectedFiles map[string]bool

	// Configuration
	multiSelect     bool
	directoriesOnly bool
	showHidden      bool
	extensions      map[string]bool // lowercase, with dot; nil means no filter

	// Display
	width      int
	height     int
	startIndex int

	// Callbacks
	onSelect      func(path string)
	onMultiSelect func(paths []string)

	loadError error
}

type FileEntry struct {
	Name    string
	Path    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// NewFileBrowser creates a new file browser rooted at path.
func NewFileBrowser(path string, multiSelect bool) *FileBrowser {
	fb := &FileBrowser{
		currentPath:   path,
		multiSelect:   multiSelect,
		selectedFiles: make(map[string]bool),
		width:         80,
		height:        20,
	}

	fb.LoadDirectory(path)

	return fb
}

// Configure the file browser
func (fb *FileBrowser) SetSize(width, height int) *FileBrowser {
	fb.width = width
	fb.height = height
	return fb
}

func (fb *FileBrowser) SetDirectoriesOnly(dirOnly bool) *FileBrowser {
	fb.directoriesOnly = dirOnly
	return fb
}

func (fb *FileBrowser) SetShowHidden(show bool) *FileBrowser {
	fb.showHidden = show
	fb.LoadDirectory(fb.currentPath)
	return fb
}

// SetExtensions restricts selectable files to the given extensions
// (".pdf", ".png", ...). Directories always stay visible.
func (fb *FileBrowser) SetExtensions(exts []string) *FileBrowser {
	fb.extensions = make(map[string]bool, len(exts))
	for _, e := range exts {
		fb.extensions[strings.ToLower(e)] = true
	}
	fb.LoadDirectory(fb.currentPath)
	return fb
}

func (fb *FileBrowser) OnSelect(callback func(path string)) *FileBrowser {
	fb.onSelect = callback
	return fb
}

func (fb *FileBrowser) OnMultiSelect(callback func(paths []string)) *FileBrowser {
	fb.onMultiSelect = callback
	return fb
}

// LoadDirectory reads a directory and replaces the entry list.
func (fb *FileBrowser) LoadDirectory(path string) error {
	fb.loadError = nil
	fb.currentPath = path

	entries, err := os.ReadDir(path)
	if err != nil {
		fb.loadError = err
		return err
	}

	fb.entries = make([]FileEntry, 0, len(entries))

	// Parent directory entry if not at root
	if path != "/" && path != "." {
		parent := filepath.Dir(path)
		fb.entries = append(fb.entries, FileEntry{
			Name:  "..",
			Path:  parent,
			IsDir: true,
		})
	}

	for _, entry := range entries {
		if !fb.showHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if !info.IsDir() {
			if fb.directoriesOnly {
				continue
			}
			if fb.extensions != nil && !fb.extensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				continue
			}
		}

		fb.entries = append(fb.entries, FileEntry{
			Name:    entry.Name(),
			Path:    filepath.Join(path, entry.Name()),
			IsDir:   info.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	fb.sortEntries()

	fb.cursor = 0
	fb.startIndex = 0

	return nil
}

// sortEntries keeps directories first, then names ascending.
func (fb *FileBrowser) sortEntries() {
	sort.Slice(fb.entries, func(i, j int) bool {
		if fb.entries[i].Name == ".." {
			return true
		}
		if fb.entries[j].Name == ".." {
			return false
		}
		if fb.entries[i].IsDir != fb.entries[j].IsDir {
			return fb.entries[i].IsDir
		}
		return fb.entries[i].Name < fb.entries[j].Name
	})
}

// Navigation methods
func (fb *FileBrowser) MoveUp() {
	if fb.cursor > 0 {
		fb.cursor--
		fb.updateScrollPosition()
	}
}

func (fb *FileBrowser) MoveDown() {
	if fb.cursor < len(fb.entries)-1 {
		fb.cursor++
		fb.updateScrollPosition()
	}
}

func (fb *FileBrowser) PageUp() {
	fb.cursor -= fb.height - 3 // Leave room for header/footer
	if fb.cursor < 0 {
		fb.cursor = 0
	}
	fb.updateScrollPosition()
}

func (fb *FileBrowser) PageDown() {
	fb.cursor += fb.height - 3
	if fb.cursor >= len(fb.entries) {
		fb.cursor = len(fb.entries) - 1
	}
	fb.updateScrollPosition()
}

func (fb *FileBrowser) updateScrollPosition() {
	visibleHeight := fb.height - 3 // Header + footer

	if fb.cursor < fb.startIndex {
		fb.startIndex = fb.cursor
	} else if fb.cursor >= fb.startIndex+visibleHeight {
		fb.startIndex = fb.cursor - visibleHeight + 1
	}

	maxStart := len(fb.entries) - visibleHeight
	if maxStart < 0 {
		maxStart = 0
	}
	if fb.startIndex > maxStart {
		fb.startIndex = maxStart
	}
}

// Selection methods
func (fb *FileBrowser) ToggleSelection() {
	if !fb.multiSelect || fb.cursor >= len(fb.entries) {
		return
	}

	entry := fb.entries[fb.cursor]
	if entry.IsDir {
		return
	}

	fb.selectedFiles[entry.Path] = !fb.selectedFiles[entry.Path]
}

func (fb *FileBrowser) SelectAll() {
	if !fb.multiSelect {
		return
	}

	for _, entry := range fb.entries {
		if !entry.IsDir {
			fb.selectedFiles[entry.Path] = true
		}
	}
}

func (fb *FileBrowser) ClearSelection() {
	fb.selectedFiles = make(map[string]bool)
}

func (fb *FileBrowser) GetSelectedPaths() []string {
	paths := make([]string, 0, len(fb.selectedFiles))
	for path, selected := range fb.selectedFiles {
		if selected {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// Enter opens the directory under the cursor or selects the file.
func (fb *FileBrowser) Enter() {
	if fb.cursor >= len(fb.entries) {
		return
	}

	entry := fb.entries[fb.cursor]

	if entry.IsDir {
		fb.LoadDirectory(entry.Path)
	} else if fb.onSelect != nil {
		fb.onSelect(entry.Path)
	}
}

// Confirm fires the multi-select callback with the checked paths.
func (fb *FileBrowser) Confirm() {
	if fb.multiSelect && fb.onMultiSelect != nil {
		fb.onMultiSelect(fb.GetSelectedPaths())
	} else if fb.cursor < len(fb.entries) && fb.onSelect != nil {
		fb.onSelect(fb.entries[fb.cursor].Path)
	}
}

// HandleKey processes one key event while the browser is focused.
func (fb *FileBrowser) HandleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		fb.MoveUp()
	case "down", "j":
		fb.MoveDown()
	case "pgup":
		fb.PageUp()
	case "pgdown":
		fb.PageDown()
	case " ":
		fb.ToggleSelection()
	case "enter":
		fb.Enter()
	case "a":
		fb.SelectAll()
	case "c":
		fb.ClearSelection()
	case "s":
		fb.Confirm()
	}
}

// Render the file browser
func (fb *FileBrowser) Render() string {
	lines := make([]string, 0, fb.height)

	lines = append(lines, fb.renderHeader())

	if fb.loadError != nil {
		lines = append(lines, theme.ErrorStyle.Render(fb.loadError.Error()))
		return fb.padToHeight(lines)
	}

	visibleHeight := fb.height - 3 // Header + footer
	endIndex := fb.startIndex + visibleHeight
	if endIndex > len(fb.entries) {
		endIndex = len(fb.entries)
	}

	for i := fb.startIndex; i < endIndex; i++ {
		entry := fb.entries[i]
		lines = append(lines, fb.renderFileEntry(entry, fb.selectedFiles[entry.Path], i == fb.cursor))
	}

	if len(fb.entries) > visibleHeight {
		lines = append(lines, theme.TextDimStyle.Render(
			fmt.Sprintf("%d-%d of %d", fb.startIndex+1, endIndex, len(fb.entries))))
	}

	lines = append(lines, fb.renderFooter())

	return fb.padToHeight(lines)
}

func (fb *FileBrowser) renderHeader() string {
	pathParts := strings.Split(fb.currentPath, string(os.PathSeparator))
	if len(pathParts) > 3 {
		pathParts = append([]string{"..."}, pathParts[len(pathParts)-2:]...)
	}

	return theme.RenderBreadcrumb(pathParts, fb.width)
}

func (fb *FileBrowser) renderFileEntry(entry FileEntry, selected, focused bool) string {
	icon := theme.IconFile
	if entry.IsDir {
		icon = theme.IconFolder
	}

	marker := " "
	if fb.multiSelect && !entry.IsDir {
		marker = utils.CBox(selected)
	}

	nameWidth := fb.width - 20
	if nameWidth < 10 {
		nameWidth = 10
	}
	name := utils.TruncateString(entry.Name, nameWidth)

	sizeStr := ""
	if !entry.IsDir {
		sizeStr = utils.FormatFileSize(entry.Size)
	}

	content := fmt.Sprintf("%s %s %-*s %10s", marker, icon, nameWidth, name, sizeStr)

	if focused {
		return theme.RenderSelection(content, fb.width)
	}

	return theme.TextStyle.Render(content)
}

func (fb *FileBrowser) renderFooter() string {
	helpItems := []string{"[Enter] Open", "[Esc] Back"}

	if fb.multiSelect {
		helpItems = append([]string{"[Space] Select"}, helpItems...)
		helpItems = append(helpItems, "[A] All", "[C] Clear", "[S] Confirm")
	}

	return theme.RenderHelpBar(helpItems, fb.width)
}

func (fb *FileBrowser) padToHeight(lines []string) string {
	for len(lines) < fb.height {
		lines = append(lines, "")
	}

	if len(lines) > fb.height {
		lines = lines[:fb.height]
	}

	return strings.Join(lines, "\n")
}

// GetCurrentPath returns the current directory path
func (fb *FileBrowser) GetCurrentPath() string {
	return fb.currentPath
}

// GetSelectedCount returns the number of selected files
func (fb *FileBrowser) GetSelectedCount() int {
	count := 0
	for _, selected := range fb.selectedFiles {
		if selected {
			count++
		}
	}
	return count
}
