package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/donut-tui/donut-tui/internal/theme"
	"github.com/donut-tui/donut-tui/internal/utils"
)

// ListSelector - scrollable list selection, single or multi select.
// Used for the document type catalog, field type choice, and base
// model choice.
type ListSelector struct {
	// Items
	items         []ListItem
	cursor        int
	selectedItems map[int]bool

	// Configuration
	multiSelect bool
	title       string

	// Display
	width      int
	height     int
	startIndex int

	// Callbacks
	onSelect func(item ListItem, index int)
}

type ListItem struct {
	Label       string
	Value       any
	Description string
	Disabled    bool
	Separator   bool // Render as separator/header
}

// NewListSelector creates a new list selector component
func NewListSelector(title string, multiSelect bool) *ListSelector {
	return &ListSelector{
		title:         title,
		multiSelect:   multiSelect,
		selectedItems: make(map[int]bool),
		width:         60,
		height:        15,
	}
}

// Configuration methods
func (ls *ListSelector) SetSize(width, height int) *ListSelector {
	ls.width = width
	ls.height = height
	return ls
}

func (ls *ListSelector) SetItems(items []ListItem) *ListSelector {
	ls.items = items
	ls.cursor = 0
	ls.startIndex = 0
	ls.selectedItems = make(map[int]bool)
	return ls
}

func (ls *ListSelector) OnSelect(callback func(item ListItem, index int)) *ListSelector {
	ls.onSelect = callback
	return ls
}

// Navigation methods
func (ls *ListSelector) MoveUp() {
	if ls.cursor > 0 {
		ls.cursor--
		for ls.cursor >= 0 && ls.items[ls.cursor].Separator {
			ls.cursor--
		}
		if ls.cursor < 0 {
			ls.cursor = 0
		}
		ls.updateScrollPosition()
	}
}

func (ls *ListSelector) MoveDown() {
	if ls.cursor < len(ls.items)-1 {
		ls.cursor++
		for ls.cursor < len(ls.items) && ls.items[ls.cursor].Separator {
			ls.cursor++
		}
		if ls.cursor >= len(ls.items) {
			ls.cursor = len(ls.items) - 1
		}
		ls.updateScrollPosition()
	}
}

func (ls *ListSelector) updateScrollPosition() {
	visibleHeight := ls.visibleHeight()

	if ls.cursor < ls.startIndex {
		ls.startIndex = ls.cursor
	} else if ls.cursor >= ls.startIndex+visibleHeight {
		ls.startIndex = ls.cursor - visibleHeight + 1
	}

	maxStart := len(ls.items) - visibleHeight
	if maxStart < 0 {
		maxStart = 0
	}
	if ls.startIndex > maxStart {
		ls.startIndex = maxStart
	}
}

func (ls *ListSelector) visibleHeight() int {
	h := ls.height - 2 // Title + footer
	if h < 1 {
		h = 1
	}
	return h
}

// Selection methods
func (ls *ListSelector) Toggle() {
	if ls.cursor >= len(ls.items) {
		return
	}
	item := ls.items[ls.cursor]
	if item.Disabled || item.Separator {
		return
	}

	if ls.multiSelect {
		ls.selectedItems[ls.cursor] = !ls.selectedItems[ls.cursor]
		return
	}

	if ls.onSelect != nil {
		ls.onSelect(item, ls.cursor)
	}
}

// Selected returns the item under the cursor.
func (ls *ListSelector) Selected() (ListItem, bool) {
	if ls.cursor < 0 || ls.cursor >= len(ls.items) {
		return ListItem{}, false
	}
	item := ls.items[ls.cursor]
	if item.Separator || item.Disabled {
		return ListItem{}, false
	}
	return item, true
}

// SelectedMulti returns all checked items in list order.
func (ls *ListSelector) SelectedMulti() []ListItem {
	var out []ListItem
	for i, item := range ls.items {
		if ls.selectedItems[i] {
			out = append(out, item)
		}
	}
	return out
}

// SelectAll checks every selectable item.
func (ls *ListSelector) SelectAll() {
	if !ls.multiSelect {
		return
	}
	for i, item := range ls.items {
		if !item.Disabled && !item.Separator {
			ls.selectedItems[i] = true
		}
	}
}

// ClearSelection unchecks everything.
func (ls *ListSelector) ClearSelection() {
	ls.selectedItems = make(map[int]bool)
}

// Cursor returns the cursor index.
func (ls *ListSelector) Cursor() int {
	return ls.cursor
}

// HandleKey processes one key event while the list is focused.
func (ls *ListSelector) HandleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		ls.MoveUp()
	case "down", "j":
		ls.MoveDown()
	case " ", "enter":
		ls.Toggle()
	case "a":
		ls.SelectAll()
	case "c":
		ls.ClearSelection()
	}
}

// Rendering
func (ls *ListSelector) Render() string {
	lines := []string{}

	if ls.title != "" {
		lines = append(lines, theme.TextBoldStyle.Render(ls.title))
	}

	visibleHeight := ls.visibleHeight()
	end := ls.startIndex + visibleHeight
	if end > len(ls.items) {
		end = len(ls.items)
	}

	for i := ls.startIndex; i < end; i++ {
		lines = append(lines, ls.renderItem(i))
	}

	if len(ls.items) > visibleHeight {
		lines = append(lines, theme.TextDimStyle.Render(
			fmt.Sprintf("%d-%d of %d", ls.startIndex+1, end, len(ls.items))))
	}

	return strings.Join(lines, "\n")
}

func (ls *ListSelector) renderItem(i int) string {
	item := ls.items[i]

	if item.Separator {
		return theme.TextDimStyle.Render("── " + item.Label + " ──")
	}

	marker := ""
	if ls.multiSelect {
		marker = utils.CBox(ls.selectedItems[i]) + " "
	}

	label := marker + item.Label
	if item.Description != "" {
		avail := ls.width - len(label) - 4
		if avail > 8 {
			label += theme.TextDimStyle.Render("  " + utils.TruncateString(item.Description, avail))
		}
	}

	switch {
	case i == ls.cursor:
		return theme.RenderSelection(" "+marker+item.Label, ls.width)
	case item.Disabled:
		return theme.TextDimStyle.Width(ls.width).Render(" " + label)
	default:
		return theme.TextStyle.Width(ls.width).Render(" " + label)
	}
}
