package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/donut-tui/donut-tui/internal/theme"
	"github.com/donut-tui/donut-tui/internal/utils"
)

// TableView - column-aligned table with cursor navigation. Used for
// extraction results, trained model listings, and API key tables.
type TableView struct {
	// Data
	columns []TableColumn
	rows    []TableRow

	// Display state
	cursor   int
	startRow int

	// Configuration
	width       int
	height      int
	title       string
	showHeaders bool
	selectable  bool

	onSelect func(row TableRow, index int)
}

type TableColumn struct {
	Header string
	Width  int    // Fixed width, 0 for auto
	Align  string // "left" or "right"
}

// TableRow holds one display row. Cells are pre-formatted strings in
// column order; Ref carries the underlying record for callbacks.
type TableRow struct {
	Cells []string
	Ref   any
	Dim   bool
}

// NewTableView creates a new table view component
func NewTableView(title string) *TableView {
	return &TableView{
		title:       title,
		showHeaders: true,
		width:       80,
		height:      20,
	}
}

// Configuration methods
func (tv *TableView) SetSize(width, height int) *TableView {
	tv.width = width
	tv.height = height
	tv.calculateColumnWidths()
	return tv
}

func (tv *TableView) SetShowHeaders(show bool) *TableView {
	tv.showHeaders = show
	return tv
}

func (tv *TableView) SetSelectable(selectable bool) *TableView {
	tv.selectable = selectable
	return tv
}

func (tv *TableView) OnSelect(callback func(row TableRow, index int)) *TableView {
	tv.onSelect = callback
	return tv
}

func (tv *TableView) SetColumns(columns []TableColumn) *TableView {
	tv.columns = columns
	tv.calculateColumnWidths()
	return tv
}

// SetRows replaces the row set, keeping the cursor in range so a
// periodic refresh does not reset the user's position.
func (tv *TableView) SetRows(rows []TableRow) *TableView {
	tv.rows = rows
	if tv.cursor >= len(rows) {
		tv.cursor = len(rows) - 1
	}
	if tv.cursor < 0 {
		tv.cursor = 0
	}
	tv.updateScrollPosition()
	return tv
}

func (tv *TableView) AddRow(row TableRow) *TableView {
	tv.rows = append(tv.rows, row)
	return tv
}

func (tv *TableView) ClearRows() *TableView {
	tv.rows = nil
	tv.cursor = 0
	tv.startRow = 0
	return tv
}

func (tv *TableView) RowCount() int {
	return len(tv.rows)
}

// Navigation
func (tv *TableView) MoveUp() {
	if tv.cursor > 0 {
		tv.cursor--
		tv.updateScrollPosition()
	}
}

func (tv *TableView) MoveDown() {
	if tv.cursor < len(tv.rows)-1 {
		tv.cursor++
		tv.updateScrollPosition()
	}
}

func (tv *TableView) PageUp() {
	tv.cursor -= tv.visibleRowCount()
	if tv.cursor < 0 {
		tv.cursor = 0
	}
	tv.updateScrollPosition()
}

func (tv *TableView) PageDown() {
	tv.cursor += tv.visibleRowCount()
	if tv.cursor >= len(tv.rows) {
		tv.cursor = len(tv.rows) - 1
	}
	tv.updateScrollPosition()
}

func (tv *TableView) updateScrollPosition() {
	visibleRows := tv.visibleRowCount()

	if tv.cursor < tv.startRow {
		tv.startRow = tv.cursor
	} else if tv.cursor >= tv.startRow+visibleRows {
		tv.startRow = tv.cursor - visibleRows + 1
	}

	maxStart := len(tv.rows) - visibleRows
	if maxStart < 0 {
		maxStart = 0
	}
	if tv.startRow > maxStart {
		tv.startRow = maxStart
	}
}

func (tv *TableView) visibleRowCount() int {
	headerRows := 0
	if tv.title != "" {
		headerRows++
	}
	if tv.showHeaders {
		headerRows += 2 // Header + divider
	}

	n := tv.height - headerRows
	if n < 1 {
		n = 1
	}
	return n
}

// CurrentRow returns the row under the cursor.
func (tv *TableView) CurrentRow() (TableRow, int) {
	if tv.cursor < len(tv.rows) {
		return tv.rows[tv.cursor], tv.cursor
	}
	return TableRow{}, -1
}

// SelectCurrent fires the select callback for the cursor row.
func (tv *TableView) SelectCurrent() {
	if !tv.selectable || tv.onSelect == nil {
		return
	}
	if row, i := tv.CurrentRow(); i >= 0 {
		tv.onSelect(row, i)
	}
}

// HandleKey processes one key event while the table is focused.
func (tv *TableView) HandleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		tv.MoveUp()
	case "down", "j":
		tv.MoveDown()
	case "pgup":
		tv.PageUp()
	case "pgdown":
		tv.PageDown()
	case "enter":
		tv.SelectCurrent()
	}
}

// Rendering
func (tv *TableView) Render() string {
	lines := make([]string, 0, tv.height)

	if tv.title != "" {
		lines = append(lines, theme.TextBoldStyle.Render(tv.title))
	}

	if tv.showHeaders {
		lines = append(lines, tv.renderHeaders())
		lines = append(lines, theme.TextDimStyle.Render(strings.Repeat("─", tv.width)))
	}

	visibleRows := tv.visibleRowCount()
	endRow := tv.startRow + visibleRows
	if endRow > len(tv.rows) {
		endRow = len(tv.rows)
	}

	if len(tv.rows) == 0 {
		lines = append(lines, theme.TextDimStyle.Render("No data"))
	} else {
		for i := tv.startRow; i < endRow; i++ {
			lines = append(lines, tv.renderRow(tv.rows[i], tv.selectable && i == tv.cursor))
		}
	}

	return strings.Join(lines, "\n")
}

func (tv *TableView) calculateColumnWidths() {
	if len(tv.columns) == 0 {
		return
	}

	availableWidth := tv.width - 2

	totalFixedWidth := 0
	autoColumns := 0
	for i := range tv.columns {
		if tv.columns[i].Width > 0 {
			totalFixedWidth += tv.columns[i].Width
		} else {
			autoColumns++
		}
	}

	if autoColumns > 0 {
		autoWidth := (availableWidth - totalFixedWidth - 2*(len(tv.columns)-1)) / autoColumns
		if autoWidth < 4 {
			autoWidth = 4
		}
		for i := range tv.columns {
			if tv.columns[i].Width == 0 {
				tv.columns[i].Width = autoWidth
			}
		}
	}
}

func (tv *TableView) renderHeaders() string {
	parts := make([]string, 0, len(tv.columns))
	for _, column := range tv.columns {
		parts = append(parts, tv.formatCell(column.Header, column))
	}
	return theme.TableHeaderStyle.Render(strings.Join(parts, "  "))
}

func (tv *TableView) renderRow(row TableRow, focused bool) string {
	parts := make([]string, 0, len(tv.columns))
	for i, column := range tv.columns {
		cell := ""
		if i < len(row.Cells) {
			cell = row.Cells[i]
		}
		parts = append(parts, tv.formatCell(cell, column))
	}

	content := strings.Join(parts, "  ")

	switch {
	case focused:
		return theme.RenderSelection(content, tv.width)
	case row.Dim:
		return theme.TextDimStyle.Render(" " + content)
	default:
		return theme.TableRowStyle.Render(" " + content)
	}
}

func (tv *TableView) formatCell(content string, column TableColumn) string {
	content = utils.TruncateString(content, column.Width)

	if column.Align == "right" {
		return strings.Repeat(" ", column.Width-len([]rune(content))) + content
	}
	return utils.PadString(content, column.Width)
}
