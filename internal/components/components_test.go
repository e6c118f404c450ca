package components

import (
	"regexp"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donut-tui/donut-tui/internal/validate"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInputFieldTyping(t *testing.T) {
	inp := NewInputField("name").SetFocused(true)

	inp.HandleKey(keyRunes("hello"))
	assert.Equal(t, "hello", inp.GetValue())

	inp.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "hell", inp.GetValue())

	inp.HandleKey(tea.KeyMsg{Type: tea.KeyHome})
	inp.HandleKey(keyRunes("x"))
	assert.Equal(t, "xhell", inp.GetValue())

	inp.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Empty(t, inp.GetValue())
}

func TestInputFieldMaxLength(t *testing.T) {
	inp := NewInputField("name").SetMaxLength(3)

	inp.HandleKey(keyRunes("abcdef"))
	assert.Equal(t, "abc", inp.GetValue())
}

func TestInputFieldValidation(t *testing.T) {
	inp := NewInputField("name").SetRules(validate.Rules{
		Required:  true,
		MinLength: 3,
	})

	// Untouched fields report no error even when invalid.
	assert.Empty(t, inp.Error())
	assert.False(t, inp.IsValid())

	inp.Touch()
	assert.NotEmpty(t, inp.Error())

	inp.SetValue("ab")
	assert.NotEmpty(t, inp.Error())

	inp.SetValue("abc")
	assert.Empty(t, inp.Error())
	assert.True(t, inp.IsValid())
}

func TestInputFieldPatternRule(t *testing.T) {
	inp := NewInputField("name").SetRules(validate.Rules{
		Required: true,
		Pattern:  regexp.MustCompile(`^[a-z][a-z0-9_]*$`),
	})
	inp.Touch()

	inp.SetValue("Invoice Number")
	assert.NotEmpty(t, inp.Error())

	inp.SetValue("invoice_number")
	assert.Empty(t, inp.Error())
	assert.True(t, inp.IsValid())
}

func TestInputFieldBlurMarksTouched(t *testing.T) {
	inp := NewInputField("name").SetRules(validate.Rules{Required: true})

	inp.SetFocused(true)
	assert.Empty(t, inp.Error())

	inp.SetFocused(false)
	assert.NotEmpty(t, inp.Error())
}

func TestListSelectorSkipsSeparators(t *testing.T) {
	ls := NewListSelector("test", false).SetItems([]ListItem{
		{Label: "a", Value: "a"},
		{Label: "group", Separator: true},
		{Label: "b", Value: "b"},
	})

	ls.MoveDown()
	item, ok := ls.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", item.Value)

	ls.MoveUp()
	item, ok = ls.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", item.Value)
}

func TestListSelectorMultiSelect(t *testing.T) {
	ls := NewListSelector("test", true).SetItems([]ListItem{
		{Label: "a", Value: "a"},
		{Label: "b", Value: "b"},
		{Label: "c", Value: "c", Disabled: true},
	})

	ls.Toggle()
	ls.MoveDown()
	ls.Toggle()

	sel := ls.SelectedMulti()
	require.Len(t, sel, 2)
	assert.Equal(t, "a", sel[0].Value)
	assert.Equal(t, "b", sel[1].Value)

	ls.SelectAll()
	assert.Len(t, ls.SelectedMulti(), 2, "disabled items stay unselected")

	ls.ClearSelection()
	assert.Empty(t, ls.SelectedMulti())
}

func TestTableViewCursorStaysInRange(t *testing.T) {
	tv := NewTableView("test").
		SetSelectable(true).
		SetColumns([]TableColumn{{Header: "A", Width: 10}})

	tv.SetRows([]TableRow{
		{Cells: []string{"1"}},
		{Cells: []string{"2"}},
		{Cells: []string{"3"}},
	})
	tv.MoveDown()
	tv.MoveDown()
	_, i := tv.CurrentRow()
	assert.Equal(t, 2, i)

	// A refresh that shrinks the row set clamps the cursor.
	tv.SetRows([]TableRow{{Cells: []string{"1"}}})
	_, i = tv.CurrentRow()
	assert.Equal(t, 0, i)
}

func TestProgressBarCompletion(t *testing.T) {
	pb := NewProgressBar(10)

	pb.SetProgress(5, 10)
	assert.InDelta(t, 50.0, pb.GetPercentage(), 0.01)
	assert.False(t, pb.IsComplete())

	pb.SetProgress(10, 10)
	assert.True(t, pb.IsComplete())
}
