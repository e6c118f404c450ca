package components

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/donut-tui/donut-tui/internal/theme"
	"github.com/donut-tui/donut-tui/internal/validate"
)

// InputField - single-line text input with rule-based validation.
// The error line only appears once the field has been touched (blur
// or submit), so validation never blocks typing.
type InputField struct {
	// Content
	value       string
	placeholder string
	cursor      int
	viewStart   int

	// Configuration
	width     int
	maxLength int
	password  bool
	label     string
	rules     validate.Rules

	// State
	focused  bool
	disabled bool
	touched  bool

	// Callbacks
	onChange func(value string)
	onSubmit func(value string)
}

// NewInputField creates a new input field component
func NewInputField(placeholder string) *InputField {
	return &InputField{
		placeholder: placeholder,
		width:       40,
		maxLength:   256,
	}
}

// Configuration methods
func (inp *InputField) SetWidth(width int) *InputField {
	inp.width = width
	inp.adjustView()
	return inp
}

func (inp *InputField) SetMaxLength(maxLength int) *InputField {
	inp.maxLength = maxLength
	if len(inp.value) > maxLength {
		inp.value = inp.value[:maxLength]
		if inp.cursor > len(inp.value) {
			inp.cursor = len(inp.value)
		}
	}
	inp.adjustView()
	return inp
}

func (inp *InputField) SetPassword(password bool) *InputField {
	inp.password = password
	return inp
}

func (inp *InputField) SetLabel(label string) *InputField {
	inp.label = label
	return inp
}

func (inp *InputField) SetRules(rules validate.Rules) *InputField {
	inp.rules = rules
	return inp
}

func (inp *InputField) OnChange(callback func(value string)) *InputField {
	inp.onChange = callback
	return inp
}

func (inp *InputField) OnSubmit(callback func(value string)) *InputField {
	inp.onSubmit = callback
	return inp
}

// State methods
func (inp *InputField) SetValue(value string) *InputField {
	if len(value) > inp.maxLength {
		value = value[:inp.maxLength]
	}
	inp.value = value
	inp.cursor = len(value)
	inp.adjustView()
	if inp.onChange != nil {
		inp.onChange(inp.value)
	}
	return inp
}

func (inp *InputField) GetValue() string {
	return inp.value
}

func (inp *InputField) SetFocused(focused bool) *InputField {
	// Leaving the field marks it touched, like a blur event.
	if inp.focused && !focused {
		inp.touched = true
	}
	inp.focused = focused
	return inp
}

func (inp *InputField) Focused() bool {
	return inp.focused
}

func (inp *InputField) SetDisabled(disabled bool) *InputField {
	inp.disabled = disabled
	return inp
}

func (inp *InputField) Clear() *InputField {
	inp.value = ""
	inp.cursor = 0
	inp.viewStart = 0
	inp.touched = false
	if inp.onChange != nil {
		inp.onChange(inp.value)
	}
	return inp
}

// HandleKey processes one key event while the field is focused.
func (inp *InputField) HandleKey(msg tea.KeyMsg) {
	if inp.disabled {
		return
	}

	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			inp.insertRune(r)
		}
	case tea.KeySpace:
		inp.insertRune(' ')
	case tea.KeyBackspace:
		inp.deleteBefore()
	case tea.KeyDelete:
		inp.deleteAfter()
	case tea.KeyLeft:
		inp.moveCursorLeft()
	case tea.KeyRight:
		inp.moveCursorRight()
	case tea.KeyHome, tea.KeyCtrlA:
		inp.cursor = 0
		inp.adjustView()
	case tea.KeyEnd, tea.KeyCtrlE:
		inp.cursor = len(inp.value)
		inp.adjustView()
	case tea.KeyCtrlU:
		inp.Clear()
	case tea.KeyEnter:
		inp.Submit()
	}
}

func (inp *InputField) insertRune(r rune) {
	if len(inp.value)+utf8.RuneLen(r) > inp.maxLength {
		return
	}

	before := inp.value[:inp.cursor]
	after := inp.value[inp.cursor:]
	inp.value = before + string(r) + after
	inp.cursor++

	inp.adjustView()
	if inp.onChange != nil {
		inp.onChange(inp.value)
	}
}

func (inp *InputField) deleteBefore() {
	if inp.cursor == 0 {
		return
	}

	// Find the previous rune boundary
	i := inp.cursor - 1
	for i > 0 {
		if utf8.ValidString(inp.value[i:inp.cursor]) {
			break
		}
		i--
	}

	inp.value = inp.value[:i] + inp.value[inp.cursor:]
	inp.cursor = i
	inp.adjustView()

	if inp.onChange != nil {
		inp.onChange(inp.value)
	}
}

func (inp *InputField) deleteAfter() {
	if inp.cursor >= len(inp.value) {
		return
	}

	_, size := utf8.DecodeRuneInString(inp.value[inp.cursor:])
	inp.value = inp.value[:inp.cursor] + inp.value[inp.cursor+size:]
	inp.adjustView()

	if inp.onChange != nil {
		inp.onChange(inp.value)
	}
}

func (inp *InputField) moveCursorLeft() {
	if inp.cursor > 0 {
		inp.cursor--
		inp.adjustView()
	}
}

func (inp *InputField) moveCursorRight() {
	if inp.cursor < len(inp.value) {
		inp.cursor++
		inp.adjustView()
	}
}

// adjustView keeps the cursor inside the visible window.
func (inp *InputField) adjustView() {
	displayWidth := inp.width - 2
	if displayWidth < 1 {
		displayWidth = 1
	}

	if inp.cursor < inp.viewStart {
		inp.viewStart = inp.cursor
	} else if inp.cursor >= inp.viewStart+displayWidth {
		inp.viewStart = inp.cursor - displayWidth + 1
	}

	if inp.viewStart < 0 {
		inp.viewStart = 0
	}
}

// Submit marks the field touched and calls the submit callback when
// the value passes its rules.
func (inp *InputField) Submit() {
	if inp.disabled {
		return
	}

	inp.touched = true
	if inp.Error() != "" {
		return
	}
	if inp.onSubmit != nil {
		inp.onSubmit(inp.value)
	}
}

// Touch marks the field as visited without changing focus.
func (inp *InputField) Touch() {
	inp.touched = true
}

// Error returns the first failing rule's message once the field has
// been touched, or "".
func (inp *InputField) Error() string {
	if !inp.touched {
		return ""
	}
	return inp.rules.Apply(inp.value)
}

// IsValid reports whether the value passes all rules, touched or not.
func (inp *InputField) IsValid() bool {
	return inp.rules.Apply(inp.value) == ""
}

// Rendering
func (inp *InputField) Render() string {
	lines := []string{}

	if inp.label != "" {
		label := inp.label
		if inp.rules.Required {
			label += " *"
		}
		lines = append(lines, theme.TextBoldStyle.Render(label))
	}

	lines = append(lines, inp.renderInputField())

	// Only touched fields surface their validation message.
	if inp.touched {
		if msg := inp.Error(); msg != "" {
			lines = append(lines, theme.ErrorStyle.Render(theme.IconCross+" "+msg))
		}
	}

	return strings.Join(lines, "\n")
}

func (inp *InputField) renderInputField() string {
	displayWidth := inp.width - 2
	if displayWidth < 1 {
		displayWidth = 1
	}

	var displayText string
	if inp.password {
		displayText = strings.Repeat("•", len(inp.value))
	} else {
		displayText = inp.value
	}

	endIndex := inp.viewStart + displayWidth
	if endIndex > len(displayText) {
		endIndex = len(displayText)
	}

	if inp.viewStart < len(displayText) {
		displayText = displayText[inp.viewStart:endIndex]
	} else {
		displayText = ""
	}

	if len(displayText) < displayWidth {
		displayText += strings.Repeat(" ", displayWidth-len(displayText))
	}

	if inp.focused && !inp.disabled {
		cursorPos := inp.cursor - inp.viewStart
		if cursorPos >= 0 && cursorPos <= len(displayText) {
			if cursorPos == len(displayText) {
				displayText = displayText[:len(displayText)-1] + "│"
			} else {
				displayText = displayText[:cursorPos] + "│" + displayText[cursorPos+1:]
			}
		}
	}

	if inp.value == "" && !inp.focused && inp.placeholder != "" {
		placeholderText := inp.placeholder
		if len(placeholderText) > displayWidth {
			placeholderText = placeholderText[:displayWidth]
		}
		if len(placeholderText) < displayWidth {
			placeholderText += strings.Repeat(" ", displayWidth-len(placeholderText))
		}
		displayText = theme.TextDimStyle.Render(placeholderText)
	}

	switch {
	case inp.disabled:
		return theme.TextDimStyle.Width(inp.width).Render(displayText)
	case inp.focused:
		return theme.InputFocusedStyle.Width(inp.width).Render(displayText)
	default:
		return theme.InputStyle.Width(inp.width).Render(displayText)
	}
}
