package validate

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_OrderingRequiredBeforeMinLength(t *testing.T) {
	r := Rules{Required: true, MinLength: 5}

	assert.Equal(t, "This field is required", r.Apply(""))
	assert.Equal(t, "Must be at least 5 characters", r.Apply("ab"))
	assert.Empty(t, r.Apply("abcdef"))
}

func TestRules_EmptyOptionalSkipsAllRules(t *testing.T) {
	r := Rules{Email: true, MinLength: 5}
	assert.Empty(t, r.Apply(""), "empty non-required value passes every rule")
}

func TestRules_EmailFormat(t *testing.T) {
	r := Rules{Required: true, Email: true}

	assert.Equal(t, "Please enter a valid email address", r.Apply("not-an-email"))
	assert.Empty(t, r.Apply("a@b.com"))
}

func TestRules_URLFormat(t *testing.T) {
	r := Rules{URL: true}

	assert.NotEmpty(t, r.Apply("::not a url"))
	assert.Empty(t, r.Apply("https://example.com/path"))
}

func TestRules_NumericRange(t *testing.T) {
	r := Rules{Numeric: true, Min: Float(1), Max: Float(100)}

	assert.Equal(t, "Please enter a valid number", r.Apply("abc"))
	assert.Equal(t, "Value must be at least 1", r.Apply("0"))
	assert.Equal(t, "Value must be at most 100", r.Apply("101"))
	assert.Empty(t, r.Apply("50"))
}

func TestRules_MinBeforeMinLength(t *testing.T) {
	// "5" fails min(10) before the minLength(3) rule is reached.
	r := Rules{Min: Float(10), MinLength: 3}
	assert.Equal(t, "Value must be at least 10", r.Apply("5"))
}

func TestRules_PatternAndCustom(t *testing.T) {
	r := Rules{
		Pattern: regexp.MustCompile(`^[a-z_]+$`),
		Custom: func(v string) string {
			if v == "reserved" {
				return "This name is reserved"
			}
			return ""
		},
	}

	assert.Equal(t, "Invalid format", r.Apply("Has Spaces"))
	assert.Equal(t, "This name is reserved", r.Apply("reserved"))
	assert.Empty(t, r.Apply("model_name"))
}

func TestRules_MessageOverrides(t *testing.T) {
	r := Rules{
		Required: true,
		Messages: map[string]string{"required": "Give the model a name"},
	}
	assert.Equal(t, "Give the model a name", r.Apply(""))
}

func TestForm_ValidateAllEmailScenario(t *testing.T) {
	f := NewForm(map[string]Rules{
		"email": {Required: true, Email: true},
	})

	f.SetValue("email", "not-an-email")
	valid, errs := f.ValidateAll()
	assert.False(t, valid)
	assert.Equal(t, "Please enter a valid email address", errs["email"])

	f.SetValue("email", "a@b.com")
	valid, errs = f.ValidateAll()
	assert.True(t, valid)
	assert.Empty(t, errs["email"])
}

func TestForm_TouchedFieldRevalidatesOnChange(t *testing.T) {
	f := NewForm(map[string]Rules{
		"name": {Required: true, MinLength: 3},
	})

	// Untouched: typing does not surface errors.
	f.SetValue("name", "a")
	assert.Empty(t, f.Error("name"))

	// Blur marks touched and validates immediately.
	f.SetTouched("name")
	assert.Equal(t, "Must be at least 3 characters", f.Error("name"))

	// Subsequent edits revalidate inline.
	f.SetValue("name", "abc")
	assert.Empty(t, f.Error("name"))
}

func TestForm_DebouncedFullValidation(t *testing.T) {
	var mu sync.Mutex
	var calls int
	var lastValid bool

	f := NewForm(
		map[string]Rules{"email": {Required: true, Email: true}},
		WithValidateDelay(20*time.Millisecond),
		WithOnValidated(func(valid bool, errs map[string]string) {
			mu.Lock()
			calls++
			lastValid = valid
			mu.Unlock()
		}),
	)

	// Rapid typing produces a single validation pass.
	for _, v := range []string{"a", "a@", "a@b", "a@b.com"} {
		f.SetValue("email", v)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.True(t, lastValid)
	mu.Unlock()
}

func TestForm_Reset(t *testing.T) {
	f := NewForm(map[string]Rules{
		"name": {Required: true},
	})

	f.SetValue("name", "x")
	f.SetTouched("name")
	f.Reset()

	assert.Empty(t, f.Value("name"))
	assert.Empty(t, f.Error("name"))
	assert.False(t, f.Touched("name"))

	valid, errs := f.ValidateAll()
	assert.False(t, valid)
	assert.Equal(t, "This field is required", errs["name"])
}
