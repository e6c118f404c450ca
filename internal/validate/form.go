package validate

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// DefaultValidateDelay is the quiescence window before a full-form
// validation runs after a value change.
const DefaultValidateDelay = 300 * time.Millisecond

// Form holds a flat record of field values validated against
// per-field rule sets. Validation never blocks typing; errors are
// surfaced as field-to-message maps for inline display.
type Form struct {
	mu      sync.Mutex
	rules   map[string]Rules
	values  map[string]string
	errors  map[string]string
	touched map[string]bool

	debounced   func(f func())
	onValidated func(valid bool, errors map[string]string)
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithValidateDelay overrides the debounced validation window.
func WithValidateDelay(d time.Duration) FormOption {
	return func(f *Form) { f.debounced = debounce.New(d) }
}

// WithOnValidated installs a callback fired after each debounced
// full-form validation.
func WithOnValidated(fn func(valid bool, errors map[string]string)) FormOption {
	return func(f *Form) { f.onValidated = fn }
}

// NewForm creates a form for the given rule sets with empty values.
func NewForm(rules map[string]Rules, opts ...FormOption) *Form {
	f := &Form{
		rules:     rules,
		values:    make(map[string]string),
		errors:    make(map[string]string),
		touched:   make(map[string]bool),
		debounced: debounce.New(DefaultValidateDelay),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetValue updates a field value. A field that has been touched is
// revalidated immediately; a debounced full-form validation runs
// after the quiescence window regardless.
func (f *Form) SetValue(field, value string) {
	f.mu.Lock()
	f.values[field] = value
	if f.touched[field] {
		f.validateFieldLocked(field)
	}
	f.mu.Unlock()

	f.debounced(f.validateAllNotify)
}

// SetTouched marks a field touched (blur) and validates it.
func (f *Form) SetTouched(field string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched[field] = true
	f.validateFieldLocked(field)
}

func (f *Form) validateFieldLocked(field string) {
	rules, ok := f.rules[field]
	if !ok {
		return
	}
	if msg := rules.Apply(f.values[field]); msg != "" {
		f.errors[field] = msg
	} else {
		delete(f.errors, field)
	}
}

// ValidateAll validates every configured field and returns the
// overall validity plus a copy of the error map.
func (f *Form) ValidateAll() (bool, map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateAllLocked()
}

func (f *Form) validateAllLocked() (bool, map[string]string) {
	for field := range f.rules {
		f.validateFieldLocked(field)
	}
	errs := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		errs[k] = v
	}
	return len(errs) == 0, errs
}

func (f *Form) validateAllNotify() {
	f.mu.Lock()
	valid, errs := f.validateAllLocked()
	fn := f.onValidated
	f.mu.Unlock()

	if fn != nil {
		fn(valid, errs)
	}
}

// Reset restores initial values, errors, and touched flags.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = make(map[string]string)
	f.errors = make(map[string]string)
	f.touched = make(map[string]bool)
}

// Value returns a field's current value.
func (f *Form) Value(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Error returns a field's current validation message, if any.
func (f *Form) Error(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[field]
}

// Touched reports whether a field has been marked touched.
func (f *Form) Touched(field string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched[field]
}

// SetValues replaces multiple values at once (snapshot restore).
func (f *Form) SetValues(values map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, v := range values {
		f.values[k] = v
	}
}

// Values returns a copy of all current values.
func (f *Form) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}
