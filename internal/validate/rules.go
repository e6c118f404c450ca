package validate

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Format checks (email, URL, numeric) are delegated to the
// go-playground validator; a single instance is safe for concurrent
// use.
var formats = validator.New()

// Rules is the declarative rule set for one field. All rules are
// optional and evaluated in a fixed order with first-failure-wins
// semantics: required, email, url, numeric, min, max, minLength,
// maxLength, pattern, custom. An empty value on a non-required field
// passes without evaluating the remaining rules.
type Rules struct {
	Required  bool
	Email     bool
	URL       bool
	Numeric   bool
	Min       *float64
	Max       *float64
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp

	// Custom returns a message for invalid values, or "" to pass.
	Custom func(value string) string

	// Messages overrides the default message per rule name:
	// required, email, url, numeric, min, max, minLength,
	// maxLength, pattern.
	Messages map[string]string
}

func (r Rules) message(rule, fallback string) string {
	if msg, ok := r.Messages[rule]; ok {
		return msg
	}
	return fallback
}

// Apply evaluates the rule set against a value and returns the first
// failing rule's message, or "" when the value passes.
func (r Rules) Apply(value string) string {
	if value == "" {
		if r.Required {
			return r.message("required", "This field is required")
		}
		return ""
	}

	if r.Email {
		if err := formats.Var(value, "email"); err != nil {
			return r.message("email", "Please enter a valid email address")
		}
	}

	if r.URL {
		if err := formats.Var(value, "url"); err != nil {
			return r.message("url", "Please enter a valid URL")
		}
	}

	if r.Numeric {
		if err := formats.Var(value, "numeric"); err != nil {
			return r.message("numeric", "Please enter a valid number")
		}
	}

	if r.Min != nil || r.Max != nil {
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return r.message("numeric", "Please enter a valid number")
		}
		if r.Min != nil && n < *r.Min {
			return r.message("min", fmt.Sprintf("Value must be at least %g", *r.Min))
		}
		if r.Max != nil && n > *r.Max {
			return r.message("max", fmt.Sprintf("Value must be at most %g", *r.Max))
		}
	}

	if r.MinLength > 0 && len(value) < r.MinLength {
		return r.message("minLength",
			fmt.Sprintf("Must be at least %d characters", r.MinLength))
	}

	if r.MaxLength > 0 && len(value) > r.MaxLength {
		return r.message("maxLength",
			fmt.Sprintf("Must be at most %d characters", r.MaxLength))
	}

	if r.Pattern != nil && !r.Pattern.MatchString(value) {
		return r.message("pattern", "Invalid format")
	}

	if r.Custom != nil {
		if msg := r.Custom(value); msg != "" {
			return msg
		}
	}

	return ""
}

// Float is a convenience for Min/Max rule bounds.
func Float(v float64) *float64 {
	return &v
}
