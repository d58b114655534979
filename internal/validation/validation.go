package validation

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Violations maps a field name to the rule it broke.
type Violations map[string]string

// Error is returned by services when input fails validation.
type Error struct {
	Violations Violations
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s %s", f, e.Violations[f]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Err returns nil when v is empty, otherwise a *Error.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return &Error{Violations: v}
}

// Add records msg for field unless the field already has a violation.
func (v Violations) Add(field, msg string) {
	if _, ok := v[field]; !ok {
		v[field] = msg
	}
}

func Required(v Violations, field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "is required")
	}
}

func MaxLength(v Violations, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		v.Add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

func NonNegative(v Violations, field string, value int64) {
	if value < 0 {
		v.Add(field, "must not be negative")
	}
}

func Positive(v Violations, field string, value int64) {
	if value <= 0 {
		v.Add(field, "must be greater than zero")
	}
}

// Single builds an error for one field.
func Single(field, msg string) error {
	return Violations{field: msg}.Err()
}
