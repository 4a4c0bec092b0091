// Package validation accumulates field-level validation errors and returns
// them as a map keyed by field name.
package validation

import (
	"regexp"
	"time"
)

// EmailRX is a compiled regular expression for basic email validation.
var EmailRX = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// dateLayout is the accepted wire format for date-only fields.
const dateLayout = "2006-01-02"

// Validator holds a map of field names to their validation error messages.
// A Validator with an empty Errors map is considered valid.
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records field as failing with the given message. The first
// failure reported for a field wins.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error for field with message only when ok is false.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// In returns true if value is present in list.
func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}

// Matches returns true if value matches the compiled regexp.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

// IsDate returns true if value is a YYYY-MM-DD calendar date.
func IsDate(value string) bool {
	_, err := time.Parse(dateLayout, value)
	return err == nil
}

// ParseDate converts a YYYY-MM-DD string to a time value. Callers must
// validate with IsDate first; a malformed value yields the zero time.
func ParseDate(value string) time.Time {
	t, _ := time.Parse(dateLayout, value)
	return t
}
