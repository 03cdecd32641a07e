package validation

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips every HTML element and attribute; journal text is
// stored and echoed back to the frontend, so markup is never allowed in.
var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText removes any HTML from free-form user input.
func SanitizeText(input string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}

// SanitizeTags sanitizes each tag and drops the ones left empty.
func SanitizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if clean := SanitizeText(tag); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

// ValidateStringMaxLength rejects over-long user input.
func ValidateStringMaxLength(value string, max int, field string) error {
	if len(value) > max {
		return &ValidationError{Field: field, Reason: "too long"}
	}
	return nil
}

// ValidationError reports which field failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " is " + e.Reason
}
