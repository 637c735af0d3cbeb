package shared

import (
	"strings"
	"unicode/utf8"
)

// OptionalString trims s and returns nil when nothing is left
func OptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// StringValue dereferences s, returning "" for nil
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// RequireText trims s and fails with a validation error naming field when it is empty or too long.
func RequireText(field, s string, maxLen int) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", NewValidationError(field + " is required")
	}
	if maxLen > 0 && utf8.RuneCountInString(v) > maxLen {
		return "", NewValidationError(field + " is too long")
	}
	return v, nil
}

// OptionalText is OptionalString bounded to maxLen characters.
func OptionalText(field string, s *string, maxLen int) (*string, error) {
	v := OptionalString(s)
	if v != nil && utf8.RuneCountInString(*v) > maxLen {
		return nil, NewValidationError(field + " is too long")
	}
	return v, nil
}
