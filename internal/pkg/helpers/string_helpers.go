package helpers

import "strings"

// NullIfBlank returns nil when s is nil or holds only whitespace, otherwise
// a pointer to the trimmed value.
func NullIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// StringOrNil returns a pointer to s, or nil when s is blank
func StringOrNil(s string) *string {
	return NullIfBlank(&s)
}
