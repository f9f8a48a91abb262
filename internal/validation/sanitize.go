package validation

import "strings"

// denylist of substrings stripped from user input. This is defense in depth
// on top of output encoding, not a substitute for it.
var denylist = []string{
	"<script>",
	"</script>",
	"javascript:",
	"onerror=",
	"onclick=",
}

// Sanitize trims surrounding whitespace and strips denylisted substrings.
// An empty result after trimming is returned as "" and treated as absent
// by callers.
func Sanitize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	for _, bad := range denylist {
		value = strings.ReplaceAll(value, bad, "")
	}
	return value
}

// SanitizeOptional applies Sanitize to an optional value. Absent input and
// input that is empty after trimming both map to nil.
func SanitizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	clean := Sanitize(*value)
	if clean == "" && strings.TrimSpace(*value) == "" {
		return nil
	}
	return &clean
}
