package language

import "strings"

// Lang is the preview language for staged operations.
type Lang string

const (
	Korean  Lang = "ko"
	English Lang = "en"
)

// Resolve maps an Accept-Language header to a supported language.
// Only the first comma-separated tag is considered. Unknown tags fall back
// to Korean, matching the primary user base.
func Resolve(header string) Lang {
	tag := header
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	tag = strings.ToLower(strings.TrimSpace(tag))

	switch {
	case strings.HasPrefix(tag, "en"):
		return English
	case strings.HasPrefix(tag, "ko"):
		return Korean
	default:
		return Korean
	}
}
