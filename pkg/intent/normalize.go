package intent

import (
	"strings"
	"unicode"
)

// NormalizeSearchTerm is the deterministic fallback for search-term
// normalization, used whenever the LM output cannot be parsed. The rewrite
// rules mirror the LM instructions so both paths agree on shape.
func NormalizeSearchTerm(command string) string {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return trimmed
	}

	if containsHangul(trimmed) {
		return normalizeKorean(trimmed)
	}
	return normalizeEnglish(trimmed)
}

var koreanLocationMarkers = []string{"어디에", "어디야", "어딨어", "어디", "어딨"}
var koreanFolderMarkers = []string{"어느 폴더", "무슨 폴더", "어떤 폴더"}

func normalizeKorean(command string) string {
	for _, marker := range koreanFolderMarkers {
		if idx := strings.Index(command, marker); idx > 0 {
			subject := cleanSubject(command[:idx])
			if subject != "" {
				return subject + " 포함 폴더"
			}
		}
	}
	for _, marker := range koreanLocationMarkers {
		if idx := strings.Index(command, marker); idx > 0 {
			subject := cleanSubject(command[:idx])
			if subject != "" {
				return subject + " 위치"
			}
		}
	}
	return command
}

func normalizeEnglish(command string) string {
	lower := strings.ToLower(command)

	for _, prefix := range []string{"which folder has ", "which folder contains "} {
		if strings.HasPrefix(lower, prefix) {
			subject := cleanSubject(command[len(prefix):])
			if subject != "" {
				return "directory containing " + subject
			}
		}
	}
	for _, prefix := range []string{"where is ", "where are ", "where's "} {
		if strings.HasPrefix(lower, prefix) {
			subject := cleanSubject(command[len(prefix):])
			if subject != "" {
				return "location of " + subject
			}
		}
	}
	return command
}

// cleanSubject trims question punctuation and trailing Korean topic particles
// from the extracted subject.
func cleanSubject(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "?？!.。 ")

	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	last := fields[len(fields)-1]
	for _, particle := range []string{"은", "는", "이", "가", "파일은", "파일이"} {
		if strings.HasSuffix(last, particle) && len(last) > len(particle) {
			fields[len(fields)-1] = strings.TrimSuffix(last, particle)
			break
		}
	}
	return strings.Join(fields, " ")
}

func containsHangul(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}
