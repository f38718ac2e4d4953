package intent

import "strings"

// ExtractTag finds the first well-formed <tag>value</tag> pair in an LM
// response and returns the trimmed value. The model output is untrusted:
// surrounding prose, code fences, and repeated tags are all tolerated.
func ExtractTag(response, tag string) (string, bool) {
	open := "<" + tag + ">"
	close := "</" + tag + ">"

	start := strings.Index(response, open)
	if start == -1 {
		return "", false
	}
	rest := response[start+len(open):]

	end := strings.Index(rest, close)
	if end == -1 {
		return "", false
	}

	value := strings.TrimSpace(rest[:end])
	if value == "" {
		return "", false
	}
	return value, true
}

// stripQuotes removes one layer of surrounding quotes, including Korean
// style corner brackets LMs occasionally emit.
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	for _, pair := range [][2]string{{`"`, `"`}, {`'`, `'`}, {"“", "”"}, {"「", "」"}} {
		if strings.HasPrefix(s, pair[0]) && strings.HasSuffix(s, pair[1]) && len(s) > len(pair[0])+len(pair[1]) {
			return strings.TrimSpace(s[len(pair[0]) : len(s)-len(pair[1])])
		}
	}
	return s
}
