package intent

import (
	"strings"

	"ai-filepilot-be/pkg/opstore"
)

// SentinelPrefix flags a destination folder that does not exist yet and must
// be created. It is a control flag, never a real path: it is stripped before
// the destination lands in an operation payload and only survives long enough
// to adjust the preview wording.
const SentinelPrefix = "create_folder/"

// ResolveDestination maps a mentioned folder name to a destination path.
//   - empty name        -> root "/"
//   - known folder name -> that folder's path
//   - unknown name      -> sentinel "create_folder/<name>"
func ResolveDestination(name string, folders []opstore.FolderItem) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "/"
	}

	for _, f := range folders {
		if strings.EqualFold(f.Name, name) {
			return f.Path
		}
	}

	return SentinelPrefix + name
}

// StripSentinel converts a sentinel destination into the path the folder will
// have once created. Non-sentinel destinations pass through unchanged.
func StripSentinel(destination string) (path string, needsCreate bool) {
	if !strings.HasPrefix(destination, SentinelPrefix) {
		return destination, false
	}
	return "/" + strings.TrimPrefix(destination, SentinelPrefix), true
}

// folder mention suffixes stripped from Korean tokens ("마케팅폴더로" -> "마케팅").
var koreanFolderSuffixes = []string{
	"폴더로", "폴더에", "폴더", "으로", "로", "에"}

// guessFolderName is the deterministic fallback when the LM gives nothing
// usable. It first looks for a known folder name inside the command, then for
// a "<name> 폴더" / "<name> folder" pattern.
func guessFolderName(command string, folders []opstore.FolderItem) string {
	lower := strings.ToLower(command)
	for _, f := range folders {
		if f.Name != "" && strings.Contains(lower, strings.ToLower(f.Name)) {
			return f.Name
		}
	}

	tokens := strings.Fields(command)
	for i, tok := range tokens {
		// Korean: the folder name precedes "폴더" ("신규 폴더로 이동")
		if strings.HasPrefix(tok, "폴더") && i > 0 {
			return trimKoreanSuffixes(tokens[i-1])
		}
		if merged := strings.Index(tok, "폴더"); merged > 0 {
			return trimKoreanSuffixes(tok[:merged])
		}
		// English: the folder name follows "folder" only in "folder X"; more
		// commonly it precedes ("marketing folder")
		if strings.EqualFold(tok, "folder") && i > 0 {
			return tokens[i-1]
		}
	}
	return ""
}

func trimKoreanSuffixes(tok string) string {
	for _, suffix := range koreanFolderSuffixes {
		if strings.HasSuffix(tok, suffix) && len(tok) > len(suffix) {
			return strings.TrimSuffix(tok, suffix)
		}
	}
	return tok
}
