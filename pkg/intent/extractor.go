package intent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-filepilot-be/pkg/llm"
	"ai-filepilot-be/pkg/opstore"
)

// ExtractResult carries the filled payload plus the new-folder flag derived
// from the sentinel. The flag only influences preview wording.
type ExtractResult struct {
	Operation opstore.Operation
	NewFolder bool
}

// Extractor fills per-kind operation payloads from the command and context.
// Extraction never fails: every LM slot has a deterministic fallback.
type Extractor struct {
	llm    llm.LLMProvider
	logger *log.Logger
}

func NewExtractor(provider llm.LLMProvider, logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.Default()
	}
	return &Extractor{llm: provider, logger: logger}
}

func (e *Extractor) Extract(ctx context.Context, kind opstore.OperationKind, command string, octx *opstore.OperationContext) ExtractResult {
	switch kind {
	case opstore.KindMove, opstore.KindCopy:
		return e.extractDestination(ctx, kind, command, octx)
	case opstore.KindDelete, opstore.KindSummarize:
		return ExtractResult{Operation: opstore.Operation{
			Type:    kind,
			Targets: octx.SelectedFiles,
		}}
	case opstore.KindRename:
		return e.extractRename(ctx, command, octx)
	case opstore.KindCreateFolder:
		return e.extractCreateFolder(ctx, command, octx)
	case opstore.KindSearch:
		return e.extractSearch(ctx, command)
	default:
		return ExtractResult{Operation: opstore.Operation{
			Type:      opstore.KindError,
			ErrorType: "error",
			Message:   "명령을 이해하지 못했습니다.",
		}}
	}
}

// askTag runs one LM slot extraction and returns the tag value, or "" when
// the call or the parse fails.
func (e *Extractor) askTag(ctx context.Context, prompt, tag string) string {
	response, err := e.llm.Generate(ctx, prompt,
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(64),
	)
	if err != nil {
		e.logger.Printf("[INTENT] slot call failed (%s): %v", tag, err)
		return ""
	}
	value, ok := ExtractTag(response, tag)
	if !ok {
		e.logger.Printf("[INTENT] no %s tag in response: %s", tag, truncateLog(response, 80))
		return ""
	}
	return stripQuotes(value)
}

func (e *Extractor) extractDestination(ctx context.Context, kind opstore.OperationKind, command string, octx *opstore.OperationContext) ExtractResult {
	name := e.askTag(ctx, fmt.Sprintf(destinationPromptTemplate, command), "destination.folder")
	if strings.EqualFold(name, "NONE") {
		name = ""
	}
	if name == "" {
		name = guessFolderName(command, octx.AvailableFolders)
	}

	destination := ResolveDestination(name, octx.AvailableFolders)
	path, needsCreate := StripSentinel(destination)

	return ExtractResult{
		Operation: opstore.Operation{
			Type:        kind,
			Targets:     octx.SelectedFiles,
			Destination: path,
		},
		NewFolder: needsCreate,
	}
}

func (e *Extractor) extractRename(ctx context.Context, command string, octx *opstore.OperationContext) ExtractResult {
	newName := e.askTag(ctx, fmt.Sprintf(renamePromptTemplate, command), "new.name")
	if newName == "" {
		newName = quotedSubstring(command)
	}
	if newName == "" && len(octx.SelectedFiles) > 0 {
		// Last resort: keep the current name so execution degrades to a no-op
		// instead of failing.
		newName = octx.SelectedFiles[0].Name
	}

	return ExtractResult{Operation: opstore.Operation{
		Type:    opstore.KindRename,
		Targets: octx.SelectedFiles,
		NewName: newName,
	}}
}

func (e *Extractor) extractCreateFolder(ctx context.Context, command string, octx *opstore.OperationContext) ExtractResult {
	prompt := fmt.Sprintf(createFolderPromptTemplate, command)

	var name, parent string
	response, err := e.llm.Generate(ctx, prompt,
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(64),
	)
	if err != nil {
		e.logger.Printf("[INTENT] create_folder extraction failed: %v", err)
	} else {
		if v, ok := ExtractTag(response, "folder.name"); ok {
			name = stripQuotes(v)
		}
		if v, ok := ExtractTag(response, "parent.folder"); ok {
			parent = stripQuotes(v)
		}
	}

	if name == "" {
		name = quotedSubstring(command)
	}
	if name == "" {
		if containsHangul(command) {
			name = "새 폴더"
		} else {
			name = "New Folder"
		}
	}

	parentPath, needsCreate := e.resolveParent(parent, command, octx)

	return ExtractResult{
		Operation: opstore.Operation{
			Type:       opstore.KindCreateFolder,
			FolderName: name,
			ParentPath: parentPath,
		},
		NewFolder: needsCreate,
	}
}

// resolveParent mirrors destination resolution, with one extra case for
// "current/here" references.
func (e *Extractor) resolveParent(parent, command string, octx *opstore.OperationContext) (string, bool) {
	switch {
	case strings.EqualFold(parent, "CURRENT"):
		if octx.CurrentPath != "" {
			return octx.CurrentPath, false
		}
		return "/", false
	case strings.EqualFold(parent, "NONE"), parent == "":
		if refersToCurrent(command) {
			if octx.CurrentPath != "" {
				return octx.CurrentPath, false
			}
		}
		return "/", false
	default:
		return StripSentinel(ResolveDestination(parent, octx.AvailableFolders))
	}
}

func refersToCurrent(command string) bool {
	lower := strings.ToLower(command)
	for _, marker := range []string{"현재", "여기", "이 폴더", "here", "current"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func (e *Extractor) extractSearch(ctx context.Context, command string) ExtractResult {
	term := e.askTag(ctx, fmt.Sprintf(searchPromptTemplate, command), "search.term")
	if term == "" {
		term = NormalizeSearchTerm(command)
	}
	if term == "" {
		term = command
	}

	return ExtractResult{Operation: opstore.Operation{
		Type:       opstore.KindSearch,
		SearchTerm: term,
	}}
}

// quotedSubstring returns the first quoted run in the command, if any.
func quotedSubstring(command string) string {
	for _, pair := range [][2]rune{{'"', '"'}, {'\'', '\''}, {'「', '」'}, {'“', '”'}} {
		runes := []rune(command)
		start := -1
		for i, r := range runes {
			if start == -1 && r == pair[0] {
				start = i + 1
				continue
			}
			if start != -1 && r == pair[1] {
				if i > start {
					return strings.TrimSpace(string(runes[start:i]))
				}
				start = -1
			}
		}
	}
	return ""
}
