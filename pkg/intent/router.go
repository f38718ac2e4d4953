package intent

import (
	"context"
	"fmt"
	"log"

	"ai-filepilot-be/pkg/llm"
	"ai-filepilot-be/pkg/opstore"
)

// Router classifies a natural-language command into an OperationKind.
type Router struct {
	llm    llm.LLMProvider
	logger *log.Logger
}

func NewRouter(provider llm.LLMProvider, logger *log.Logger) *Router {
	if logger == nil {
		logger = log.Default()
	}
	return &Router{llm: provider, logger: logger}
}

// Classify never fails: transport errors, malformed output, and tags outside
// the enumeration all collapse to KindError. Ambiguity stops here so every
// downstream component works over strict types.
func (r *Router) Classify(ctx context.Context, command string) opstore.OperationKind {
	prompt := fmt.Sprintf(classifyPromptTemplate, command)

	response, err := r.llm.Generate(ctx, prompt,
		llm.WithTemperature(0.1),
		llm.WithMaxTokens(32),
	)
	if err != nil {
		r.logger.Printf("[INTENT] classification call failed: %v", err)
		return opstore.KindError
	}

	tag, ok := ExtractTag(response, "operation.type")
	if !ok {
		r.logger.Printf("[INTENT] no operation.type tag in response: %s", truncateLog(response, 80))
		return opstore.KindError
	}

	if !opstore.IsValidKind(tag) {
		r.logger.Printf("[INTENT] tag outside enumeration: %q", tag)
		return opstore.KindError
	}

	return opstore.OperationKind(tag)
}

// truncateLog truncates string for logging
func truncateLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
