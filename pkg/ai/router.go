package ai

import (
	"context"
	"fmt"
	"strings"
)

// IsGeminiModel reports whether a model id is served by Gemini
func IsGeminiModel(model string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(model)), "gemini")
}

// Router dispatches minutes generation by model id:
// "gemini*" goes to Gemini, everything else to Groq.
type Router struct {
	groq   *GroqClient
	gemini *GeminiClient
}

// NewRouter creates a router; either backend may be nil
func NewRouter(groq *GroqClient, gemini *GeminiClient) *Router {
	return &Router{groq: groq, gemini: gemini}
}

// WithAPIKey returns a router whose backends use key instead of the configured one
func (r *Router) WithAPIKey(key string) *Router {
	if strings.TrimSpace(key) == "" {
		return r
	}
	out := &Router{}
	if r.groq != nil {
		out.groq = r.groq.WithAPIKey(key)
	}
	if r.gemini != nil {
		out.gemini = r.gemini.WithAPIKey(key)
	}
	return out
}

// GenerateMinutes implements the minutes generator contract
func (r *Router) GenerateMinutes(ctx context.Context, transcript string, model string) (string, error) {
	if IsGeminiModel(model) {
		if r.gemini == nil {
			return "", fmt.Errorf("no gemini backend configured for model %q", model)
		}
		return r.gemini.GenerateMinutes(ctx, transcript, model)
	}

	if r.groq == nil {
		return "", fmt.Errorf("no groq backend configured for model %q", model)
	}
	return r.groq.GenerateMinutes(ctx, transcript, model)
}
