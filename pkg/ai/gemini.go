package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/johnquangdev/orbital-minutes/pkg/config"
)

// DefaultGeminiModel is used when a gemini route has no explicit model
const DefaultGeminiModel = "gemini-flash-latest"

// GeminiClient generates minutes with the Gemini API
type GeminiClient struct {
	apiKey string
	logger *zap.Logger
}

// NewGeminiClient creates a Gemini client. Pass a nil config to use GEMINI_API_KEY.
func NewGeminiClient(cfg *config.GeminiConfig, logger *zap.Logger) *GeminiClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	return &GeminiClient{apiKey: apiKey, logger: logger}
}

// WithAPIKey returns a copy using key, or the receiver when key is empty
func (c *GeminiClient) WithAPIKey(key string) *GeminiClient {
	if strings.TrimSpace(key) == "" {
		return c
	}
	cp := *c
	cp.apiKey = strings.TrimSpace(key)
	return &cp
}

// GenerateMinutes sends the transcript to Gemini and returns the markdown minutes
func (c *GeminiClient) GenerateMinutes(ctx context.Context, transcript string, model string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gemini api key is not configured")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}

	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt(), genai.RoleUser),
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(BuildMinutesPrompt(transcript)), genCfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part != nil && part.Text != "" {
				text.WriteString(part.Text)
			}
		}
		if text.Len() > 0 {
			if c.logger != nil {
				c.logger.Info("🤖 Gemini minutes generated", zap.String("model", model))
			}
			return text.String(), nil
		}
	}

	return "", fmt.Errorf("empty response from gemini")
}
