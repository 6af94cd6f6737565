package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/orbital-minutes/pkg/config"
)

// Transcriber is implemented by WhisperClient and AssemblyAIClient
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, model string) (string, error)
	Name() string
}

// NewTranscriber picks the backend named by PIPELINE_TRANSCRIBER
func NewTranscriber(cfg *config.Config, logger *zap.Logger) (Transcriber, error) {
	switch cfg.Pipeline.Transcriber {
	case config.TranscriberWhisper, "":
		return NewWhisperClient(&cfg.Whisper, logger), nil
	case config.TranscriberAssemblyAI:
		return NewAssemblyAIClient(&cfg.Assembly, logger), nil
	}
	return nil, fmt.Errorf("unknown transcriber %q", cfg.Pipeline.Transcriber)
}

// NewMinutesRouter builds the Groq/Gemini router from config
func NewMinutesRouter(cfg *config.Config, logger *zap.Logger) *Router {
	return NewRouter(NewGroqClient(&cfg.Groq, logger), NewGeminiClient(&cfg.Gemini, logger))
}
