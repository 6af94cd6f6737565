package ai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/orbital-minutes/pkg/config"
)

var errTranscriptPending = errors.New("transcript not ready")

// AssemblyAIClient transcribes audio with the AssemblyAI SDK.
// The file is uploaded, submitted, then polled until it completes or errors.
type AssemblyAIClient struct {
	client       *aai.Client
	languageCode string
	pollInterval time.Duration
	pollTimeout  time.Duration
	logger       *zap.Logger
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig, logger *zap.Logger) *AssemblyAIClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}

	var opts []aai.ClientOption
	c := &AssemblyAIClient{
		pollInterval: 3 * time.Second,
		pollTimeout:  30 * time.Minute,
		logger:       logger,
	}
	if cfg != nil {
		if cfg.BaseURL != "" {
			opts = append(opts, aai.WithBaseURL(cfg.BaseURL))
		}
		if cfg.PollInterval > 0 {
			c.pollInterval = cfg.PollInterval
		}
		if cfg.PollTimeout > 0 {
			c.pollTimeout = cfg.PollTimeout
		}
		c.languageCode = cfg.LanguageCode
	}
	c.client = aai.NewClientWithOptions(append([]aai.ClientOption{aai.WithAPIKey(apiKey)}, opts...)...)

	return c
}

// Name returns the backend name
func (c *AssemblyAIClient) Name() string { return config.TranscriberAssemblyAI }

// Transcribe uploads audioPath and waits for the transcript text.
// model is ignored: AssemblyAI picks its own speech model.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audioPath string, model string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	uploadURL, err := c.client.Upload(ctx, f)
	if err != nil {
		return "", fmt.Errorf("failed to upload to AssemblyAI: %w", err)
	}

	if c.logger != nil {
		c.logger.Info("✅ File uploaded to AssemblyAI", zap.String("audio_path", audioPath))
	}

	params := &aai.TranscriptOptionalParams{Punctuate: aai.Bool(true), FormatText: aai.Bool(true)}
	if c.languageCode != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(c.languageCode)
	} else {
		params.LanguageDetection = aai.Bool(true)
	}

	transcript, err := c.client.Transcripts.SubmitFromURL(ctx, uploadURL, params)
	if err != nil {
		return "", fmt.Errorf("failed to submit transcript: %w", err)
	}
	id := aai.ToString(transcript.ID)
	if id == "" {
		return "", fmt.Errorf("assemblyai returned no transcript id")
	}

	if c.logger != nil {
		c.logger.Info("🔄 Waiting for AssemblyAI transcript", zap.String("transcript_id", id))
	}

	return c.waitForTranscript(ctx, id)
}

// waitForTranscript polls at a constant interval. Failed statuses and
// request errors stop the loop immediately.
func (c *AssemblyAIClient) waitForTranscript(ctx context.Context, id string) (string, error) {
	pollCtx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	defer cancel()

	var text string
	poll := func() error {
		t, err := c.client.Transcripts.Get(pollCtx, id)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to fetch transcript %s: %w", id, err))
		}

		switch t.Status {
		case aai.TranscriptStatusCompleted:
			text = strings.TrimSpace(aai.ToString(t.Text))
			return nil
		case aai.TranscriptStatusError:
			return backoff.Permanent(fmt.Errorf("assemblyai transcription failed: %s", aai.ToString(t.Error)))
		default:
			return errTranscriptPending
		}
	}

	b := backoff.WithContext(backoff.NewConstantBackOff(c.pollInterval), pollCtx)
	if err := backoff.Retry(poll, b); err != nil {
		if errors.Is(err, errTranscriptPending) || errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("transcript %s not completed within %s: %w", id, c.pollTimeout, err)
		}
		return "", err
	}
	return text, nil
}
