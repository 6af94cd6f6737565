package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/orbital-minutes/pkg/config"
)

const (
	defaultWhisperURL     = "http://localhost:8387"
	defaultWhisperModel   = "base"
	defaultWhisperTimeout = 10 * time.Minute
)

// WhisperClient transcribes audio through a faster-whisper HTTP sidecar
type WhisperClient struct {
	baseURL  string
	language string
	client   *http.Client
	logger   *zap.Logger
}

// NewWhisperClient creates a sidecar client; nil config uses the defaults
func NewWhisperClient(cfg *config.WhisperConfig, logger *zap.Logger) *WhisperClient {
	c := &WhisperClient{
		baseURL: defaultWhisperURL,
		client:  &http.Client{Timeout: defaultWhisperTimeout},
		logger:  logger,
	}
	if cfg != nil {
		if cfg.URL != "" {
			c.baseURL = cfg.URL
		}
		if cfg.Timeout > 0 {
			c.client.Timeout = cfg.Timeout
		}
		c.language = cfg.Language
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

// Name returns the backend name
func (c *WhisperClient) Name() string { return config.TranscriberWhisper }

// IsAvailable checks if the sidecar answers its health probe
func (c *WhisperClient) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type whisperResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Text  string  `json:"text"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	} `json:"segments"`
}

// Transcribe uploads the audio file and returns the plain text transcript.
// model is the Whisper size (tiny, base, small, medium, large).
func (c *WhisperClient) Transcribe(ctx context.Context, audioPath string, model string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	if model == "" {
		model = defaultWhisperModel
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("audio", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("write audio data: %w", err)
	}

	_ = writer.WriteField("model", model)
	if c.language != "" {
		_ = writer.WriteField("language", c.language)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transcribe", &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	if c.logger != nil {
		c.logger.Info("🎙️ Sending audio to whisper",
			zap.String("audio_path", audioPath),
			zap.String("model", model),
		)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("whisper request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus("whisper", resp); err != nil {
		return "", err
	}

	var result whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode whisper response: %w", err)
	}

	text := strings.TrimSpace(result.Text)
	if text == "" && len(result.Segments) > 0 {
		parts := make([]string, 0, len(result.Segments))
		for _, seg := range result.Segments {
			if s := strings.TrimSpace(seg.Text); s != "" {
				parts = append(parts, s)
			}
		}
		text = strings.Join(parts, " ")
	}
	return text, nil
}
