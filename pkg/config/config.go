package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Transcriber backends
const (
	TranscriberWhisper    = "whisper"
	TranscriberAssemblyAI = "assemblyai"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig     `envconfig:"SERVER"`
	Pipeline PipelineConfig   `envconfig:"PIPELINE"`
	Groq     GroqConfig       `envconfig:"GROQ"`
	Gemini   GeminiConfig     `envconfig:"GEMINI"`
	Assembly AssemblyAIConfig `envconfig:"ASSEMBLYAI"`
	Whisper  WhisperConfig    `envconfig:"WHISPER"`
	Storage  StorageConfig    `envconfig:"STORAGE"`
	Log      LogConfig        `envconfig:"LOG"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
	MaxUploadMB     int64    `envconfig:"MAX_UPLOAD_MB" default:"200"`
}

// PipelineConfig holds the transcribe -> generate -> extract settings
type PipelineConfig struct {
	// WorkDir receives downloaded and uploaded audio files.
	WorkDir string `envconfig:"WORK_DIR" default:"."`
	// OutputDir receives generated artifacts.
	OutputDir      string        `envconfig:"OUTPUT_DIR" default:"."`
	Transcriber    string        `envconfig:"TRANSCRIBER" default:"whisper"`
	WhisperModel   string        `envconfig:"WHISPER_MODEL" default:"base"`
	LLMModel       string        `envconfig:"LLM_MODEL" default:"llama-3.3-70b-versatile"`
	AudioSource    string        `envconfig:"AUDIO_SOURCE"`
	ExportCacheTTL time.Duration `envconfig:"EXPORT_CACHE_TTL" default:"30m"`
	// JobTimeout bounds a single job; zero disables the limit.
	JobTimeout time.Duration `envconfig:"JOB_TIMEOUT" default:"0"`
}

// GroqConfig holds Groq API settings
type GroqConfig struct {
	APIKey  string        `envconfig:"API_KEY"`
	BaseURL string        `envconfig:"API_URL" default:"https://api.groq.com"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"120s"`
}

// GeminiConfig holds Gemini API settings
type GeminiConfig struct {
	APIKey string `envconfig:"API_KEY"`
}

// AssemblyAIConfig holds AssemblyAI settings
type AssemblyAIConfig struct {
	APIKey       string        `envconfig:"API_KEY"`
	BaseURL      string        `envconfig:"BASE_URL"`
	LanguageCode string        `envconfig:"LANGUAGE_CODE"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"3s"`
	PollTimeout  time.Duration `envconfig:"POLL_TIMEOUT" default:"30m"`
}

// WhisperConfig holds settings for the faster-whisper HTTP sidecar
type WhisperConfig struct {
	URL      string        `envconfig:"URL" default:"http://localhost:8387"`
	Language string        `envconfig:"LANGUAGE"`
	Timeout  time.Duration `envconfig:"TIMEOUT" default:"10m"`
}

// StorageConfig holds artifact storage configuration
type StorageConfig struct {
	Enabled         bool   `envconfig:"ENABLED" default:"false"`
	Endpoint        string `envconfig:"ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"ACCESS_KEY"`
	SecretAccessKey string `envconfig:"SECRET_KEY"`
	BucketName      string `envconfig:"BUCKET" default:"orbital-minutes"`
	UseSSL          bool   `envconfig:"USE_SSL" default:"false"`
	PublicURL       string `envconfig:"PUBLIC_URL"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `envconfig:"LEVEL" default:"info"`
	// Format is "json" or "console"; empty picks by environment.
	Format string `envconfig:"FORMAT"`
}

// Load loads configuration from .env and environment variables and validates it
func Load() (*Config, error) {
	cfg, err := LoadEnv()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadEnv reads .env and the environment without validating, so callers
// can apply overrides (CLI flags) before calling Validate.
func LoadEnv() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	c.Pipeline.Transcriber = strings.ToLower(strings.TrimSpace(c.Pipeline.Transcriber))
	switch c.Pipeline.Transcriber {
	case TranscriberWhisper:
		if c.Whisper.URL == "" {
			return fmt.Errorf("WHISPER_URL is required when PIPELINE_TRANSCRIBER=whisper")
		}
	case TranscriberAssemblyAI:
		if c.Assembly.APIKey == "" {
			return fmt.Errorf("ASSEMBLYAI_API_KEY is required when PIPELINE_TRANSCRIBER=assemblyai")
		}
	default:
		return fmt.Errorf("unknown transcriber %q (expected %q or %q)", c.Pipeline.Transcriber, TranscriberWhisper, TranscriberAssemblyAI)
	}

	if c.Pipeline.LLMModel == "" {
		return fmt.Errorf("PIPELINE_LLM_MODEL is required")
	}

	if c.Storage.Enabled {
		if c.Storage.AccessKeyID == "" || c.Storage.SecretAccessKey == "" {
			return fmt.Errorf("STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY are required when storage is enabled")
		}
		if c.Storage.BucketName == "" {
			return fmt.Errorf("STORAGE_BUCKET is required when storage is enabled")
		}
	}

	if c.Pipeline.WorkDir == "" {
		c.Pipeline.WorkDir = "."
	}
	if c.Pipeline.OutputDir == "" {
		c.Pipeline.OutputDir = "."
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
		if c.IsProduction() {
			c.Log.Format = "json"
		}
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetServerAddr returns the HTTP listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
