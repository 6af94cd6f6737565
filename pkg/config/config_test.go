package config

import (
	"testing"
)

func validConfig() Config {
	return Config{
		Server:   ServerConfig{Environment: "development"},
		Pipeline: PipelineConfig{Transcriber: "whisper", LLMModel: "llama-3.3-70b-versatile"},
		Whisper:  WhisperConfig{URL: "http://localhost:8387"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid whisper config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "transcriber name is normalized",
			mutate: func(c *Config) {
				c.Pipeline.Transcriber = "  Whisper "
			},
			wantErr: false,
		},
		{
			name: "unknown transcriber",
			mutate: func(c *Config) {
				c.Pipeline.Transcriber = "vosk"
			},
			wantErr: true,
		},
		{
			name: "assemblyai without key",
			mutate: func(c *Config) {
				c.Pipeline.Transcriber = TranscriberAssemblyAI
			},
			wantErr: true,
		},
		{
			name: "assemblyai with key",
			mutate: func(c *Config) {
				c.Pipeline.Transcriber = TranscriberAssemblyAI
				c.Assembly.APIKey = "key"
			},
			wantErr: false,
		},
		{
			name: "whisper without url",
			mutate: func(c *Config) {
				c.Whisper.URL = ""
			},
			wantErr: true,
		},
		{
			name: "missing llm model",
			mutate: func(c *Config) {
				c.Pipeline.LLMModel = ""
			},
			wantErr: true,
		},
		{
			name: "storage enabled without credentials",
			mutate: func(c *Config) {
				c.Storage.Enabled = true
				c.Storage.BucketName = "b"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_FillsDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Environment = "production"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Pipeline.WorkDir != "." || cfg.Pipeline.OutputDir != "." {
		t.Errorf("expected work/output dir defaults, got %q %q", cfg.Pipeline.WorkDir, cfg.Pipeline.OutputDir)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("expected json log format in production, got %q", cfg.Log.Format)
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("AUDIO_SOURCE", "meeting.mp3")
	t.Setenv("PIPELINE_WHISPER_MODEL", "small")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Groq.APIKey != "gsk-test" {
		t.Errorf("Groq.APIKey = %q", cfg.Groq.APIKey)
	}
	if cfg.Pipeline.AudioSource != "meeting.mp3" {
		t.Errorf("Pipeline.AudioSource = %q", cfg.Pipeline.AudioSource)
	}
	if cfg.Pipeline.WhisperModel != "small" {
		t.Errorf("Pipeline.WhisperModel = %q", cfg.Pipeline.WhisperModel)
	}
	if cfg.Pipeline.LLMModel != "llama-3.3-70b-versatile" {
		t.Errorf("Pipeline.LLMModel default = %q", cfg.Pipeline.LLMModel)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port default = %q", cfg.Server.Port)
	}
}
