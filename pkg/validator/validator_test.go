package validator

import (
	"strings"
	"testing"
)

type jobRequest struct {
	Source       string `json:"source" validate:"required,max=2048,audio_source"`
	WhisperModel string `json:"whisper_model,omitempty" validate:"omitempty,whisper_model"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     jobRequest
		wantErr string
	}{
		{name: "local path", req: jobRequest{Source: "/tmp/call.mp3"}},
		{name: "quoted path", req: jobRequest{Source: `"C:\meetings\call.wav"`}},
		{name: "https url with model", req: jobRequest{Source: "https://host/path/file.mp3?token=abc", WhisperModel: "large-v3"}},
		{name: "missing source", req: jobRequest{}, wantErr: "source is required"},
		{name: "quotes only", req: jobRequest{Source: `""`}, wantErr: "source must be a file path or an http(s) URL"},
		{name: "ftp url", req: jobRequest{Source: "ftp://host/call.mp3"}, wantErr: "source must be a file path"},
		{name: "url without host", req: jobRequest{Source: "https:///call.mp3"}, wantErr: "source must be a file path"},
		{name: "unknown model", req: jobRequest{Source: "a.mp3", WhisperModel: "huge"}, wantErr: "whisper_model must be one of tiny, base"},
		{name: "too long", req: jobRequest{Source: strings.Repeat("a", 2049)}, wantErr: "source must be at most 2048 characters"},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
