package ai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/johnquangdev/orbital-minutes/pkg/config"
)

func TestWhisperTranscribe(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		wantForm string
		response string
		want     string
	}{
		{
			name:     "text field",
			model:    "small",
			wantForm: "small",
			response: `{"text":"  hello world ","language":"en"}`,
			want:     "hello world",
		},
		{
			name:     "segments only with default model",
			wantForm: "base",
			response: `{"segments":[{"text":" first "},{"text":"second"}]}`,
			want:     "first second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/transcribe" {
					t.Fatalf("unexpected path %s", r.URL.Path)
				}
				if err := r.ParseMultipartForm(1 << 20); err != nil {
					t.Fatalf("parse form: %v", err)
				}
				if got := r.FormValue("model"); got != tt.wantForm {
					t.Errorf("model = %q, want %q", got, tt.wantForm)
				}
				if got := r.FormValue("language"); got != "en" {
					t.Errorf("language = %q", got)
				}
				f, hdr, err := r.FormFile("audio")
				if err != nil {
					t.Fatalf("audio part: %v", err)
				}
				defer f.Close()
				data, _ := io.ReadAll(f)
				if hdr.Filename != "meeting.mp3" || string(data) != "ID3-fake-audio" {
					t.Errorf("unexpected upload %s %q", hdr.Filename, data)
				}
				w.Write([]byte(tt.response))
			}))
			defer ts.Close()

			c := NewWhisperClient(&config.WhisperConfig{URL: ts.URL, Language: "en"}, nil)
			got, err := c.Transcribe(context.Background(), writeAudio(t), tt.model)
			if err != nil {
				t.Fatalf("Transcribe() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWhisperTranscribe_Failures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unsupported codec", http.StatusUnprocessableEntity)
	}))
	defer ts.Close()

	c := NewWhisperClient(&config.WhisperConfig{URL: ts.URL}, nil)

	_, err := c.Transcribe(context.Background(), writeAudio(t), "")
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("error = %v, want StatusError 422", err)
	}

	_, err = c.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.wav"), "")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, want not-exist", err)
	}
}

func TestWhisperIsAvailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	if !NewWhisperClient(&config.WhisperConfig{URL: ts.URL + "/"}, nil).IsAvailable(context.Background()) {
		t.Fatal("expected sidecar to be available")
	}
	if NewWhisperClient(&config.WhisperConfig{URL: "http://127.0.0.1:1"}, nil).IsAvailable(context.Background()) {
		t.Fatal("expected unreachable sidecar")
	}
}
