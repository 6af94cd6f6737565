package audio

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ucerrors "github.com/johnquangdev/orbital-minutes/internal/usecase/errors"
)

func TestFileNameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{url: "https://host/path/file.mp3?token=abc", want: "file.mp3"},
		{url: "https://host/a/b/meeting.wav", want: "meeting.wav"},
		{url: "https://host/rec.m4a#t=10", want: "rec.m4a"},
		{url: "https://host/", want: FallbackFileName},
		{url: "https://host", want: FallbackFileName},
		{url: "https://host/dir/?x=1", want: "dir"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := FileNameFromURL(tt.url); got != tt.want {
				t.Errorf("FileNameFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestDownload_StripsQueryString(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), ChunkSize*3+17)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/path/file.mp3" || r.URL.Query().Get("token") != "abc" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		w.Write(payload)
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := NewFetcher(srv.Client(), nil)

	got, err := f.Download(context.Background(), srv.URL+"/path/file.mp3?token=abc", dir)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if filepath.Base(got) != "file.mp3" {
		t.Fatalf("local name = %q, want file.mp3", filepath.Base(got))
	}

	data, err := os.ReadFile(got)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, payload) {
		t.Fatalf("downloaded %d bytes, want %d", len(data), len(payload))
	}
}

func TestDownload_HTTPErrorLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	dir := t.TempDir()
	_, err := NewFetcher(srv.Client(), nil).Download(context.Background(), srv.URL+"/a.mp3", dir)
	if !errors.Is(err, ucerrors.ErrDownloadFailed) {
		t.Fatalf("error = %v, want ErrDownloadFailed", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "a.mp3")); !os.IsNotExist(statErr) {
		t.Fatalf("partial file should not exist")
	}
}

type failingReader struct{ sent bool }

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.sent {
		r.sent = true
		return copy(p, "partial"), nil
	}
	return 0, errors.New("connection reset")
}

func TestDownload_BrokenBodyRemovesPartialFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100000")
		w.Write([]byte("partial"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	_, err := NewFetcher(srv.Client(), nil).Download(context.Background(), srv.URL+"/cut.mp3", dir)
	if !errors.Is(err, ucerrors.ErrDownloadFailed) {
		t.Fatalf("error = %v, want ErrDownloadFailed", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "cut.mp3")); !os.IsNotExist(statErr) {
		t.Fatalf("partial file should be removed")
	}
}

func TestDownload_EmptyURL(t *testing.T) {
	_, err := NewFetcher(nil, nil).Download(context.Background(), "  ", t.TempDir())
	if !errors.Is(err, ucerrors.ErrMissingAudioSource) {
		t.Fatalf("error = %v, want ErrMissingAudioSource", err)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "local.wav")
	if err := os.WriteFile(local, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewFetcher(nil, nil)

	tests := []struct {
		name    string
		source  string
		want    string
		wantErr error
	}{
		{name: "quoted local path", source: `  "` + local + `" `, want: local},
		{name: "empty", source: "  ''  ", wantErr: ucerrors.ErrMissingAudioSource},
		{name: "missing file", source: filepath.Join(dir, "nope.mp3"), wantErr: ucerrors.ErrAudioNotFound},
		{name: "directory", source: dir, wantErr: ucerrors.ErrAudioNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Resolve(context.Background(), tt.source, dir)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("Resolve() = %q, %v", got, err)
			}
		})
	}
}

func TestSaveUpload(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantErr error
	}{
		{name: "mp3", file: "standup.mp3"},
		{name: "upper case ext", file: "standup.WAV"},
		{name: "m4a", file: "../../escape.m4a"},
		{name: "ogg", file: "call.ogg"},
		{name: "flac rejected", file: "call.flac", wantErr: ucerrors.ErrUnsupportedAudioFormat},
		{name: "no ext", file: "call", wantErr: ucerrors.ErrUnsupportedAudioFormat},
		{name: "empty name", file: "", wantErr: ucerrors.ErrMissingAudioSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			got, err := SaveUpload(tt.file, strings.NewReader("audio-bytes"), dir)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SaveUpload() error = %v", err)
			}
			if filepath.Dir(got) != dir {
				t.Fatalf("file written outside dir: %s", got)
			}
			data, _ := os.ReadFile(got)
			if string(data) != "audio-bytes" {
				t.Fatalf("content = %q", data)
			}
		})
	}
}

func TestWriteChunked_ReaderError(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "x.mp3")
	n, err := writeChunked(dest, &failingReader{})
	if err == nil {
		t.Fatal("expected error")
	}
	if n != int64(len("partial")) {
		t.Fatalf("written = %d", n)
	}
}
