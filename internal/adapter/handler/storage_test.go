package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

type fakeBrowser struct {
	files []string
	err   error
}

func (f fakeBrowser) GetBucketInfo(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"bucket": "minutes", "bucket_exists": true}, f.err
}

func (f fakeBrowser) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	return f.files, f.err
}

func (f fakeBrowser) ObjectURL(ctx context.Context, name string, expiry time.Duration) (string, error) {
	return "https://files.example.com/" + name, f.err
}

func newStorageServer(b ArtifactBrowser) *echo.Echo {
	e := echo.New()
	NewRouter(nil, nil, NewStorageHandler(b, nil)).Setup(e)
	return e
}

func TestStorageHandler(t *testing.T) {
	e := newStorageServer(fakeBrowser{files: []string{"j1/a_minutes.md", "j1/a_transcript.txt"}})

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
	}{
		{name: "info", target: "/v1/storage/info", wantStatus: http.StatusOK, wantBody: `"bucket":"minutes"`},
		{name: "list", target: "/v1/storage/jobs/j1", wantStatus: http.StatusOK, wantBody: `"count":2`},
		{name: "url", target: "/v1/storage/download-url?file=j1/a_minutes.md", wantStatus: http.StatusOK, wantBody: "https://files.example.com/j1/a_minutes.md"},
		{name: "url missing", target: "/v1/storage/download-url", wantStatus: http.StatusBadRequest},
		{name: "url traversal", target: "/v1/storage/download-url?file=../secret", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodGet, tt.target, nil, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body %s missing %q", rec.Body, tt.wantBody)
			}
		})
	}
}

func TestStorageHandler_Failures(t *testing.T) {
	e := newStorageServer(fakeBrowser{err: errors.New("connection refused")})

	rec := do(e, http.MethodGet, "/v1/storage/jobs/j1", nil, "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestRouter_NotImplementedWithoutHandlers(t *testing.T) {
	e := echo.New()
	NewRouter(nil, nil, nil).Setup(e)

	rec := do(e, http.MethodGet, "/v1/storage/info", nil, "")
	if rec.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", rec.Code)
	}
}
