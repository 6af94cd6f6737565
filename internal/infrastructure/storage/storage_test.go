package storage

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStore_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s := NewLocalStore(dir)

	got, err := s.Put(context.Background(), "../meeting_minutes.md", "text/markdown", []byte("# Minutes"))
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if got != filepath.Join(dir, "meeting_minutes.md") {
		t.Fatalf("path = %q", got)
	}
	data, _ := os.ReadFile(got)
	if string(data) != "# Minutes" {
		t.Fatalf("content = %q", data)
	}

	if _, err := s.Put(context.Background(), "", "text/plain", nil); err == nil {
		t.Fatal("expected error for empty name")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Put(ctx, "x.md", "text/plain", nil); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestPublicLink(t *testing.T) {
	u, _ := url.Parse("http://minio:9000/bucket/jobs/1/minutes.md?X-Amz-Signature=abc")

	tests := []struct {
		name   string
		public string
		want   string
	}{
		{name: "no public url", public: "", want: u.String()},
		{name: "proxy", public: "https://files.example.com", want: "https://files.example.com/bucket/jobs/1/minutes.md?X-Amz-Signature=abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := publicLink(u, tt.public); got != tt.want {
				t.Errorf("publicLink() = %q, want %q", got, tt.want)
			}
		})
	}
}
