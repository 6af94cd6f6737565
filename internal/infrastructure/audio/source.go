package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	ucerrors "github.com/johnquangdev/orbital-minutes/internal/usecase/errors"
)

const (
	// ChunkSize is the read size used when streaming remote audio to disk
	ChunkSize = 8192

	// FallbackFileName is used when a URL has no usable last path segment
	FallbackFileName = "downloaded_audio.mp3"
)

// SupportedExtensions lists accepted upload containers
var SupportedExtensions = []string{".mp3", ".wav", ".m4a", ".ogg"}

// Fetcher acquires audio from URLs, local paths and uploads
type Fetcher struct {
	client *http.Client
	logger *zap.Logger
}

// NewFetcher creates a fetcher. A nil client uses http.DefaultClient.
func NewFetcher(client *http.Client, logger *zap.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, logger: logger}
}

// IsURL reports whether source should be downloaded
func IsURL(source string) bool {
	s := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// CleanSource trims whitespace and surrounding quotes from pasted paths
func CleanSource(source string) string {
	s := strings.TrimSpace(source)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// IsSupported checks the file extension against SupportedExtensions
func IsSupported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range SupportedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// FileNameFromURL returns the last path segment without the query string
func FileNameFromURL(rawURL string) string {
	var p string
	if u, err := url.Parse(strings.TrimSpace(rawURL)); err == nil {
		p = u.Path
	} else {
		p = strings.SplitN(rawURL, "?", 2)[0]
		p = strings.SplitN(p, "#", 2)[0]
	}

	name := path.Base(p)
	if name == "." || name == "/" || name == "" || name == ".." {
		return FallbackFileName
	}
	// path.Base keeps backslashes; never let a name escape the work dir
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return FallbackFileName
	}
	return name
}

// Resolve returns a local file for source, downloading it when it is a URL
func (f *Fetcher) Resolve(ctx context.Context, source string, dir string) (string, error) {
	source = CleanSource(source)
	if source == "" {
		return "", ucerrors.ErrMissingAudioSource
	}

	if IsURL(source) {
		return f.Download(ctx, source, dir)
	}

	info, err := os.Stat(source)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ucerrors.ErrAudioNotFound, source)
	}
	return source, nil
}

// Download streams rawURL into dir in ChunkSize reads.
// Any transport or status error removes the partial file.
func (f *Fetcher) Download(ctx context.Context, rawURL string, dir string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", ucerrors.ErrMissingAudioSource
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ucerrors.ErrDownloadFailed, err)
	}

	if f.logger != nil {
		f.logger.Info("📥 Downloading audio", zap.String("url", rawURL))
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ucerrors.ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: server returned status %d", ucerrors.ErrDownloadFailed, resp.StatusCode)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ucerrors.ErrDownloadFailed, err)
	}

	dest := filepath.Join(dir, FileNameFromURL(rawURL))
	written, err := writeChunked(dest, resp.Body)
	if err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("%w: %v", ucerrors.ErrDownloadFailed, err)
	}

	if f.logger != nil {
		f.logger.Info("✅ Audio downloaded",
			zap.String("path", dest),
			zap.Int64("bytes", written),
		)
	}
	return dest, nil
}

// SaveUpload writes an uploaded file into dir after checking its extension
func SaveUpload(name string, r io.Reader, dir string) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "", ucerrors.ErrMissingAudioSource
	}
	if !IsSupported(base) {
		return "", fmt.Errorf("%w: %s", ucerrors.ErrUnsupportedAudioFormat, filepath.Ext(base))
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dest := filepath.Join(dir, base)
	if _, err := writeChunked(dest, r); err != nil {
		_ = os.Remove(dest)
		return "", err
	}
	return dest, nil
}

func writeChunked(dest string, r io.Reader) (int64, error) {
	out, err := os.Create(dest)
	if err != nil {
		return 0, err
	}

	var (
		written int64
		buf     = make([]byte, ChunkSize)
	)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				out.Close()
				return written, werr
			}
			written += int64(n)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			out.Close()
			return written, rerr
		}
	}

	return written, out.Close()
}
