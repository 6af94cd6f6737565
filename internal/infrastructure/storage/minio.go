package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/orbital-minutes/pkg/config"
)

// artifactURLExpiry is how long returned artifact links stay valid
const artifactURLExpiry = 24 * time.Hour

// MinIOClient publishes artifacts to an S3 compatible bucket
type MinIOClient struct {
	client    *minio.Client
	bucket    string
	prefix    string
	publicURL string // e.g. https://minio.example.com when behind a reverse proxy
}

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists
func NewMinIOClient(ctx context.Context, cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}

	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

// WithPrefix returns a client that writes under prefix, e.g. "jobs/<id>"
func (m *MinIOClient) WithPrefix(prefix string) *MinIOClient {
	c := *m
	c.prefix = strings.Trim(prefix, "/")
	return &c
}

func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Put uploads data and returns a presigned link to it
func (m *MinIOClient) Put(ctx context.Context, name string, contentType string, data []byte) (string, error) {
	objectName := path.Join(m.prefix, name)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	link, err := m.GetFileURL(ctx, objectName, artifactURLExpiry)
	if err != nil {
		// object is stored; fall back to its bucket path
		return fmt.Sprintf("s3://%s/%s", m.bucket, objectName), nil
	}
	return link, nil
}

// GetFileURL gets a presigned URL for accessing a file
func (m *MinIOClient) GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return publicLink(u, m.publicURL), nil
}

// ListFiles returns object names under prefix, relative to the client prefix
func (m *MinIOClient) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	full := path.Join(m.prefix, prefix)
	if full != "" && full != "." {
		full += "/"
	} else {
		full = ""
	}

	var names []string
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: full, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		names = append(names, strings.TrimPrefix(obj.Key, m.prefix+"/"))
	}
	return names, nil
}

// ObjectURL returns a presigned link for name under the client prefix
func (m *MinIOClient) ObjectURL(ctx context.Context, name string, expiry time.Duration) (string, error) {
	return m.GetFileURL(ctx, path.Join(m.prefix, name), expiry)
}

// GetBucketInfo returns information about the bucket and connection
func (m *MinIOClient) GetBucketInfo(ctx context.Context) (map[string]interface{}, error) {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	return map[string]interface{}{
		"bucket":        m.bucket,
		"bucket_exists": exists,
		"endpoint":      m.client.EndpointURL().String(),
	}, nil
}

// publicLink swaps the internal endpoint for publicURL, keeping path and query
func publicLink(u *url.URL, publicURL string) string {
	if publicURL == "" {
		return u.String()
	}
	pathAndQuery := u.EscapedPath()
	if u.RawQuery != "" {
		pathAndQuery += "?" + u.RawQuery
	}
	return publicURL + pathAndQuery
}
