package handler

import (
	"context"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/orbital-minutes/errors"
)

const artifactLinkExpiry = time.Hour

// ArtifactBrowser reads published artifacts back from object storage
type ArtifactBrowser interface {
	GetBucketInfo(ctx context.Context) (map[string]interface{}, error)
	ListFiles(ctx context.Context, prefix string) ([]string, error)
	ObjectURL(ctx context.Context, name string, expiry time.Duration) (string, error)
}

// Storage handles artifact storage endpoints
type Storage struct {
	store  ArtifactBrowser
	logger *zap.Logger
}

// NewStorageHandler creates a new storage handler
func NewStorageHandler(store ArtifactBrowser, logger *zap.Logger) *Storage {
	return &Storage{store: store, logger: logger}
}

// BucketInfo returns bucket information
// @Summary      Get artifact bucket info
// @Tags         Storage
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "Bucket info"
// @Failure      500  {object}  map[string]interface{}  "Failed to get bucket info"
// @Router       /storage/info [get]
func (h *Storage) BucketInfo(c echo.Context) error {
	info, err := h.store.GetBucketInfo(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("bucket info", err))
	}
	return HandleSuccess(h.logger, c, info)
}

// ListArtifacts lists the artifacts published for a job
// @Summary      List job artifacts
// @Tags         Storage
// @Produce      json
// @Param        job_id  path      string  true  "Job ID"
// @Success      200     {object}  map[string]interface{}  "File list"
// @Failure      500     {object}  map[string]interface{}  "Failed to list files"
// @Router       /storage/jobs/{job_id} [get]
func (h *Storage) ListArtifacts(c echo.Context) error {
	jobID := c.Param("job_id")

	files, err := h.store.ListFiles(c.Request().Context(), jobID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("list", err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"job_id": jobID,
		"files":  files,
		"count":  len(files),
	})
}

// ArtifactURL generates a download link for one artifact
// @Summary      Generate artifact download URL
// @Tags         Storage
// @Produce      json
// @Param        file  query     string  true  "Object name, e.g. <job_id>/meeting_minutes.md"
// @Success      200   {object}  map[string]interface{}  "Download URL"
// @Failure      400   {object}  map[string]interface{}  "Missing file parameter"
// @Failure      500   {object}  map[string]interface{}  "Failed to generate URL"
// @Router       /storage/download-url [get]
func (h *Storage) ArtifactURL(c echo.Context) error {
	name := strings.TrimPrefix(strings.TrimSpace(c.QueryParam("file")), "/")
	if name == "" || strings.Contains(name, "..") {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Missing or invalid file parameter"))
	}

	url, err := h.store.ObjectURL(c.Request().Context(), name, artifactLinkExpiry)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("presign", err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"file":       name,
		"url":        url,
		"expires_in": artifactLinkExpiry.String(),
	})
}
