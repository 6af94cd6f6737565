package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/orbital-minutes/errors"
	"github.com/johnquangdev/orbital-minutes/internal/domain/entities"
)

// SessionSource exposes the current session snapshot
type SessionSource interface {
	Snapshot() entities.Session
}

// RequireComplete middleware: only serve minutes once the session holds a result
func RequireComplete(src SessionSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := src.Snapshot()
			if snap.State != entities.SessionStateComplete {
				appErr := errors.ErrNoMinutes()
				return c.JSON(appErr.HTTPCode, map[string]interface{}{
					"code":    appErr.Code,
					"message": appErr.Message,
					"details": map[string]string{"state": string(snap.State)},
				})
			}
			c.Set("job_id", snap.JobID.String())
			return next(c)
		}
	}
}
