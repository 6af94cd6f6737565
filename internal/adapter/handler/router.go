package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/orbital-minutes/pkg/config"
	"github.com/johnquangdev/orbital-minutes/pkg/middleware"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	sessionHandler *Session
	storageHandler *Storage
}

// NewRouter creates a new router with all handlers
// storageHandler may be nil when artifacts are written locally
func NewRouter(cfg *config.Config, sessionHandler *Session, storageHandler *Storage) *Router {
	return &Router{
		cfg:            cfg,
		sessionHandler: sessionHandler,
		storageHandler: storageHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")
	rt.setupSessionRoutes(v1)
	rt.setupStorageRoutes(v1)
}

// setupSessionRoutes configures the session and export routes
func (rt *Router) setupSessionRoutes(g *echo.Group) {
	sessionGroup := g.Group("/session")

	if rt.sessionHandler == nil {
		sessionGroup.Any("*", rt.notImplemented)
		return
	}

	sessionGroup.GET("", rt.sessionHandler.GetSession)
	sessionGroup.POST("/jobs", rt.sessionHandler.StartJob)
	sessionGroup.POST("/uploads", rt.sessionHandler.UploadAudio)
	sessionGroup.POST("/reset", rt.sessionHandler.Reset)

	complete := middleware.RequireComplete(rt.sessionHandler.svc)
	sessionGroup.GET("/minutes", rt.sessionHandler.GetMinutes, complete)
	sessionGroup.GET("/minutes.md", rt.sessionHandler.GetMarkdown, complete)
	sessionGroup.GET("/export/:format", rt.sessionHandler.Export)
}

// setupStorageRoutes configures artifact browsing routes
func (rt *Router) setupStorageRoutes(g *echo.Group) {
	storageGroup := g.Group("/storage")

	if rt.storageHandler == nil {
		storageGroup.Any("*", rt.notImplemented)
		return
	}

	storageGroup.GET("/info", rt.storageHandler.BucketInfo)
	storageGroup.GET("/jobs/:job_id", rt.storageHandler.ListArtifacts)
	storageGroup.GET("/download-url", rt.storageHandler.ArtifactURL)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := "development"
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": env,
	})
}
