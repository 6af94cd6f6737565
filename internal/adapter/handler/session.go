package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/orbital-minutes/errors"
	"github.com/johnquangdev/orbital-minutes/internal/adapter/dto/session"
	"github.com/johnquangdev/orbital-minutes/internal/adapter/presenter"
	"github.com/johnquangdev/orbital-minutes/internal/domain/entities"
	"github.com/johnquangdev/orbital-minutes/internal/infrastructure/export"
	"github.com/johnquangdev/orbital-minutes/internal/usecase/minutes"
)

const exportPath = "/v1/session/export"

// Session handles the single meeting session
type Session struct {
	svc    minutes.Service
	logger *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(svc minutes.Service, logger *zap.Logger) *Session {
	return &Session{svc: svc, logger: logger}
}

// GetSession handles GET /session
// @Summary      Get session state
// @Description  Returns the state, progress and last error of the current session
// @Tags         Session
// @Produce      json
// @Success      200  {object}  session.SessionResponse
// @Router       /session [get]
func (h *Session) GetSession(c echo.Context) error {
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(h.svc.Snapshot()))
}

// StartJob handles POST /session/jobs
// @Summary      Start a job from a path or URL
// @Description  Transcribes the audio, generates minutes and extracts the structured view. Runs in the background unless wait is true.
// @Tags         Session
// @Accept       json
// @Produce      json
// @Param        request  body      session.StartJobRequest  true  "Audio source and models"
// @Success      200      {object}  session.SessionResponse  "Job completed (wait=true)"
// @Success      202      {object}  session.SessionResponse  "Job started"
// @Failure      400      {object}  map[string]interface{}   "Invalid source"
// @Failure      409      {object}  map[string]interface{}   "Session not idle"
// @Failure      502      {object}  map[string]interface{}   "Download or generation failed"
// @Router       /session/jobs [post]
func (h *Session) StartJob(c echo.Context) error {
	var req session.StartJobRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	start := minutes.StartRequest{
		Source:       req.Source,
		WhisperModel: req.WhisperModel,
		LLMModel:     req.LLMModel,
		APIKey:       req.APIKey,
	}
	return h.start(c, start, req.Wait, req.Source)
}

// UploadAudio handles POST /session/uploads
// @Summary      Start a job from an uploaded file
// @Description  Accepts .mp3, .wav, .m4a or .ogg audio as multipart field "audio"
// @Tags         Session
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio          formData  file    true   "Audio file"
// @Param        whisper_model  formData  string  false  "Whisper model size"
// @Param        llm_model      formData  string  false  "LLM model id"
// @Param        wait           formData  bool    false  "Block until the job finishes"
// @Success      200  {object}  session.SessionResponse  "Job completed (wait=true)"
// @Success      202  {object}  session.SessionResponse  "Job started"
// @Failure      400  {object}  map[string]interface{}   "Missing or unsupported file"
// @Failure      409  {object}  map[string]interface{}   "Session not idle"
// @Router       /session/uploads [post]
func (h *Session) UploadAudio(c echo.Context) error {
	var form session.UploadForm
	if err := c.Bind(&form); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&form); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	fh, err := c.FormFile("audio")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrMissingAudioSource())
	}
	f, err := fh.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(fmt.Errorf("open upload: %w", err)))
	}
	defer f.Close()

	start := minutes.StartRequest{
		UploadName:   fh.Filename,
		Upload:       f,
		WhisperModel: form.WhisperModel,
		LLMModel:     form.LLMModel,
		APIKey:       form.APIKey,
	}
	return h.start(c, start, form.Wait, fh.Filename)
}

func (h *Session) start(c echo.Context, req minutes.StartRequest, wait bool, detail string) error {
	ctx := c.Request().Context()

	if wait {
		sess, err := h.svc.Start(ctx, req)
		if err != nil {
			return HandleError(h.logger, c, h.mapStartError(err, detail))
		}
		return HandleSuccess(h.logger, c, presenter.ToSessionResponse(*sess))
	}

	// The job outlives the request.
	sess, err := h.svc.StartAsync(context.WithoutCancel(ctx), req)
	if err != nil {
		return HandleError(h.logger, c, h.mapStartError(err, detail))
	}
	return HandleAccepted(h.logger, c, presenter.ToSessionResponse(*sess))
}

func (h *Session) mapStartError(err error, detail string) error {
	snap := h.svc.Snapshot()
	if snap.State != entities.SessionStateIdle {
		return toAppError(err, snap.JobID.String())
	}
	return toAppError(err, detail)
}

// Reset handles POST /session/reset
// @Summary      Start a new session
// @Description  Clears the stored minutes, transcript and cached exports
// @Tags         Session
// @Produce      json
// @Success      200  {object}  session.SessionResponse
// @Failure      409  {object}  map[string]interface{}  "A job is running"
// @Router       /session/reset [post]
func (h *Session) Reset(c echo.Context) error {
	if err := h.svc.Reset(); err != nil {
		return HandleError(h.logger, c, toAppError(err, h.svc.Snapshot().JobID.String()))
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(h.svc.Snapshot()))
}

// GetMinutes handles GET /session/minutes
// @Summary      Get structured minutes
// @Description  Title, summary, up to five discussion points and action items with display defaults
// @Tags         Session
// @Produce      json
// @Success      200  {object}  session.MinutesResponse
// @Failure      404  {object}  map[string]interface{}  "No minutes available"
// @Router       /session/minutes [get]
func (h *Session) GetMinutes(c echo.Context) error {
	snap := h.svc.Snapshot()
	return HandleSuccess(h.logger, c, presenter.ToMinutesResponse(snap, h.svc.Formats(), exportPath))
}

// GetMarkdown handles GET /session/minutes.md
// @Summary      Download the minutes document
// @Tags         Session
// @Produce      text/markdown
// @Success      200  {file}    file
// @Failure      404  {object}  map[string]interface{}  "No minutes available"
// @Router       /session/minutes.md [get]
func (h *Session) GetMarkdown(c echo.Context) error {
	snap := h.svc.Snapshot()
	c.Response().Header().Set(echo.HeaderContentDisposition, attachment(snap.Title, "md"))
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(snap.Minutes))
}

// Export handles GET /session/export/:format
// @Summary      Export the minutes
// @Description  Renders the stored document as pdf, docx or html. A failed render returns REPORT_EXPORT_FAILED and no file.
// @Tags         Session
// @Produce      application/pdf
// @Param        format  path      string  true  "pdf, docx or html"
// @Success      200     {file}    file
// @Failure      400     {object}  map[string]interface{}  "Unsupported format"
// @Failure      404     {object}  map[string]interface{}  "No minutes available"
// @Failure      500     {object}  map[string]interface{}  "Export failed"
// @Router       /session/export/{format} [get]
func (h *Session) Export(c echo.Context) error {
	format := c.Param("format")

	res, err := h.svc.Export(c.Request().Context(), format)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, format))
	}
	if !res.OK {
		return HandleError(h.logger, c, errors.ErrReportExportFailed(res.Format, res.Err))
	}

	if h.logger != nil {
		h.logger.Info("📄 Export served",
			zap.String("format", res.Format),
			zap.Int("bytes", len(res.Data)),
			zap.Bool("cached", res.Cached),
		)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.FileName))
	return c.Blob(http.StatusOK, res.ContentType, res.Data)
}

func attachment(title, ext string) string {
	return fmt.Sprintf("attachment; filename=%q", export.FileName(title, ext))
}
