package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/orbital-minutes/errors"
	usecaseErrors "github.com/johnquangdev/orbital-minutes/internal/usecase/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusOK, "success", data)
}

// HandleAccepted writes a standardized 202 response for work started in the background
func HandleAccepted(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusAccepted, "accepted", data)
}

func respond(logger *zap.Logger, c echo.Context, status int, message string, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: message,
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// toAppError maps usecase sentinels to API errors. detail names the input involved.
func toAppError(err error, detail string) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return err
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrSessionBusy):
		return errors.ErrSessionBusy(detail)
	case stdErrors.Is(err, usecaseErrors.ErrMissingAudioSource):
		return errors.ErrMissingAudioSource()
	case stdErrors.Is(err, usecaseErrors.ErrAudioNotFound):
		return errors.ErrAudioNotFound(detail, err)
	case stdErrors.Is(err, usecaseErrors.ErrUnsupportedAudioFormat):
		return errors.ErrUnsupportedAudioFormat(detail)
	case stdErrors.Is(err, usecaseErrors.ErrDownloadFailed):
		return errors.ErrAudioDownloadFailed(detail, err)
	case stdErrors.Is(err, usecaseErrors.ErrTranscriptionFailed):
		return errors.ErrAITranscriptionFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrGenerationFailed):
		return errors.ErrAISummaryFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrTranscriberUnavailable):
		return errors.ErrAIServiceUnavailable("transcriber")
	case stdErrors.Is(err, usecaseErrors.ErrGeneratorUnavailable):
		return errors.ErrAIServiceUnavailable("generator")
	case stdErrors.Is(err, usecaseErrors.ErrNoMinutes):
		return errors.ErrNoMinutes()
	case stdErrors.Is(err, usecaseErrors.ErrUnsupportedExport):
		return errors.ErrUnsupportedExportFormat(detail)
	case stdErrors.Is(err, usecaseErrors.ErrExportFailed):
		return errors.ErrReportExportFailed(detail, err)
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrNotFound):
		return errors.ErrNotFound(detail)
	}
	return errors.ErrProcessingFailed(err)
}
