package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrInternalError = errors.New("internal server error")
)

// Audio source errors
var (
	ErrMissingAudioSource     = errors.New("no audio source provided")
	ErrAudioNotFound          = errors.New("audio file not found")
	ErrUnsupportedAudioFormat = errors.New("unsupported audio format")
	ErrDownloadFailed         = errors.New("audio download failed")
)

// Pipeline errors
var (
	ErrSessionBusy         = errors.New("session is not idle")
	ErrNoMinutes           = errors.New("no minutes available for this session")
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrGenerationFailed    = errors.New("minutes generation failed")
	ErrEmptyTranscript     = errors.New("transcript is empty")

	ErrTranscriberUnavailable = errors.New("no transcriber configured")
	ErrGeneratorUnavailable   = errors.New("no minutes generator configured")
)

// Export errors
var (
	ErrUnsupportedExport = errors.New("unsupported export format")
	ErrExportFailed      = errors.New("export failed")
)
