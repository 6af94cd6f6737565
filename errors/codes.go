package errors

// ErrorCode identifies an application error in API responses
type ErrorCode int32

const (
	ErrorCode_HTTP_OK          ErrorCode = 0
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003

	// Audio input
	ErrorCode_MISSING_AUDIO_SOURCE     ErrorCode = 2000
	ErrorCode_AUDIO_NOT_FOUND          ErrorCode = 2001
	ErrorCode_UNSUPPORTED_AUDIO_FORMAT ErrorCode = 2002
	ErrorCode_AUDIO_DOWNLOAD_FAILED    ErrorCode = 2003

	// AI pipeline
	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 3000
	ErrorCode_AI_SUMMARY_FAILED       ErrorCode = 3001
	ErrorCode_AI_SERVICE_UNAVAILABLE  ErrorCode = 3002

	// Session
	ErrorCode_SESSION_BUSY ErrorCode = 4000
	ErrorCode_NO_MINUTES   ErrorCode = 4001

	// Reports
	ErrorCode_REPORT_EXPORT_FAILED ErrorCode = 5000

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 6000
	ErrorCode_PROCESSING_FAILED          ErrorCode = 6001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_MISSING_AUDIO_SOURCE:       "MISSING_AUDIO_SOURCE",
	ErrorCode_AUDIO_NOT_FOUND:            "AUDIO_NOT_FOUND",
	ErrorCode_UNSUPPORTED_AUDIO_FORMAT:   "UNSUPPORTED_AUDIO_FORMAT",
	ErrorCode_AUDIO_DOWNLOAD_FAILED:      "AUDIO_DOWNLOAD_FAILED",
	ErrorCode_AI_TRANSCRIPTION_FAILED:    "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_SUMMARY_FAILED:          "AI_SUMMARY_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:     "AI_SERVICE_UNAVAILABLE",
	ErrorCode_SESSION_BUSY:               "SESSION_BUSY",
	ErrorCode_NO_MINUTES:                 "NO_MINUTES",
	ErrorCode_REPORT_EXPORT_FAILED:       "REPORT_EXPORT_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_PROCESSING_FAILED:          "PROCESSING_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
