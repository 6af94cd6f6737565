package session

// StartJobRequest starts a job from a local path or an http(s) URL
type StartJobRequest struct {
	Source       string `json:"source" validate:"required,max=2048,audio_source"`
	WhisperModel string `json:"whisper_model,omitempty" validate:"omitempty,whisper_model"`
	LLMModel     string `json:"llm_model,omitempty" validate:"omitempty,max=128"`
	APIKey       string `json:"api_key,omitempty" validate:"omitempty,max=256"`
	// Wait blocks the request until the job completes or fails
	Wait bool `json:"wait,omitempty"`
}

// UploadForm holds the non-file fields of a multipart upload
type UploadForm struct {
	WhisperModel string `form:"whisper_model" validate:"omitempty,whisper_model"`
	LLMModel     string `form:"llm_model" validate:"omitempty,max=128"`
	APIKey       string `form:"api_key" validate:"omitempty,max=256"`
	Wait         bool   `form:"wait"`
}
