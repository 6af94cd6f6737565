package entities

import (
	"time"

	"github.com/google/uuid"
)

// SessionState represents where the single job of a session is
type SessionState string

const (
	SessionStateIdle     SessionState = "idle"     // No job, waiting for audio
	SessionStateRunning  SessionState = "running"  // Transcription or generation in flight
	SessionStateComplete SessionState = "complete" // Structured result available
)

// Pipeline stages reported through Progress
const (
	StageAcquire    = "acquire"
	StageTranscribe = "transcribe"
	StageGenerate   = "generate"
	StageExtract    = "extract"
	StageComplete   = "complete"
)

// Progress is a coarse status signal. It is not part of the state machine.
type Progress struct {
	Percent int    `json:"percent"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Session is the in-memory record of the current job
type Session struct {
	JobID       uuid.UUID          `json:"job_id"`
	State       SessionState       `json:"state"`
	Source      string             `json:"source,omitempty"`
	AudioPath   string             `json:"audio_path,omitempty"`
	Transcript  string             `json:"transcript,omitempty"`
	Minutes     MinutesDocument    `json:"minutes,omitempty"`
	Structured  *StructuredMinutes `json:"structured,omitempty"`
	Title       string             `json:"title,omitempty"`
	LLMModel    string             `json:"llm_model,omitempty"`
	Progress    Progress           `json:"progress"`
	LastError   string             `json:"last_error,omitempty"`
	Artifacts   []string           `json:"artifacts,omitempty"`
	StartedAt   *time.Time         `json:"started_at,omitempty"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
}

// NewSession returns an idle session
func NewSession() *Session {
	return &Session{State: SessionStateIdle}
}

// IsIdle reports whether a new job may start
func (s *Session) IsIdle() bool {
	return s.State == SessionStateIdle
}

// MarkAsRunning starts a new job
func (s *Session) MarkAsRunning(jobID uuid.UUID, source, audioPath, llmModel string) {
	now := time.Now()
	s.JobID = jobID
	s.State = SessionStateRunning
	s.Source = source
	s.AudioPath = audioPath
	s.LLMModel = llmModel
	s.LastError = ""
	s.StartedAt = &now
	s.CompletedAt = nil
	s.Progress = Progress{Percent: 0, Stage: StageAcquire, Message: "Starting"}
}

// MarkAsComplete stores the job results
func (s *Session) MarkAsComplete(transcript string, minutes MinutesDocument, structured *StructuredMinutes) {
	now := time.Now()
	s.State = SessionStateComplete
	s.Transcript = transcript
	s.Minutes = minutes
	s.Structured = structured
	if structured != nil {
		s.Title = structured.Title
	}
	s.CompletedAt = &now
	s.Progress = Progress{Percent: 100, Stage: StageComplete, Message: "Analysis complete"}
}

// MarkAsFailed drops partial results and returns to idle
func (s *Session) MarkAsFailed(errMsg string) {
	lastErr := errMsg
	s.Reset()
	s.LastError = lastErr
}

// Reset clears the job and returns to idle
func (s *Session) Reset() {
	*s = Session{State: SessionStateIdle}
}

// Snapshot returns a copy safe to hand to renderers
func (s *Session) Snapshot() Session {
	out := *s
	out.Structured = s.Structured.Clone()
	if s.Artifacts != nil {
		out.Artifacts = append([]string(nil), s.Artifacts...)
	}
	if s.StartedAt != nil {
		t := *s.StartedAt
		out.StartedAt = &t
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		out.CompletedAt = &t
	}
	return out
}
