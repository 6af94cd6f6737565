package session

import "time"

// ProgressResponse is the coarse progress of the running job
type ProgressResponse struct {
	Percent int    `json:"percent"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// SessionResponse represents the current session
type SessionResponse struct {
	JobID       string           `json:"job_id,omitempty"`
	State       string           `json:"state"`
	Source      string           `json:"source,omitempty"`
	Title       string           `json:"title,omitempty"`
	LLMModel    string           `json:"llm_model,omitempty"`
	Progress    ProgressResponse `json:"progress"`
	LastError   string           `json:"last_error,omitempty"`
	Artifacts   []string         `json:"artifacts,omitempty"`
	StartedAt   *time.Time       `json:"started_at,omitempty"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
}

// ActionItemResponse is one row of the action table with display defaults applied
type ActionItemResponse struct {
	Task    string `json:"task"`
	Owner   string `json:"owner"`
	DueDate string `json:"due_date"`
}

// MinutesResponse is the structured view of a completed session
type MinutesResponse struct {
	JobID            string               `json:"job_id"`
	Title            string               `json:"title"`
	Summary          string               `json:"summary"`
	Discussions      []string             `json:"discussions"`
	DiscussionsEmpty string               `json:"discussions_empty,omitempty"`
	Actions          []ActionItemResponse `json:"actions"`
	ActionsEmpty     string               `json:"actions_empty,omitempty"`
	Exports          map[string]string    `json:"exports,omitempty"`
}
