package presenter

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/orbital-minutes/internal/adapter/dto/session"
	"github.com/johnquangdev/orbital-minutes/internal/domain/entities"
)

// Neutral messages shown instead of empty lists
const (
	NoDiscussionsMessage = "No specific discussion points parsed."
	NoActionsMessage     = "No action items parsed."
)

// ToSessionResponse converts a session snapshot to SessionResponse DTO
func ToSessionResponse(s entities.Session) *session.SessionResponse {
	resp := &session.SessionResponse{
		State:    string(s.State),
		Source:   s.Source,
		Title:    s.Title,
		LLMModel: s.LLMModel,
		Progress: session.ProgressResponse{
			Percent: s.Progress.Percent,
			Stage:   s.Progress.Stage,
			Message: s.Progress.Message,
		},
		LastError:   s.LastError,
		Artifacts:   s.Artifacts,
		StartedAt:   s.StartedAt,
		CompletedAt: s.CompletedAt,
	}
	if s.State != entities.SessionStateIdle {
		resp.JobID = s.JobID.String()
	}
	return resp
}

// ToMinutesResponse converts structured minutes to the display view.
// exportBase is joined with each format to build download links; empty omits them.
func ToMinutesResponse(s entities.Session, formats []string, exportBase string) *session.MinutesResponse {
	m := s.Structured
	if m == nil {
		m = entities.NewStructuredMinutes()
	}

	resp := &session.MinutesResponse{
		JobID:       s.JobID.String(),
		Title:       m.Title,
		Summary:     m.Summary,
		Discussions: append(make([]string, 0, len(m.Discussions)), m.Discussions...),
		Actions:     make([]session.ActionItemResponse, 0, len(m.Actions)),
	}

	for _, a := range m.Actions {
		resp.Actions = append(resp.Actions, session.ActionItemResponse{
			Task:    a.Task,
			Owner:   a.DisplayOwner(),
			DueDate: a.DisplayDueDate(),
		})
	}

	if len(resp.Discussions) == 0 {
		resp.DiscussionsEmpty = NoDiscussionsMessage
	}
	if len(resp.Actions) == 0 {
		resp.ActionsEmpty = NoActionsMessage
	}

	if exportBase != "" && len(formats) > 0 {
		resp.Exports = make(map[string]string, len(formats))
		for _, f := range formats {
			resp.Exports[f] = strings.TrimSuffix(exportBase, "/") + "/" + f
		}
	}
	return resp
}

// RenderText formats structured minutes for a terminal
func RenderText(m *entities.StructuredMinutes) string {
	if m == nil {
		m = entities.NewStructuredMinutes()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 %s\n\n", m.Title)
	fmt.Fprintf(&b, "Summary\n%s\n\n", m.Summary)

	b.WriteString("Key Discussion Points\n")
	if len(m.Discussions) == 0 {
		b.WriteString("  " + NoDiscussionsMessage + "\n")
	}
	for _, d := range m.Discussions {
		fmt.Fprintf(&b, "  • %s\n", d)
	}

	b.WriteString("\nAction Items\n")
	if len(m.Actions) == 0 {
		b.WriteString("  " + NoActionsMessage + "\n")
	}
	for _, a := range m.Actions {
		fmt.Fprintf(&b, "  [ ] %s (owner: %s, due: %s)\n", a.Task, a.DisplayOwner(), a.DisplayDueDate())
	}
	return b.String()
}
