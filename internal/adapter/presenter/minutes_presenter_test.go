package presenter

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/johnquangdev/orbital-minutes/internal/domain/entities"
)

func TestToMinutesResponse_DisplayDefaults(t *testing.T) {
	s := entities.Session{
		JobID: uuid.New(),
		State: entities.SessionStateComplete,
		Structured: &entities.StructuredMinutes{
			Title:       "Weekly Sync",
			Summary:     "Reviewed the release.",
			Discussions: []string{},
			Actions: []entities.ActionItem{
				{Task: "Ship build"},
				{Task: "Write notes", Owner: "Sarah", DueDate: "Monday"},
			},
		},
	}

	resp := ToMinutesResponse(s, []string{"pdf", "docx"}, "/v1/session/export/")

	if resp.DiscussionsEmpty != NoDiscussionsMessage {
		t.Errorf("DiscussionsEmpty = %q", resp.DiscussionsEmpty)
	}
	if resp.ActionsEmpty != "" {
		t.Errorf("ActionsEmpty = %q, want empty", resp.ActionsEmpty)
	}
	if resp.Actions[0].Owner != "Unassigned" || resp.Actions[0].DueDate != "TBD" {
		t.Errorf("defaults not applied: %+v", resp.Actions[0])
	}
	if resp.Actions[1].Owner != "Sarah" || resp.Actions[1].DueDate != "Monday" {
		t.Errorf("values changed: %+v", resp.Actions[1])
	}
	if resp.Exports["pdf"] != "/v1/session/export/pdf" {
		t.Errorf("exports = %v", resp.Exports)
	}
	if s.Structured.Actions[0].Owner != "" {
		t.Error("presenter must not mutate the entity")
	}
}

func TestToMinutesResponse_NilStructured(t *testing.T) {
	resp := ToMinutesResponse(entities.Session{}, nil, "")
	if resp.Discussions == nil || resp.Actions == nil {
		t.Fatal("lists must be non-nil")
	}
	if resp.ActionsEmpty != NoActionsMessage || resp.Exports != nil {
		t.Errorf("resp = %+v", resp)
	}
}

func TestToSessionResponse(t *testing.T) {
	idle := ToSessionResponse(entities.Session{State: entities.SessionStateIdle, LastError: "boom"})
	if idle.JobID != "" || idle.LastError != "boom" {
		t.Errorf("idle = %+v", idle)
	}

	id := uuid.New()
	running := ToSessionResponse(entities.Session{
		JobID:    id,
		State:    entities.SessionStateRunning,
		Progress: entities.Progress{Percent: 25, Stage: entities.StageTranscribe},
	})
	if running.JobID != id.String() || running.Progress.Percent != 25 {
		t.Errorf("running = %+v", running)
	}
}

func TestRenderText(t *testing.T) {
	out := RenderText(&entities.StructuredMinutes{
		Title:       "Weekly Sync",
		Summary:     "Short.",
		Discussions: []string{"Budget"},
	})

	for _, want := range []string{"Weekly Sync", "• Budget", NoActionsMessage} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
