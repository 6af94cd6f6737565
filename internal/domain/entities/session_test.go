package entities

import (
	"testing"

	"github.com/google/uuid"
)

func TestSession_Lifecycle(t *testing.T) {
	s := NewSession()
	if !s.IsIdle() {
		t.Fatalf("new session should be idle")
	}

	id := uuid.New()
	s.MarkAsRunning(id, "meeting.mp3", "meeting.mp3", "llama-3.3-70b-versatile")
	if s.State != SessionStateRunning || s.JobID != id || s.StartedAt == nil {
		t.Fatalf("unexpected running session: %+v", s)
	}

	structured := NewStructuredMinutes()
	structured.Title = "Weekly Sync"
	s.MarkAsComplete("hello", MinutesDocument("# Weekly Sync"), structured)
	if s.State != SessionStateComplete || s.Title != "Weekly Sync" || s.Progress.Percent != 100 {
		t.Fatalf("unexpected complete session: %+v", s)
	}

	s.Reset()
	if !s.IsIdle() || s.Transcript != "" || s.Minutes != "" || s.Structured != nil || s.Title != "" {
		t.Fatalf("reset should clear everything: %+v", s)
	}
}

func TestSession_MarkAsFailedKeepsOnlyError(t *testing.T) {
	s := NewSession()
	s.MarkAsRunning(uuid.New(), "a.mp3", "a.mp3", "m")
	s.Transcript = "partial"

	s.MarkAsFailed("transcription failed")

	if !s.IsIdle() {
		t.Fatalf("failed job must return to idle")
	}
	if s.Transcript != "" || s.AudioPath != "" {
		t.Fatalf("partial results must be dropped: %+v", s)
	}
	if s.LastError != "transcription failed" {
		t.Fatalf("LastError = %q", s.LastError)
	}
}

func TestSession_SnapshotIsDeepCopy(t *testing.T) {
	s := NewSession()
	s.MarkAsRunning(uuid.New(), "a.mp3", "a.mp3", "m")
	structured := NewStructuredMinutes()
	structured.Discussions = append(structured.Discussions, "Point A")
	s.MarkAsComplete("t", "md", structured)

	snap := s.Snapshot()
	snap.Structured.Discussions[0] = "changed"

	if s.Structured.Discussions[0] != "Point A" {
		t.Fatalf("snapshot must not alias session data")
	}
}

func TestActionItem_DisplayDefaults(t *testing.T) {
	empty := ActionItem{Task: "Fix bug"}
	if empty.DisplayOwner() != UnassignedOwner || empty.DisplayDueDate() != UndecidedDueDate {
		t.Fatalf("unexpected defaults: %q %q", empty.DisplayOwner(), empty.DisplayDueDate())
	}
	if empty.Owner != "" || empty.DueDate != "" {
		t.Fatalf("display helpers must not mutate the record")
	}

	full := ActionItem{Task: "Fix bug", Owner: "Sam", DueDate: "Friday"}
	if full.DisplayOwner() != "Sam" || full.DisplayDueDate() != "Friday" {
		t.Fatalf("unexpected values: %q %q", full.DisplayOwner(), full.DisplayDueDate())
	}
}
