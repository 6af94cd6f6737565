package entities

// Display fallbacks for action items. Applied at render time only.
const (
	UnassignedOwner  = "Unassigned"
	UndecidedDueDate = "TBD"
)

// MaxDiscussionPoints caps StructuredMinutes.Discussions
const MaxDiscussionPoints = 5

// MinutesDocument is the raw markdown returned by the minutes generator
type MinutesDocument string

// String returns the markdown text
func (d MinutesDocument) String() string {
	return string(d)
}

// ActionItem is one task/owner/due-date row parsed from the action items table.
// Fields hold exactly what was parsed, including empty strings.
type ActionItem struct {
	Task    string `json:"task"`
	Owner   string `json:"owner"`
	DueDate string `json:"due_date"`
}

// DisplayOwner returns the owner or "Unassigned"
func (a ActionItem) DisplayOwner() string {
	if a.Owner == "" {
		return UnassignedOwner
	}
	return a.Owner
}

// DisplayDueDate returns the due date or "TBD"
func (a ActionItem) DisplayDueDate() string {
	if a.DueDate == "" {
		return UndecidedDueDate
	}
	return a.DueDate
}

// StructuredMinutes is the UI-ready view extracted from a MinutesDocument.
// Slices are never nil.
type StructuredMinutes struct {
	Title       string       `json:"title"`
	Summary     string       `json:"summary"`
	Discussions []string     `json:"discussions"`
	Actions     []ActionItem `json:"actions"`
}

// NewStructuredMinutes returns a record with empty, non-nil slices
func NewStructuredMinutes() *StructuredMinutes {
	return &StructuredMinutes{
		Discussions: make([]string, 0),
		Actions:     make([]ActionItem, 0),
	}
}

// Clone returns a deep copy
func (m *StructuredMinutes) Clone() *StructuredMinutes {
	if m == nil {
		return nil
	}
	out := &StructuredMinutes{
		Title:       m.Title,
		Summary:     m.Summary,
		Discussions: make([]string, len(m.Discussions)),
		Actions:     make([]ActionItem, len(m.Actions)),
	}
	copy(out.Discussions, m.Discussions)
	copy(out.Actions, m.Actions)
	return out
}
