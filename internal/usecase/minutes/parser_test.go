package minutes

import (
	"reflect"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/johnquangdev/orbital-minutes/internal/domain/entities"
)

var fixedNow = time.Date(2024, time.March, 5, 9, 7, 0, 0, time.Local)

func fixedParser() *Parser {
	return NewParser(WithClock(func() time.Time { return fixedNow }))
}

const fullMinutes = `# Meeting Minutes

| Field | Detail |
|---|---|
| **1. Meeting Title** |   Q3 Planning Sync   |
| **2. Date** | 2024-03-05 |
| **3. Attendees** | Sam, Priya, Lee |

### 4. Meeting Summary
The team reviewed Q3 goals.
Budget was approved.

### 5. Key Discussion Points
- Hiring plan
- Release train
* Customer escalations

### 6. Decisions Made
- Ship v2 in August

### 7. Action Items
| Task | Owner | Deadline |
|---|---|---|
| Draft hiring plan | Priya | 2024-03-12 |
| Book venue |  |  |
`

func TestResolveTitle(t *testing.T) {
	placeholder := "Meeting 2024-03-05 09:07"

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "bold metadata row",
			doc:  "| **1. Meeting Title** | Weekly Sync |",
			want: "Weekly Sync",
		},
		{
			name: "plain metadata row",
			doc:  "| 1. Meeting Title | Design Review |",
			want: "Design Review",
		},
		{
			name: "metadata row wins over heading",
			doc:  "# Some Heading\n\n| **1. Meeting Title** | Budget Talk |",
			want: "Budget Talk",
		},
		{
			name: "label is case sensitive",
			doc:  "| **1. meeting title** | Lower |",
			want: placeholder,
		},
		{
			name: "empty metadata cell falls back to heading",
			doc:  "# Retro\n| **1. Meeting Title** |   |",
			want: "Retro",
		},
		{
			name: "top level heading",
			doc:  "# Sprint Review  \nbody",
			want: "Sprint Review",
		},
		{
			name: "heading containing Summary is rejected",
			doc:  "# Meeting Summary\nbody",
			want: placeholder,
		},
		{
			name: "second level heading is not a title",
			doc:  "## Sprint Review\nbody",
			want: placeholder,
		},
		{
			name: "empty document",
			doc:  "",
			want: placeholder,
		},
		{
			name: "windows newlines",
			doc:  "# Standup\r\nbody\r\n",
			want: "Standup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveTitle(tt.doc, fixedNow); got != tt.want {
				t.Errorf("ResolveTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtract_TitleCapturedExactly(t *testing.T) {
	got := fixedParser().Extract(fullMinutes)
	if got.Title != "Q3 Planning Sync" {
		t.Fatalf("Title = %q, want %q", got.Title, "Q3 Planning Sync")
	}
	if strings.Count(got.Title, "Q3 Planning Sync") != 1 {
		t.Fatalf("title duplicated: %q", got.Title)
	}
}

func TestExtract_PlaceholderTitleWithWallClock(t *testing.T) {
	got := Extract("no headings here at all")
	pattern := regexp.MustCompile(`^Meeting \d{4}-\d{2}-\d{2} \d{2}:\d{2}$`)
	if !pattern.MatchString(got.Title) {
		t.Fatalf("Title = %q does not match placeholder pattern", got.Title)
	}
}

func TestExtract_Summary(t *testing.T) {
	long := strings.Repeat("a", 600)

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "numbered heading",
			doc:  fullMinutes,
			want: "The team reviewed Q3 goals.\nBudget was approved.",
		},
		{
			name: "any heading level",
			doc:  "## 4. Meeting Summary\nShort one.\n## 5. Key Discussion Points\n- a",
			want: "Short one.",
		},
		{
			name: "case insensitive with bold",
			doc:  "#### **4. meeting summary**\nLower case.\n#### 5. Next",
			want: "Lower case.",
		},
		{
			name: "deeper headings stay in the body",
			doc:  "## 4. Meeting Summary\nIntro.\n### Notes\nDetail.\n## Next",
			want: "Intro.\n### Notes\nDetail.",
		},
		{
			name: "numbered heading ends the body regardless of depth",
			doc:  "## 4. Meeting Summary\nIntro.\n### 5. Key Discussion Points\n- a",
			want: "Intro.",
		},
		{
			name: "runs to end of document",
			doc:  "### 4. Meeting Summary\n\n  Tail text.  \n",
			want: "Tail text.",
		},
		{
			name: "loose bold heading",
			doc:  "**Meeting Summary**\nLoose body.\n**Next Section**\nignored",
			want: "Loose body.",
		},
		{
			name: "loose unnumbered atx heading",
			doc:  "## Meeting Summary\nPlain heading body.",
			want: "Plain heading body.",
		},
		{
			name: "empty section yields empty summary",
			doc:  "### 4. Meeting Summary\n\n### 5. Key Discussion Points\n- A\n",
			want: "",
		},
		{
			name: "empty loose section yields empty summary",
			doc:  "**Meeting Summary**\n**Next Section**\nignored",
			want: "",
		},
		{
			name: "no space after heading marker",
			doc:  "###4. Meeting Summary\nWe met.\n###5. Key Discussion Points\n- A",
			want: "We met.",
		},
		{
			name: "long document without summary",
			doc:  long,
			want: strings.Repeat("a", 500) + "...",
		},
		{
			name: "fallback counts characters not bytes",
			doc:  strings.Repeat("é", 501),
			want: strings.Repeat("é", 500) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fixedParser().Extract(tt.doc).Summary; got != tt.want {
				t.Errorf("Summary = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtract_Discussions(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "mixed bullet markers",
			doc:  fullMinutes,
			want: []string{"Hiring plan", "Release train", "Customer escalations"},
		},
		{
			name: "capped at five in source order",
			doc:  "### 5. Key Discussion Points\n- one\n- two\n- three\n- four\n- five\n- six\n- seven",
			want: []string{"one", "two", "three", "four", "five"},
		},
		{
			name: "prefix match on label",
			doc:  "## 5. Key Discussions & Debates\n  - indented\n",
			want: []string{"indented"},
		},
		{
			name: "bold and rules are not bullets",
			doc:  "### 5. Key Discussion Points\n**Bold line**\n---\n-no space\n- real",
			want: []string{"real"},
		},
		{
			name: "section without bullets",
			doc:  "### 5. Key Discussion Points\nJust prose.\n",
			want: []string{},
		},
		{
			name: "section absent",
			doc:  "### 4. Meeting Summary\nText\n- stray bullet",
			want: []string{},
		},
		{
			name: "bullets after the section are ignored",
			doc:  "### 5. Key Discussion Points\n- inside\n### 6. Decisions Made\n- outside",
			want: []string{"inside"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fixedParser().Extract(tt.doc).Discussions
			if got == nil {
				t.Fatal("Discussions must not be nil")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Discussions = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestExtract_Actions(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []entities.ActionItem
	}{
		{
			name: "empty cells stay empty",
			doc:  fullMinutes,
			want: []entities.ActionItem{
				{Task: "Draft hiring plan", Owner: "Priya", DueDate: "2024-03-12"},
				{Task: "Book venue", Owner: "", DueDate: ""},
			},
		},
		{
			name: "header and separator rows excluded regardless of other cells",
			doc: "### 7. Action Items\n" +
				"| Task | Sam | Friday |\n" +
				"| :--- | :---: | ---: |\n" +
				"| Taskforce kickoff | Lee | Monday |\n" +
				"| Renew --- license | Ana | Q4 |\n" +
				"| Update docs | Ana | next week |",
			want: []entities.ActionItem{
				{Task: "Update docs", Owner: "Ana", DueDate: "next week"},
			},
		},
		{
			name: "extra columns ignored",
			doc:  "### 7. action items\n| Call vendor | Joe | soon | high |",
			want: []entities.ActionItem{{Task: "Call vendor", Owner: "Joe", DueDate: "soon"}},
		},
		{
			name: "due date is opaque text",
			doc:  "## 7. Action Items\n| Fix flaky test | **Sam** | whenever |",
			want: []entities.ActionItem{{Task: "Fix flaky test", Owner: "**Sam**", DueDate: "whenever"}},
		},
		{
			name: "two column rows are not actions",
			doc:  "### 7. Action Items\n| Fix | Sam |",
			want: []entities.ActionItem{},
		},
		{
			name: "section absent",
			doc:  "| Fix bug | Sam | Friday |",
			want: []entities.ActionItem{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fixedParser().Extract(tt.doc).Actions
			if got == nil {
				t.Fatal("Actions must not be nil")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Actions = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestExtract_SectionsAreIndependent(t *testing.T) {
	doc := "### 7. Action Items\n| Fix bug | Sam | Friday |"
	got := fixedParser().Extract(doc)

	if len(got.Actions) != 1 {
		t.Fatalf("Actions = %#v", got.Actions)
	}
	if len(got.Discussions) != 0 {
		t.Fatalf("Discussions = %#v", got.Discussions)
	}
	if got.Summary != doc+"..." {
		t.Fatalf("Summary = %q", got.Summary)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	p := fixedParser()
	first := p.Extract(fullMinutes)
	second := p.Extract(fullMinutes)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Extract is not deterministic:\n%#v\n%#v", first, second)
	}
}

func TestExtract_ThreeSectionScenario(t *testing.T) {
	doc := "### 4. Meeting Summary\nWe discussed X.\n### 5. Key Discussion Points\n- Point A\n- Point B\n### 7. Action Items\n| Task | Owner | Deadline |\n|---|---|---|\n| Fix bug | Sam | Friday |"

	got := fixedParser().Extract(doc)

	if got.Summary != "We discussed X." {
		t.Errorf("Summary = %q", got.Summary)
	}
	if !reflect.DeepEqual(got.Discussions, []string{"Point A", "Point B"}) {
		t.Errorf("Discussions = %#v", got.Discussions)
	}
	want := []entities.ActionItem{{Task: "Fix bug", Owner: "Sam", DueDate: "Friday"}}
	if !reflect.DeepEqual(got.Actions, want) {
		t.Errorf("Actions = %#v", got.Actions)
	}
	if got.Title != "Meeting 2024-03-05 09:07" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestExtract_NoHeadingsScenario(t *testing.T) {
	doc := strings.Repeat("The quarterly numbers look fine. ", 30)

	got := fixedParser().Extract(doc)

	if got.Title != "Meeting 2024-03-05 09:07" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Summary != doc[:500]+"..." {
		t.Errorf("Summary = %q", got.Summary)
	}
	if got.Discussions == nil || len(got.Discussions) != 0 {
		t.Errorf("Discussions = %#v", got.Discussions)
	}
	if got.Actions == nil || len(got.Actions) != 0 {
		t.Errorf("Actions = %#v", got.Actions)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "  # Title\nbody  ", want: "# Title\nbody"},
		{name: "markdown fence", in: "```markdown\n# Title\nbody\n```", want: "# Title\nbody"},
		{name: "bare fence", in: "```\n# Title\n```\n", want: "# Title"},
		{name: "unclosed fence", in: "```md\n# Title", want: "# Title"},
		{name: "inner fence kept", in: "# Title\n```go\nx\n```", want: "# Title\n```go\nx\n```"},
		{name: "fence only", in: "```", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.in); got != tt.want {
				t.Errorf("StripCodeFence() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtract_UnspacedNumberedHeadings(t *testing.T) {
	doc := "###4. Meeting Summary\nWe met.\n###5. Key Discussion Points\n- A\n###7. Action Items\n| Fix | Sam | Fri |\n"

	got := fixedParser().Extract(doc)

	if got.Summary != "We met." {
		t.Errorf("Summary = %q", got.Summary)
	}
	if !reflect.DeepEqual(got.Discussions, []string{"A"}) {
		t.Errorf("Discussions = %q", got.Discussions)
	}
	want := []entities.ActionItem{{Task: "Fix", Owner: "Sam", DueDate: "Fri"}}
	if !reflect.DeepEqual(got.Actions, want) {
		t.Errorf("Actions = %+v", got.Actions)
	}
}
