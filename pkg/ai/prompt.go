package ai

import (
	"fmt"
	"strings"
)

const minutesSystemPrompt = `You are an executive assistant who writes professional meeting minutes.
Write in clear business English and only use facts present in the transcript.
Answer with GitHub flavored markdown only, without code fences or commentary.`

const minutesPromptTemplate = `Create meeting minutes for the transcript below using exactly these numbered sections.

Start with a two-column metadata table:

| Field | Detail |
|---|---|
| **1. Meeting Title** | <short descriptive title> |
| **2. Date** | <date if mentioned, otherwise "Not specified"> |
| **3. Attendees** | <comma separated names> |

Then add these headings in this order:

### 4. Meeting Summary
One or two paragraphs describing the purpose and outcome of the meeting.

### 5. Key Discussion Points
A bullet list ("- ") with one line per topic.

### 6. Decisions Made
A bullet list of decisions, or "- None recorded".

### 7. Action Items
A three-column table:

| Task | Owner | Deadline |
|---|---|---|
| <task> | <owner or leave empty> | <deadline or leave empty> |

Transcript:
---
%s
---`

// BuildMinutesPrompt renders the user prompt for a transcript
func BuildMinutesPrompt(transcript string) string {
	return fmt.Sprintf(minutesPromptTemplate, strings.TrimSpace(transcript))
}

// SystemPrompt returns the instruction shared by all generators
func SystemPrompt() string {
	return minutesSystemPrompt
}
