package minutes

import (
	"regexp"
	"strings"
	"time"

	"github.com/johnquangdev/orbital-minutes/internal/domain/entities"
)

const (
	summaryFallbackRunes = 500
	titleTimeLayout      = "2006-01-02 15:04"
)

var (
	// | **1. Meeting Title** | Weekly Sync |
	metaTitleRe  = regexp.MustCompile(`(?m)^[ \t]*\|[ \t]*(?:\*\*)?(?:1\.[ \t]*)?Meeting Title(?:\*\*)?[ \t]*\|[ \t]*([^|\n]*?)[ \t]*\|`)
	topHeadingRe = regexp.MustCompile(`(?m)^#[ \t]+(\S.*)$`)

	atxHeadingRe   = regexp.MustCompile(`^ {0,3}(#{1,6})[ \t]+(.+?)[ \t]*$`)
	atxNumberedRe  = regexp.MustCompile(`^ {0,3}(#{1,6})[ \t]*((?:\*\*|__)?\d+\..*?)[ \t]*$`)
	boldLineRe     = regexp.MustCompile(`^[ \t]*(?:\*\*|__)(.+?)(?:\*\*|__)[ \t]*:?[ \t]*$`)
	numberedLineRe = regexp.MustCompile(`^[ \t]*\d+\.[ \t]+\S`)
	numberedRe     = regexp.MustCompile(`^\d+\.`)

	summaryLabelRe    = regexp.MustCompile(`(?i)^4\.\s*meeting\s+summary`)
	discussionLabelRe = regexp.MustCompile(`(?i)^5\.\s*key\s+discussion`)
	actionLabelRe     = regexp.MustCompile(`(?i)^7\.\s*action\s+items`)

	bulletRe   = regexp.MustCompile(`^[ \t]*[-*][ \t]+(.*\S)`)
	tableRowRe = regexp.MustCompile(`^\s*\|\s*([^|]*?)\s*\|\s*([^|]*?)\s*\|\s*([^|]*?)\s*\|`)

	emphasisReplacer = strings.NewReplacer("**", "", "__", "")
)

// Parser extracts StructuredMinutes from generated markdown.
// It never fails: missing sections degrade to documented fallbacks.
type Parser struct {
	now func() time.Time
}

// Option configures a Parser
type Option func(*Parser)

// WithClock sets the clock used for the placeholder title
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// NewParser creates a new Parser instance
func NewParser(opts ...Option) *Parser {
	p := &Parser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Extract parses markdown with the wall clock
func Extract(markdown string) *entities.StructuredMinutes {
	return NewParser().Extract(markdown)
}

// Extract runs the four independent section searches
func (p *Parser) Extract(markdown string) *entities.StructuredMinutes {
	doc := newDocument(markdown)

	out := entities.NewStructuredMinutes()
	out.Title = ResolveTitle(markdown, p.now())
	out.Summary = doc.summary(markdown)
	out.Discussions = doc.discussions()
	out.Actions = doc.actions()
	return out
}

// ResolveTitle is the only title routine: metadata table row first,
// then the first top-level heading unless it mentions "Summary",
// then "Meeting <YYYY-MM-DD HH:MM>".
func ResolveTitle(markdown string, now time.Time) string {
	text := normalizeNewlines(markdown)

	if m := metaTitleRe.FindStringSubmatch(text); m != nil {
		if title := strings.TrimSpace(m[1]); title != "" {
			return title
		}
	}

	if m := topHeadingRe.FindStringSubmatch(text); m != nil {
		candidate := strings.TrimSpace(m[1])
		if candidate != "" && !strings.Contains(candidate, "Summary") {
			return candidate
		}
	}

	return "Meeting " + now.Format(titleTimeLayout)
}

// StripCodeFence removes a ``` fence wrapping the whole text
func StripCodeFence(text string) string {
	content := strings.TrimSpace(text)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	nl := strings.IndexByte(content, '\n')
	if nl == -1 {
		return ""
	}
	content = strings.TrimSpace(content[nl+1:])
	content = strings.TrimSuffix(content, "```")

	return strings.TrimSpace(content)
}

type document struct {
	lines []string
}

func newDocument(markdown string) document {
	return document{lines: strings.Split(normalizeNewlines(markdown), "\n")}
}

// summary returns the located section body as is, even when empty;
// only a missing section falls back to the document prefix.
func (d document) summary(raw string) string {
	if body, ok := d.section(summaryLabelRe); ok {
		return strings.TrimSpace(body)
	}
	if body, ok := d.looseSection("meeting summary"); ok {
		return strings.TrimSpace(body)
	}
	return truncateRunes(raw, summaryFallbackRunes) + "..."
}

func (d document) discussions() []string {
	points := make([]string, 0, entities.MaxDiscussionPoints)

	body, ok := d.section(discussionLabelRe)
	if !ok {
		return points
	}

	for _, line := range strings.Split(body, "\n") {
		m := bulletRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		point := strings.TrimSpace(m[1])
		if point == "" {
			continue
		}
		points = append(points, point)
		if len(points) == entities.MaxDiscussionPoints {
			break
		}
	}
	return points
}

func (d document) actions() []entities.ActionItem {
	items := make([]entities.ActionItem, 0)

	body, ok := d.section(actionLabelRe)
	if !ok {
		return items
	}

	for _, line := range strings.Split(body, "\n") {
		m := tableRowRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		task := strings.TrimSpace(m[1])
		// separator and header rows
		if strings.Contains(task, "---") || strings.Contains(task, "Task") {
			continue
		}
		items = append(items, entities.ActionItem{
			Task:    task,
			Owner:   strings.TrimSpace(m[2]),
			DueDate: strings.TrimSpace(m[3]),
		})
	}
	return items
}

// section returns the lines under the first ATX heading whose text matches label.
// The body stops at a heading of the same or higher weight, at any numbered
// section heading, or at the end of the document.
func (d document) section(label *regexp.Regexp) (string, bool) {
	for i, line := range d.lines {
		level, text, ok := atxHeading(line)
		if !ok || !label.MatchString(text) {
			continue
		}

		end := len(d.lines)
		for j := i + 1; j < len(d.lines); j++ {
			next, nextText, ok := atxHeading(d.lines[j])
			if ok && (next <= level || numberedRe.MatchString(nextText)) {
				end = j
				break
			}
		}
		return strings.Join(d.lines[i+1:end], "\n"), true
	}
	return "", false
}

// looseSection accepts any heading-like line containing phrase (case-insensitive)
// and stops at the next heading-like line.
func (d document) looseSection(phrase string) (string, bool) {
	for i, line := range d.lines {
		if !headingLike(line) || !strings.Contains(strings.ToLower(line), phrase) {
			continue
		}

		end := len(d.lines)
		for j := i + 1; j < len(d.lines); j++ {
			if headingLike(d.lines[j]) {
				end = j
				break
			}
		}
		return strings.Join(d.lines[i+1:end], "\n"), true
	}
	return "", false
}

func atxHeading(line string) (level int, text string, ok bool) {
	m := atxHeadingRe.FindStringSubmatch(line)
	if m == nil {
		if m = atxNumberedRe.FindStringSubmatch(line); m == nil {
			return 0, "", false
		}
	}
	return len(m[1]), strings.TrimSpace(emphasisReplacer.Replace(m[2])), true
}

func headingLike(line string) bool {
	if _, _, ok := atxHeading(line); ok {
		return true
	}
	return boldLineRe.MatchString(line) || numberedLineRe.MatchString(line)
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
