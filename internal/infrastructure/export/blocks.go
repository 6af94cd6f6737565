package export

import (
	"regexp"
	"strings"
)

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockBullet
	blockNumbered
	blockTableRow
)

type block struct {
	kind   blockKind
	level  int
	text   string
	cells  []string
	header bool
}

var (
	reHeading   = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet    = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumbered  = regexp.MustCompile(`^\d+\.\s+(.+)$`)
	reSeparator = regexp.MustCompile(`^\|?[\s:|-]+\|?$`)
)

// parseBlocks splits markdown into the line blocks the PDF and DOCX writers render.
// The first row of each table is flagged as its header.
func parseBlocks(markdown string) []block {
	lines := strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n")
	blocks := make([]block, 0, len(lines))
	inTable := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "|") {
			if reSeparator.MatchString(trimmed) && strings.Contains(trimmed, "-") {
				continue
			}
			blocks = append(blocks, block{
				kind:   blockTableRow,
				cells:  splitRow(trimmed),
				header: !inTable,
			})
			inTable = true
			continue
		}
		inTable = false

		if trimmed == "" || trimmed == "---" || strings.HasPrefix(trimmed, "```") {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			blocks = append(blocks, block{kind: blockHeading, level: len(m[1]), text: m[2]})
			continue
		}
		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			blocks = append(blocks, block{kind: blockBullet, text: m[1]})
			continue
		}
		if reNumbered.MatchString(trimmed) {
			blocks = append(blocks, block{kind: blockNumbered, text: trimmed})
			continue
		}
		blocks = append(blocks, block{kind: blockParagraph, text: trimmed})
	}
	return blocks
}

func splitRow(row string) []string {
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(row, "|")
	parts := strings.Split(row, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

func cleanInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}

// FileName builds the download name: title with spaces replaced by "_"
func FileName(title, ext string) string {
	name := strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '"', '\n', '\r':
			return '_'
		}
		return r
	}, name)
	if name == "" {
		name = "minutes"
	}
	return name + "." + ext
}
