package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	docxFont     = "Calibri"
	docxFontSize = 11
)

// DOCXExporter renders minutes as a Word document
type DOCXExporter struct {
	tmpDir string
}

// NewDOCXExporter creates a DOCX exporter; tmpDir "" uses the OS temp dir
func NewDOCXExporter(tmpDir string) *DOCXExporter {
	return &DOCXExporter{tmpDir: tmpDir}
}

func (e *DOCXExporter) Format() string { return "docx" }
func (e *DOCXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

// Export renders markdown into DOCX bytes
func (e *DOCXExporter) Export(markdown string, title string) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("create docx: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	for _, b := range parseBlocks(markdown) {
		switch b.kind {
		case blockHeading:
			addStyledRun(doc.AddParagraph(""), b.text, true, docxHeadingSize(b.level))
		case blockBullet:
			addRichText(doc.AddParagraph(""), "• "+b.text)
		case blockTableRow:
			row := strings.Join(b.cells, "  |  ")
			if b.header {
				addStyledRun(doc.AddParagraph(""), row, true, docxFontSize)
			} else {
				addRichText(doc.AddParagraph(""), row)
			}
		default:
			addRichText(doc.AddParagraph(""), b.text)
		}
	}

	// godocx only saves to a path
	f, err := os.CreateTemp(e.tmpDir, "minutes-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp docx: %w", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	if err := doc.SaveTo(path); err != nil {
		return nil, fmt.Errorf("save docx: %w", err)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	return data, nil
}

func docxHeadingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 14
	case 3:
		return 13
	default:
		return docxFontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(cleanInline(text)).Font(docxFont).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanInline(part)).Font(docxFont).Size(docxFontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanInline(matches[i][1])).Font(docxFont).Size(docxFontSize).Color("000000").Bold(true)
		}
	}
}
