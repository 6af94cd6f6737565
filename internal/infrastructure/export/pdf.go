package export

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
)

const (
	pdfFont       = "Helvetica"
	pdfBodySize   = 11
	pdfMarginMM   = 20
	pdfLineHeight = 5.5
)

var disablePDFConfigDir sync.Once

// PDFExporter renders minutes as an A4 PDF and checks the result with pdfcpu
type PDFExporter struct {
	logger *zap.Logger
}

// NewPDFExporter creates a PDF exporter
func NewPDFExporter(logger *zap.Logger) *PDFExporter {
	disablePDFConfigDir.Do(api.DisableConfigDir)
	return &PDFExporter{logger: logger}
}

func (e *PDFExporter) Format() string      { return "pdf" }
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Export renders markdown into PDF bytes
func (e *PDFExporter) Export(markdown string, title string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(pdfMarginMM, pdfMarginMM, pdfMarginMM)
	pdf.SetAutoPageBreak(true, pdfMarginMM)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pdfMarginMM

	pdf.SetFont(pdfFont, "B", 18)
	pdf.MultiCell(contentW, 9, tr(cleanInline(title)), "", "L", false)
	pdf.Ln(3)

	var table [][]string
	flush := func() {
		if len(table) > 0 {
			writeTable(pdf, tr, contentW, table)
			table = nil
		}
	}

	for _, b := range parseBlocks(markdown) {
		if b.kind != blockTableRow {
			flush()
		}

		switch b.kind {
		case blockTableRow:
			if b.header {
				flush()
			}
			table = append(table, b.cells)
		case blockHeading:
			pdf.Ln(2)
			pdf.SetFont(pdfFont, "B", headingPoints(b.level))
			pdf.MultiCell(contentW, 7, tr(cleanInline(b.text)), "", "L", false)
			pdf.Ln(1)
		case blockBullet:
			pdf.SetFont(pdfFont, "", pdfBodySize)
			pdf.SetX(pdfMarginMM + 4)
			pdf.MultiCell(contentW-4, pdfLineHeight, tr("- "+cleanInline(b.text)), "", "L", false)
		default:
			pdf.SetFont(pdfFont, "", pdfBodySize)
			pdf.MultiCell(contentW, pdfLineHeight, tr(cleanInline(b.text)), "", "L", false)
			pdf.Ln(1)
		}
	}
	flush()

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	pages, err := validatePDF(buf.Bytes())
	if err != nil {
		return nil, err
	}

	if e.logger != nil {
		e.logger.Debug("PDF rendered", zap.Int("pages", pages), zap.Int("bytes", buf.Len()))
	}
	return buf.Bytes(), nil
}

// validatePDF parses the document back and returns its page count
func validatePDF(data []byte) (int, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("pdfcpu validate: %w", err)
	}
	if ctx.PageCount < 1 {
		return 0, fmt.Errorf("pdfcpu validate: document has no pages")
	}
	return ctx.PageCount, nil
}

func writeTable(pdf *fpdf.Fpdf, tr func(string) string, width float64, rows [][]string) {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	if cols == 0 {
		return
	}
	colW := width / float64(cols)

	pdf.Ln(1)
	for i, r := range rows {
		style := ""
		if i == 0 {
			style = "B"
		}
		pdf.SetFont(pdfFont, style, pdfBodySize-1)
		for c := 0; c < cols; c++ {
			var text string
			if c < len(r) {
				text = fitText(pdf, tr(cleanInline(r[c])), colW-2)
			}
			pdf.CellFormat(colW, 7, text, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(2)
}

// fitText truncates text with "..." so it fits into width
func fitText(pdf *fpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	for len(text) > 0 && pdf.GetStringWidth(text+"...") > width {
		text = text[:len(text)-1]
	}
	return text + "..."
}

func headingPoints(level int) float64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 14
	case 3:
		return 13
	default:
		return 12
	}
}
