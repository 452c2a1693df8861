// File: pkg/combine/pdf.go
package combine

import (
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Rendering defaults matching a readable monospace page.
const (
	DefaultFontSize   = 10
	DefaultLineHeight = 6
)

// PDFWriter renders staged files into a paginated PDF. FontPath names a
// TTF to embed, which keeps non-ASCII content intact; with an empty
// FontPath the built-in Courier core font is used and only Latin text
// renders faithfully.
type PDFWriter struct {
	FontPath   string
	FontSize   float64
	LineHeight float64
	logger     *zap.Logger
}

// NewPDFWriter returns a PDF writer. Zero sizes fall back to the
// defaults; a nil logger is replaced with a no-op.
func NewPDFWriter(fontPath string, fontSize, lineHeight float64, logger *zap.Logger) *PDFWriter {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	if lineHeight <= 0 {
		lineHeight = DefaultLineHeight
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFWriter{
		FontPath:   fontPath,
		FontSize:   fontSize,
		LineHeight: lineHeight,
		logger:     logger,
	}
}

// Write renders the records for paths into out and returns how many files
// were written. Record layout mirrors the text format: bold header, '='
// rule, then the file body. A staged file that can no longer be read is
// skipped with a warning.
func (w *PDFWriter) Write(out io.Writer, paths []Path) (int, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 15)

	family := "Courier"
	if w.FontPath != "" {
		family = "mono"
		doc.AddUTF8Font(family, "", w.FontPath)
		doc.AddUTF8Font(family, "B", w.FontPath)
	}
	doc.AddPage()
	if err := doc.Error(); err != nil {
		return 0, eris.Wrapf(err, "initialize pdf with font %q", w.FontPath)
	}

	written := 0
	for _, p := range paths {
		body, err := loadContent(p)
		if err != nil {
			w.logger.Warn("skipping unreadable file", zap.String("path", p.String()), zap.Error(err))
			continue
		}
		header := p.String()

		doc.SetFont(family, "B", w.FontSize+1)
		doc.MultiCell(0, w.LineHeight+2, header, "", "L", false)
		doc.SetFont(family, "", w.FontSize)
		doc.MultiCell(0, w.LineHeight, headerRule(header), "", "L", false)
		doc.Ln(w.LineHeight / 2)
		doc.MultiCell(0, w.LineHeight, body, "", "L", false)
		doc.Ln(w.LineHeight)

		written++
		w.logger.Debug("wrote record", zap.String("path", p.String()))
	}

	if err := doc.Output(out); err != nil {
		return written, eris.Wrap(err, "render pdf")
	}
	return written, nil
}
