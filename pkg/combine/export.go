// File: pkg/combine/export.go
package combine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/Adarsh1999/combine-files-gpt/pkg/clock"
)

// DefaultOutputDir is where documents land unless configured otherwise,
// relative to the working directory.
const DefaultOutputDir = "combined_files"

// outputPrefix starts every generated document name.
const outputPrefix = "combined_files"

// timestampLayout names documents down to the second, so consecutive
// exports in the same second collide rather than overwrite.
const timestampLayout = "20060102_150405"

// Exporter writes the staged selection to a timestamped document in the
// output directory. Documents are written through a temporary file and
// renamed into place, so a failed export never leaves a partial document
// behind.
type Exporter struct {
	OutputDir string

	clk    clock.Clock
	text   *TextWriter
	pdf    *PDFWriter
	logger *zap.Logger
}

// NewExporter wires an exporter. An empty outputDir falls back to
// DefaultOutputDir; a nil clock uses the system clock; a nil logger is
// replaced with a no-op.
func NewExporter(outputDir string, clk clock.Clock, text *TextWriter, pdf *PDFWriter, logger *zap.Logger) *Exporter {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if text == nil {
		text = NewTextWriter(logger)
	}
	if pdf == nil {
		pdf = NewPDFWriter("", 0, 0, logger)
	}
	return &Exporter{
		OutputDir: outputDir,
		clk:       clk,
		text:      text,
		pdf:       pdf,
		logger:    logger,
	}
}

// Export writes paths to a new document and returns where it landed. An
// empty selection returns ErrEmptySelection and touches nothing; an
// existing destination returns ErrOutputExists.
func (e *Exporter) Export(paths []Path, format Format) (WriteResult, error) {
	if len(paths) == 0 {
		return WriteResult{}, ErrEmptySelection
	}

	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return WriteResult{}, eris.Wrapf(err, "create output directory %s", e.OutputDir)
	}

	stamp := e.clk.Now().Format(timestampLayout)
	dest := filepath.Join(e.OutputDir, fmt.Sprintf("%s_%s.%s", outputPrefix, stamp, format.Ext()))
	if _, err := os.Stat(dest); err == nil {
		return WriteResult{}, eris.Wrapf(ErrOutputExists, "%s", dest)
	}

	written, err := e.writeAtomic(dest, format, paths)
	if err != nil {
		return WriteResult{}, err
	}

	e.logger.Info("export complete",
		zap.String("path", dest),
		zap.String("format", string(format)),
		zap.Int("files", written))
	return WriteResult{Path: dest, Files: written}, nil
}

// writeAtomic renders into a temporary sibling of dest and renames it into
// place. The temporary file is removed on any failure.
func (e *Exporter) writeAtomic(dest string, format Format, paths []Path) (int, error) {
	tmp := dest + ".tmp-" + ksuid.New().String()
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, eris.Wrapf(err, "create temporary output %s", tmp)
	}

	written, werr := e.render(file, format, paths)
	if werr == nil {
		if syncErr := file.Sync(); syncErr != nil {
			werr = eris.Wrap(syncErr, "sync temporary output")
		}
	}
	if closeErr := file.Close(); werr == nil && closeErr != nil {
		werr = eris.Wrap(closeErr, "close temporary output")
	}
	if werr != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			e.logger.Warn("cannot remove temporary output", zap.String("path", tmp), zap.Error(rmErr))
		}
		return 0, werr
	}

	if err := os.Rename(tmp, dest); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			e.logger.Warn("cannot remove temporary output", zap.String("path", tmp), zap.Error(rmErr))
		}
		return 0, eris.Wrapf(err, "move output into place at %s", dest)
	}
	return written, nil
}

func (e *Exporter) render(out io.Writer, format Format, paths []Path) (int, error) {
	switch format {
	case FormatPDF:
		return e.pdf.Write(out, paths)
	default:
		return e.text.Write(out, paths)
	}
}
