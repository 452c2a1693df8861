// File: pkg/combine/write.go
package combine

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

// HeaderRuleLength caps the '=' rule under each file header.
const HeaderRuleLength = 80

// loadContent reads a staged file for output. Content is decoded as
// UTF-8, falling back to Latin-1 when the bytes are not valid UTF-8;
// Latin-1 assigns a character to every byte, so the fallback always
// yields text. Line endings are normalized to LF and trailing whitespace
// is trimmed.
func loadContent(p Path) (string, error) {
	raw, err := os.ReadFile(string(p))
	if err != nil {
		return "", eris.Wrapf(err, "read %s", p)
	}

	var text string
	if utf8.Valid(raw) {
		text = string(raw)
	} else {
		decoded, decErr := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if decErr != nil {
			return "", eris.Wrapf(decErr, "decode %s", p)
		}
		text = string(decoded)
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimRightFunc(text, unicode.IsSpace), nil
}

// headerRule returns the '=' rule for a header, as long as the header up
// to HeaderRuleLength characters.
func headerRule(header string) string {
	n := utf8.RuneCountInString(header)
	if n > HeaderRuleLength {
		n = HeaderRuleLength
	}
	return strings.Repeat("=", n)
}

// TextWriter serializes staged files into a plain-text document. Each
// record is the absolute path, a '=' rule, a blank line, the file body,
// and a blank separating line.
type TextWriter struct {
	logger *zap.Logger
}

// NewTextWriter returns a text writer. A nil logger is replaced with a
// no-op.
func NewTextWriter(logger *zap.Logger) *TextWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TextWriter{logger: logger}
}

// Write renders the records for paths into out and returns how many files
// were written. A staged file that can no longer be read is skipped with
// a warning; the document is still produced from the rest.
func (w *TextWriter) Write(out io.Writer, paths []Path) (int, error) {
	writer := bufio.NewWriter(out)
	written := 0

	for _, p := range paths {
		body, err := loadContent(p)
		if err != nil {
			w.logger.Warn("skipping unreadable file", zap.String("path", p.String()), zap.Error(err))
			continue
		}
		header := p.String()
		if _, err := fmt.Fprintf(writer, "%s\n%s\n\n%s\n\n", header, headerRule(header), body); err != nil {
			return written, eris.Wrapf(err, "write record for %s", p)
		}
		written++
		w.logger.Debug("wrote record", zap.String("path", p.String()))
	}

	if err := writer.Flush(); err != nil {
		return written, eris.Wrap(err, "flush output")
	}
	return written, nil
}
