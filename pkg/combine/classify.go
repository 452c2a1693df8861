// File: pkg/combine/classify.go
package combine

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Class is the outcome of content classification.
type Class int

const (
	Text Class = iota
	Binary
)

func (c Class) String() string {
	if c == Binary {
		return "binary"
	}
	return "text"
}

// Default sampling parameters.
const (
	DefaultSampleSize = 2048
	DefaultThreshold  = 0.30
)

// Classifier decides whether a file is text or binary from a bounded
// sample of its head bytes. A null byte marks the file binary outright;
// otherwise the file is binary when the share of control characters
// exceeds Threshold.
type Classifier struct {
	SampleSize int     // Bytes read from the head of the file
	Threshold  float64 // Control-character ratio above which a file is binary
}

// NewClassifier applies defaults for zero or negative parameters.
func NewClassifier(sampleSize int, threshold float64) Classifier {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Classifier{SampleSize: sampleSize, Threshold: threshold}
}

// Classify samples the head of the file. A file that cannot be opened or
// read classifies as Binary so it can never leak into the output; the
// returned error carries the cause.
func (c Classifier) Classify(path Path) (Class, error) {
	file, err := os.Open(string(path))
	if err != nil {
		return Binary, eris.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	sample := make([]byte, c.SampleSize)
	n, err := io.ReadFull(file, sample)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Binary, eris.Wrapf(err, "sample %s", path)
	}
	return classifySample(sample[:n], c.Threshold), nil
}

func classifySample(sample []byte, threshold float64) Class {
	// Empty files are text
	if len(sample) == 0 {
		return Text
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return Binary
	}

	control := 0
	for _, b := range sample {
		if isControl(b) {
			control++
		}
	}
	if float64(control)/float64(len(sample)) > threshold {
		return Binary
	}
	return Text
}

// isControl reports whether b is a control character other than tab,
// newline, or carriage return. DEL counts as control.
func isControl(b byte) bool {
	if b == '\t' || b == '\n' || b == '\r' {
		return false
	}
	return b < 32 || b == 127
}

// ExtensionSet is a lower-cased allow-list of file extensions. An empty
// set allows every extension.
type ExtensionSet map[string]struct{}

// NewExtensionSet normalizes entries: surrounding whitespace and leading
// dots are stripped and the remainder is lower-cased, so "PY", ".py" and
// "py" name the same member. Blank entries are dropped.
func NewExtensionSet(exts ...string) ExtensionSet {
	set := make(ExtensionSet)
	for _, e := range exts {
		e = strings.TrimSpace(e)
		e = strings.TrimPrefix(e, ".")
		e = strings.ToLower(e)
		if e == "" {
			continue
		}
		set["."+e] = struct{}{}
	}
	return set
}

// Match reports whether the path's extension is allowed. Files without an
// extension only pass when the set is empty.
func (s ExtensionSet) Match(p Path) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[strings.ToLower(filepath.Ext(string(p)))]
	return ok
}
