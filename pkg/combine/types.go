// File: pkg/combine/types.go
package combine

import "github.com/rotisserie/eris"

// Format selects the document type produced by an export.
type Format string

const (
	FormatText Format = "txt" // Plain-text document
	FormatPDF  Format = "pdf" // Paginated PDF document
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatPDF:
		return Format(s), nil
	default:
		return "", eris.Errorf("unknown format %q (expected txt or pdf)", s)
	}
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// ExpansionMode selects how folder selections are enumerated.
type ExpansionMode string

const (
	ExpandShallow   ExpansionMode = "shallow"   // Immediate children only
	ExpandRecursive ExpansionMode = "recursive" // Full subtree walk
)

// ParseExpansionMode validates a user-supplied expansion mode.
func ParseExpansionMode(s string) (ExpansionMode, error) {
	switch ExpansionMode(s) {
	case ExpandShallow, ExpandRecursive:
		return ExpansionMode(s), nil
	default:
		return "", eris.Errorf("unknown expansion mode %q (expected shallow or recursive)", s)
	}
}

// Disposition records what the collector did with one candidate file.
type Disposition int

const (
	Included          Disposition = iota // Added to the selection
	SkippedFiltered                      // Rejected by extension, pattern, or content filters
	SkippedUnreadable                    // Could not be opened or sampled
	SkippedDuplicate                     // Already present in the selection
)

// String returns the lower-case name used in reports and dry-run output.
func (d Disposition) String() string {
	switch d {
	case Included:
		return "included"
	case SkippedFiltered:
		return "filtered"
	case SkippedUnreadable:
		return "unreadable"
	case SkippedDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Decision is the per-file outcome of a collection run. Reason is empty
// for included files.
type Decision struct {
	Path        Path
	Disposition Disposition
	Reason      string
}

// WriteResult describes a finished export.
type WriteResult struct {
	Path  string // Document location, relative when the output directory is relative
	Files int    // Number of file records in the document
}

var (
	// ErrEmptySelection is returned when an export is attempted with no
	// files selected.
	ErrEmptySelection = eris.New("selection is empty")

	// ErrOutputExists is returned when the destination file already exists;
	// documents are never overwritten.
	ErrOutputExists = eris.New("output file already exists")
)
