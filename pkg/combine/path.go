package combine

import (
	"path/filepath"

	"github.com/rotisserie/eris"
)

// Path is a canonical absolute filesystem path. Selection identity is
// string equality of Paths, so the same file selected through "./a.txt"
// and "a.txt" dedupes to one entry.
type Path string

// NewPath canonicalizes p against the working directory.
func NewPath(p string) (Path, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", eris.Wrapf(err, "resolve absolute path for %q", p)
	}
	return Path(abs), nil
}

func (p Path) String() string {
	return string(p)
}
