// Package testutil provides a throwaway working directory for filesystem
// tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Space is a temporary directory that is also the working directory for
// the duration of a test.
type Space struct {
	t       *testing.T
	Dir     string
	CleanUp func()
}

// BeginTestSpace creates the directory and chdirs into it. Callers defer
// CleanUp to restore the previous working directory.
func BeginTestSpace(t *testing.T) Space {
	t.Helper()

	originalDir, err := os.Getwd()
	require.NoError(t, err)

	tempDir, err := os.MkdirTemp("", "combinefiles-test-")
	require.NoError(t, err)

	// Resolve symlinks so absolute-path assertions hold on systems where
	// the temp root is a link, like /tmp on macOS.
	resolved, err := filepath.EvalSymlinks(tempDir)
	require.NoError(t, err)

	require.NoError(t, os.Chdir(resolved))

	cleanup := func() {
		_ = os.Chdir(originalDir)
		_ = os.RemoveAll(tempDir)
	}

	return Space{
		t:       t,
		Dir:     resolved,
		CleanUp: cleanup,
	}
}

// Path joins rel onto the space root.
func (s Space) Path(rel string) string {
	return filepath.Join(s.Dir, rel)
}

// WriteFile creates a file under the space, making parent directories as
// needed, and returns its absolute path.
func (s Space) WriteFile(rel string, content []byte) string {
	s.t.Helper()

	path := s.Path(rel)
	require.NoError(s.t, os.MkdirAll(filepath.Dir(path), os.ModePerm))
	require.NoError(s.t, os.WriteFile(path, content, 0644))
	return path
}

// MkdirAll creates a directory under the space and returns its absolute
// path.
func (s Space) MkdirAll(rel string) string {
	s.t.Helper()

	path := s.Path(rel)
	require.NoError(s.t, os.MkdirAll(path, os.ModePerm))
	return path
}

// ReadFile returns the content of a file under the space.
func (s Space) ReadFile(rel string) []byte {
	s.t.Helper()

	actual, err := os.ReadFile(s.Path(rel))
	require.NoError(s.t, err)
	return actual
}

// AssertExistPath fails the test when the path does not exist.
func (s Space) AssertExistPath(rel string) {
	s.t.Helper()

	_, err := os.Stat(s.Path(rel))
	require.NoError(s.t, err)
}
