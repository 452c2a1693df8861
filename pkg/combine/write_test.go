package combine

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adarsh1999/combine-files-gpt/testutil"
)

func TestTextWriter(t *testing.T) {
	t.Run("records carry the path, a rule, and the trimmed body", func(t *testing.T) {
		space := testutil.BeginTestSpace(t)
		defer space.CleanUp()

		first := space.WriteFile("one.txt", []byte("hello world\n"))
		second := space.WriteFile("two.txt", []byte("package main"))

		var buf bytes.Buffer
		written, err := NewTextWriter(nil).Write(&buf, []Path{Path(first), Path(second)})
		require.NoError(t, err)
		assert.Equal(t, 2, written)

		expected := fmt.Sprintf("%s\n%s\n\nhello world\n\n%s\n%s\n\npackage main\n\n",
			first, strings.Repeat("=", len(first)),
			second, strings.Repeat("=", len(second)))
		assert.Equal(t, expected, buf.String())
	})

	t.Run("the rule never exceeds eighty characters", func(t *testing.T) {
		space := testutil.BeginTestSpace(t)
		defer space.CleanUp()

		long := space.WriteFile(strings.Repeat("a", 90)+".txt", []byte("x"))
		require.Greater(t, len(long), HeaderRuleLength)

		var buf bytes.Buffer
		_, err := NewTextWriter(nil).Write(&buf, []Path{Path(long)})
		require.NoError(t, err)

		assert.Contains(t, buf.String(), "\n"+strings.Repeat("=", HeaderRuleLength)+"\n\n")
		assert.NotContains(t, buf.String(), strings.Repeat("=", HeaderRuleLength+1))
	})

	t.Run("line endings are normalized and trailing whitespace trimmed", func(t *testing.T) {
		space := testutil.BeginTestSpace(t)
		defer space.CleanUp()

		path := space.WriteFile("mixed.txt", []byte("one\r\ntwo\rthree  \n\n"))

		var buf bytes.Buffer
		_, err := NewTextWriter(nil).Write(&buf, []Path{Path(path)})
		require.NoError(t, err)

		assert.Contains(t, buf.String(), "\n\none\ntwo\nthree\n\n")
		assert.NotContains(t, buf.String(), "\r")
	})

	t.Run("bytes that are not UTF-8 decode as Latin-1", func(t *testing.T) {
		space := testutil.BeginTestSpace(t)
		defer space.CleanUp()

		// 0xE9 is é in Latin-1 and invalid on its own in UTF-8.
		path := space.WriteFile("legacy.txt", []byte{'c', 'a', 'f', 0xE9})

		var buf bytes.Buffer
		_, err := NewTextWriter(nil).Write(&buf, []Path{Path(path)})
		require.NoError(t, err)

		assert.Contains(t, buf.String(), "café")
	})

	t.Run("an empty file keeps its record", func(t *testing.T) {
		space := testutil.BeginTestSpace(t)
		defer space.CleanUp()

		path := space.WriteFile("empty.txt", nil)

		var buf bytes.Buffer
		written, err := NewTextWriter(nil).Write(&buf, []Path{Path(path)})
		require.NoError(t, err)
		assert.Equal(t, 1, written)

		expected := fmt.Sprintf("%s\n%s\n\n\n\n", path, strings.Repeat("=", len(path)))
		assert.Equal(t, expected, buf.String())
	})

	t.Run("a file that vanished after staging is skipped", func(t *testing.T) {
		space := testutil.BeginTestSpace(t)
		defer space.CleanUp()

		kept := space.WriteFile("kept.txt", []byte("still here"))

		var buf bytes.Buffer
		written, err := NewTextWriter(nil).Write(&buf, []Path{Path(space.Path("gone.txt")), Path(kept)})
		require.NoError(t, err)

		assert.Equal(t, 1, written)
		assert.Contains(t, buf.String(), "still here")
		assert.NotContains(t, buf.String(), "gone.txt")
	})
}
