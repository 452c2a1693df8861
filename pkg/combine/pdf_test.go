package combine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adarsh1999/combine-files-gpt/testutil"
)

func TestPDFWriter(t *testing.T) {
	t.Run("renders a document with the core font when no font is configured", func(t *testing.T) {
		space := testutil.BeginTestSpace(t)
		defer space.CleanUp()

		first := space.WriteFile("a.txt", []byte("alpha lines\nmore alpha"))
		second := space.WriteFile("b.txt", []byte("beta"))

		var buf bytes.Buffer
		written, err := NewPDFWriter("", 0, 0, nil).Write(&buf, []Path{Path(first), Path(second)})
		require.NoError(t, err)

		assert.Equal(t, 2, written)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	})

	t.Run("a missing font file fails the export", func(t *testing.T) {
		space := testutil.BeginTestSpace(t)
		defer space.CleanUp()

		path := space.WriteFile("a.txt", []byte("alpha"))

		var buf bytes.Buffer
		_, err := NewPDFWriter("/no/such/font.ttf", 0, 0, nil).Write(&buf, []Path{Path(path)})
		assert.Error(t, err)
	})

	t.Run("a vanished file is skipped but the rest render", func(t *testing.T) {
		space := testutil.BeginTestSpace(t)
		defer space.CleanUp()

		kept := space.WriteFile("kept.txt", []byte("still here"))

		var buf bytes.Buffer
		written, err := NewPDFWriter("", 0, 0, nil).Write(&buf, []Path{Path(space.Path("gone.txt")), Path(kept)})
		require.NoError(t, err)

		assert.Equal(t, 1, written)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	})
}
