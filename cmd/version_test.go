package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	t.Run("prints the full version line", func(t *testing.T) {
		root := &cobra.Command{}
		root.AddCommand(newVersionCommand())

		out := &bytes.Buffer{}
		root.SetOut(out)
		root.SetArgs([]string{"version"})
		require.NoError(t, root.Execute())

		assert.Contains(t, out.String(), "combinefiles version dev")
	})

	t.Run("prints only the number with --short", func(t *testing.T) {
		root := &cobra.Command{}
		root.AddCommand(newVersionCommand())

		out := &bytes.Buffer{}
		root.SetOut(out)
		root.SetArgs([]string{"version", "--short"})
		require.NoError(t, root.Execute())

		assert.Equal(t, "dev\n", out.String())
	})
}
