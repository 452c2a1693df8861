package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adarsh1999/combine-files-gpt/testutil"
)

func TestLoad(t *testing.T) {
	t.Run("no file means defaults", func(t *testing.T) {
		space := testutil.BeginTestSpace(t)
		defer space.CleanUp()

		cfg, path, err := Load(space.Dir)
		require.NoError(t, err)

		assert.Equal(t, "", path)
		assert.Equal(t, Default(), cfg)
		assert.Equal(t, "combined_files", cfg.Output.Dir)
		assert.Equal(t, "txt", cfg.Output.Format)
		assert.Equal(t, 2048, cfg.Classifier.SampleSize)
		assert.Equal(t, 0.30, cfg.Classifier.Threshold)
		assert.Equal(t, "recursive", cfg.Collector.Expansion)
	})

	t.Run("absent keys keep their defaults", func(t *testing.T) {
		space := testutil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile("combinefiles.yml", []byte(`
output:
    format: pdf
collector:
    extensions: [go, md]
    exclude: ["*.log"]
`))

		cfg, path, err := Load(space.Dir)
		require.NoError(t, err)

		assert.Equal(t, space.Path("combinefiles.yml"), path)
		assert.Equal(t, "pdf", cfg.Output.Format)
		assert.Equal(t, []string{"go", "md"}, cfg.Collector.Extensions)
		assert.Equal(t, []string{"*.log"}, cfg.Collector.Exclude)

		// Untouched sections stay at their defaults.
		assert.Equal(t, "combined_files", cfg.Output.Dir)
		assert.Equal(t, 2048, cfg.Classifier.SampleSize)
		assert.Equal(t, float64(10), cfg.PDF.FontSize)
	})

	t.Run("the file is found from a nested directory", func(t *testing.T) {
		space := testutil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile("combinefiles.yml", []byte("output:\n    dir: exports\n"))
		nested := space.MkdirAll("a/b/c")

		cfg, path, err := Load(nested)
		require.NoError(t, err)

		assert.Equal(t, space.Path("combinefiles.yml"), path)
		assert.Equal(t, "exports", cfg.Output.Dir)
	})

	t.Run("a yaml spelling is accepted too", func(t *testing.T) {
		space := testutil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile("combinefiles.yaml", []byte("output:\n    dir: alt\n"))

		cfg, path, err := Load(space.Dir)
		require.NoError(t, err)

		assert.Equal(t, space.Path("combinefiles.yaml"), path)
		assert.Equal(t, "alt", cfg.Output.Dir)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		space := testutil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile("combinefiles.yml", []byte("output: [unterminated"))

		_, path, err := Load(space.Dir)
		assert.Error(t, err)
		assert.Equal(t, space.Path("combinefiles.yml"), path)
	})
}
