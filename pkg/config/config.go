// Package config loads combinefiles.yml, the optional per-project
// configuration file. The file is searched for from the working directory
// upward so the tool can be invoked from anywhere inside a project.
package config

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Candidate file names, checked in order inside each directory.
var fileNames = []string{"combinefiles.yml", "combinefiles.yaml"}

// Config mirrors the combinefiles.yml layout.
type Config struct {
	Output     Output    `yaml:"output"`
	Classifier Sampler   `yaml:"classifier"`
	Collector  Collector `yaml:"collector"`
	PDF        PDF       `yaml:"pdf"`
}

// Output controls where and how documents are written.
type Output struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// Sampler tunes text versus binary detection.
type Sampler struct {
	SampleSize int     `yaml:"sample-size"`
	Threshold  float64 `yaml:"threshold"`
}

// Collector controls folder expansion and filtering.
type Collector struct {
	Extensions []string `yaml:"extensions"`
	Expansion  string   `yaml:"expansion"`
	Exclude    []string `yaml:"exclude"`
}

// PDF holds rendering parameters for the PDF writer.
type PDF struct {
	FontPath   string  `yaml:"font-path"`
	FontSize   float64 `yaml:"font-size"`
	LineHeight float64 `yaml:"line-height"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Output: Output{
			Dir:    "combined_files",
			Format: "txt",
		},
		Classifier: Sampler{
			SampleSize: 2048,
			Threshold:  0.30,
		},
		Collector: Collector{
			Expansion: "recursive",
		},
		PDF: PDF{
			FontPath:   "/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
			FontSize:   10,
			LineHeight: 6,
		},
	}
}

// Find walks from startDir toward the filesystem root and returns the path
// of the first configuration file it encounters, or "" when there is none.
func Find(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", eris.Wrapf(err, "resolve start directory %q", startDir)
	}
	for {
		for _, name := range fileNames {
			candidate := filepath.Join(dir, name)
			info, statErr := os.Stat(candidate)
			if statErr == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Read parses the file at path over the defaults, so absent keys keep
// their default values.
func Read(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, eris.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, eris.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// Load resolves the configuration for startDir. The returned path is ""
// when no file was found and the defaults are in effect.
func Load(startDir string) (Config, string, error) {
	path, err := Find(startDir)
	if err != nil {
		return Default(), "", err
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Read(path)
	if err != nil {
		return Default(), path, err
	}
	return cfg, path, nil
}
