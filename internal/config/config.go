// Package config loads the generator configuration from YAML.
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/output"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "how2use.yaml"

// Config represents the application configuration.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Materials MaterialsConfig `yaml:"materials"`
	Code      CodeConfig      `yaml:"code"`
	Preview   PreviewConfig   `yaml:"preview"`
	Watch     WatchConfig     `yaml:"watch"`
}

// OutputConfig controls where and how documents are written.
type OutputConfig struct {
	Directory   string `yaml:"directory"`
	Extension   string `yaml:"extension"`
	Encoding    string `yaml:"encoding"`
	Fingerprint bool   `yaml:"fingerprint"`
	// Normalize applies Unicode NFC before encoding. Defaults to true.
	Normalize *bool `yaml:"normalize,omitempty"`
}

// MaterialsConfig points at description files and images.
type MaterialsConfig struct {
	Directory string `yaml:"directory"`
}

// CodeConfig sets the fence language of captured code blocks.
type CodeConfig struct {
	Language string `yaml:"language"`
}

// PreviewConfig configures the serve command.
type PreviewConfig struct {
	Addr string `yaml:"addr"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Load reads the configuration at path. Environment files next to it are
// loaded first and ${VAR} references are expanded. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}
	loadEnvFiles(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if stderrors.Is(err, os.ErrNotExist) {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", path).
			Build()
	}
	return Parse(data)
}

// Parse decodes YAML content, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Build()
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NormalizeEnabled reports whether output text is NFC normalized.
func (c *Config) NormalizeEnabled() bool {
	return c.Output.Normalize == nil || *c.Output.Normalize
}

// DocumentPath returns the output path of the named document.
func (c *Config) DocumentPath(name string) string {
	return filepath.Join(c.Output.Directory, name+c.Output.Extension)
}

// ImageLinkBase returns the materials directory relative to the output
// directory, in slash form, for links written into documents.
func (c *Config) ImageLinkBase() string {
	out, errOut := filepath.Abs(c.Output.Directory)
	mat, errMat := filepath.Abs(c.Materials.Directory)
	if errOut != nil || errMat != nil {
		return filepath.ToSlash(c.Materials.Directory)
	}
	rel, err := filepath.Rel(out, mat)
	if err != nil {
		return filepath.ToSlash(mat)
	}
	return filepath.ToSlash(rel)
}

// WriterOptions builds the options of the output writer. Validate has already
// checked the encoding name.
func (c *Config) WriterOptions() output.Options {
	enc, _ := output.ParseEncoding(c.Output.Encoding)
	return output.Options{
		Encoding:    enc,
		Normalize:   c.NormalizeEnabled(),
		Fingerprint: c.Output.Fingerprint,
	}
}
