package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/output"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Output.Directory)
	assert.Equal(t, ".md", cfg.Output.Extension)
	assert.Equal(t, "md_materials", cfg.Materials.Directory)
	assert.Equal(t, "go", cfg.Code.Language)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
	assert.True(t, cfg.NormalizeEnabled())
	assert.Equal(t, "md_materials", cfg.ImageLinkBase())
	assert.Equal(t, "Guide_How2use.md", cfg.DocumentPath("Guide_How2use"))
}

func TestLoad_FileWithEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { _ = os.Unsetenv("H2U_TEST_DOCS_DIR") })
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("H2U_TEST_DOCS_DIR=generated\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "how2use.yaml"), []byte(`
output:
  directory: ${H2U_TEST_DOCS_DIR}/docs
  extension: .markdown
  encoding: UTF_16LE
  fingerprint: true
  normalize: false
materials:
  directory: generated/materials
code:
  language: golang
watch:
  debounce: 1s
`), 0o600))

	cfg, err := Load(filepath.Join(dir, "how2use.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "generated/docs", cfg.Output.Directory)
	assert.Equal(t, filepath.Join("generated", "docs", "Guide.markdown"), cfg.DocumentPath("Guide"))
	assert.Equal(t, "../materials", cfg.ImageLinkBase())
	assert.Equal(t, "golang", cfg.Code.Language)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.False(t, cfg.NormalizeEnabled())

	opts := cfg.WriterOptions()
	assert.Equal(t, output.EncodingUTF16LE, opts.Encoding)
	assert.True(t, opts.Fingerprint)
	assert.False(t, opts.Normalize)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		category errors.ErrorCategory
	}{
		{"bad extension", "output:\n  extension: md\n", errors.CategoryValidation},
		{"bad encoding", "output:\n  encoding: latin1\n", errors.CategoryValidation},
		{"negative debounce", "watch:\n  debounce: -1s\n", errors.CategoryValidation},
		{"unknown field", "outputs:\n  directory: x\n", errors.CategoryConfig},
		{"malformed", "output: [\n", errors.CategoryConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, tt.category), "got %v", err)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
