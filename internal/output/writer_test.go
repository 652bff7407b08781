package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inful/mdfp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
)

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		in      string
		want    Encoding
		wantErr bool
	}{
		{"", EncodingUTF8, false},
		{"UTF8", EncodingUTF8, false},
		{"utf-8-BOM", EncodingUTF8BOM, false},
		{"utf_16le", EncodingUTF16LE, false},
		{"UTF-16BE", EncodingUTF16BE, false},
		{"latin1", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEncoding(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, []string{"utf-16be", "utf-16le", "utf-8", "utf-8-bom"}, ValidEncodings())
}

func TestWriter_WriteReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docs", "Guide.md")
	w := NewWriter(Options{})

	require.NoError(t, w.Write(path, "Guide", []byte("# One\n")))
	require.NoError(t, w.Write(path, "Guide", []byte("# Two\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Two\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriter_WriteFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := NewWriter(Options{}).Write(filepath.Join(blocker, "Guide.md"), "Guide", []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestWriter_Remove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Guide.md")
	w := NewWriter(Options{})

	removed, err := w.Remove(path)
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))
	removed, err = w.Remove(path)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoFileExists(t, path)
}

func TestWriter_EncodingRoundTrip(t *testing.T) {
	body := []byte("# Café\n")
	for _, enc := range []Encoding{EncodingUTF8, EncodingUTF8BOM, EncodingUTF16LE, EncodingUTF16BE} {
		t.Run(string(enc), func(t *testing.T) {
			w := NewWriter(Options{Encoding: enc})
			data, err := w.Encode("Guide", body)
			require.NoError(t, err)

			decoded, err := w.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, string(body), string(decoded))
		})
	}

	data, err := NewWriter(Options{Encoding: EncodingUTF16LE}).Encode("Guide", []byte("A"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xfe, 'A', 0}, data)
}

func TestWriter_Normalize(t *testing.T) {
	data, err := NewWriter(Options{Normalize: true}).Encode("Guide", []byte("Cafe\u0301"))
	require.NoError(t, err)
	assert.Equal(t, "Caf\u00e9", string(data))
}

func TestWriter_Fingerprint(t *testing.T) {
	w := NewWriter(Options{Fingerprint: true})
	body := "# Guide\n"

	first, err := w.Encode("Guide", []byte(body))
	require.NoError(t, err)
	second, err := w.Encode("Guide", []byte(body))
	require.NoError(t, err)
	assert.Equal(t, first, second, "fingerprint must be deterministic")

	text := string(first)
	require.True(t, strings.HasPrefix(text, "---\n"))
	assert.Equal(t, body, string(StripFrontmatter(first)))

	fmText := strings.TrimPrefix(strings.TrimSuffix(text, "---\n"+body), "---\n")
	var fields map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(fmText), &fields))
	assert.Equal(t, "Guide", fields["title"])
	assert.Equal(t, mdfp.CalculateFingerprintFromParts("title: Guide", body), fields[mdfp.FingerprintField])

	changed, err := w.Encode("Guide", []byte("# Other\n"))
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}

func TestStripFrontmatter_NoFrontmatter(t *testing.T) {
	assert.Equal(t, "# x\n", string(StripFrontmatter([]byte("# x\n"))))
	assert.Equal(t, "---\nunterminated", string(StripFrontmatter([]byte("---\nunterminated"))))
}
