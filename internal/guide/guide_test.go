package guide

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/how2use/document"
	"git.home.luguber.info/inful/how2use/internal/resource"
	"git.home.luguber.info/inful/how2use/registry"
)

func runGuide(t *testing.T, dir string) (*registry.Report, string) {
	t.Helper()
	_, err := InstallMaterials(filepath.Join(dir, "md_materials"))
	require.NoError(t, err)
	r := registry.New(
		registry.WithOutputDir(dir, ".md"),
		registry.WithCodeLanguage("go"),
		registry.WithSource(ReadSource),
		registry.WithResources(resource.NewLoaderFS(Materials(), "md_materials", "md_materials")),
		registry.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, Register(r))

	report, err := r.RunAll(context.Background())
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, Name+".md"))
	require.NoError(t, err, "failures: %v", report.Err())
	return report, string(data)
}

func TestGuidePasses(t *testing.T) {
	report, text := runGuide(t, t.TempDir())

	res, ok := report.Result(Name)
	require.True(t, ok)
	require.Equal(t, document.Passed, res.Outcome, "failures: %v", res.Err())
	assert.Equal(t, 14, res.Blocks)

	var titles []string
	for _, h := range res.Outline {
		if h.Level == 1 {
			titles = append(titles, h.Text)
		}
	}
	assert.Equal(t, []string{
		"Introduction", "Math Expression", "Code Block", "Helper Functions for Assertion",
		"External Resources", "Guards", "Text Helpers",
	}, titles)

	assert.Contains(t, text, "```go\nd.BeginCapture(\"code_block_ex\")\nsum := 0\nfor i := 1; i <= 10; i++ {\n\tsum += i\n}\nd.Assert(sum == 55)\nd.EndCapture(\"code_block_ex\")\n```\n")
	assert.Contains(t, text, "```go\nresult := 1 + 1\n\nd.Assert(result == 2)\n```\n")
	assert.Contains(t, text, "$$ \\sum_{n = 1}^{\\infty}{n^{-2}} = \\frac{\\pi^{2}}{6} $$")
	assert.Contains(t, text, "> You Only Look Once (YOLO) is a family of real-time object detection models.\n")
	assert.Contains(t, text, "<center>\n\n<img src=\"md_materials/sample_image.png\" width=\"720\">\n\n</center>\n")
	assert.Contains(t, text, "<center><strong><blockquote>HTML tags around a short message.</blockquote></strong></center>")
	assert.Contains(t, text, "```\nSelectionSort(A[], n)\n    for last <- n downto 2\n")
	assert.NotContains(t, text, "BeginCapture(\"")
}

func TestGuideIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	_, first := runGuide(t, dir)
	_, second := runGuide(t, dir)
	assert.Equal(t, first, second)
}

func TestReadSource(t *testing.T) {
	require.NotEmpty(t, sourcePath)
	embedded, err := ReadSource(sourcePath)
	require.NoError(t, err)
	onDisk, err := os.ReadFile("guide.go")
	require.NoError(t, err)
	assert.Equal(t, onDisk, embedded)

	// A user file that merely shares the name is read from disk.
	other := filepath.Join(t.TempDir(), "internal", "guide", "guide.go")
	require.NoError(t, os.MkdirAll(filepath.Dir(other), 0o755))
	require.NoError(t, os.WriteFile(other, []byte("package guide // user copy\n"), 0o600))
	data, err := ReadSource(other)
	require.NoError(t, err)
	assert.Equal(t, "package guide // user copy\n", string(data))

	_, err = ReadSource(filepath.Join(t.TempDir(), "other.go"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInstallMaterials(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "YOLO.txt"), []byte("custom"), 0o600))

	written, err := InstallMaterials(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"sample_image.png"}, written)

	data, err := os.ReadFile(filepath.Join(dir, "YOLO.txt"))
	require.NoError(t, err)
	assert.Equal(t, "custom", string(data))
	assert.FileExists(t, filepath.Join(dir, "sample_image.png"))

	written, err = InstallMaterials(dir)
	require.NoError(t, err)
	assert.Empty(t, written)
}
