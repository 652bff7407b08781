package registry_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	h2uassert "git.home.luguber.info/inful/how2use/assert"
	"git.home.luguber.info/inful/how2use/document"
	"git.home.luguber.info/inful/how2use/registry"
	"git.home.luguber.info/inful/how2use/segment"
)

// squares is written the way a library documents itself from its own module.
func squares(d *document.Document) {
	d.Add(segment.Title("Squares", 1), segment.Text("Every square of 1..4 is positive:"), segment.Newline())

	d.BeginCapture("squares")
	var sq []int
	for i := 1; i <= 4; i++ {
		sq = append(sq, i*i)
	}
	d.Assert(h2uassert.AreAllTrue(sq, func(v int) bool { return v > 0 }))
	ok, err := h2uassert.AreNTrue(slices.Values(sq), 2, func(v int) bool { return v < 5 })
	d.AssertNoError(err)
	d.Assert(ok)
	d.EndCaptureAndLoad("squares")

	d.Add(segment.EmptyLine())
	d.LoadImage("plot.png", 0)
}

func TestRegistry_UsableFromOtherPackages(t *testing.T) {
	dir := t.TempDir()
	materials := filepath.Join(dir, "md_materials")
	require.NoError(t, os.MkdirAll(materials, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(materials, "plot.png"), []byte("png"), 0o600))

	r := registry.New(
		registry.WithOutputDir(dir, ".md"),
		registry.WithMaterials(materials, "md_materials"),
		registry.WithCodeLanguage("go"),
		registry.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	r.MustRegister("Squares", squares)

	report, err := r.RunAll(context.Background())
	require.NoError(t, err)
	require.NoError(t, report.Err())

	data, err := os.ReadFile(filepath.Join(dir, "Squares.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Squares\nEvery square of 1..4 is positive:  \n```go\nvar sq []int\n")
	assert.Contains(t, string(data), "![plot.png](md_materials/plot.png)\n")
}
