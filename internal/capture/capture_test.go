package capture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
)

const source = `package guide

func sum(d *Doc) {
	d.BeginCapture("outer")
	d.BeginCapture("sum_block")
	sum := 0
	for i := 1; i <= 10; i++ {
		sum += i
	}
	d.Assert(sum == 55)
	d.EndCapture("sum_block")
	d.EndCapture("outer")
}
`

func memReader(files map[string]string) SourceReader {
	return func(path string) ([]byte, error) {
		data, ok := files[path]
		if !ok {
			return nil, os.ErrNotExist
		}
		return []byte(data), nil
	}
}

func TestRecorder_BeginEnd(t *testing.T) {
	rec := NewRecorder("Guide", nil, memReader(map[string]string{"guide.go": source}))

	require.NoError(t, rec.Begin("outer", Site{"guide.go", 4}))
	require.NoError(t, rec.Begin("sum_block", Site{"guide.go", 5}))

	sealed, err := rec.End("sum_block", Site{"guide.go", 11})
	require.NoError(t, err)
	assert.True(t, sealed)

	sealed, err = rec.End("outer", Site{"guide.go", 12})
	require.NoError(t, err)
	assert.True(t, sealed)

	lines, ok := rec.Lookup("sum_block")
	require.True(t, ok)
	assert.Equal(t, []string{
		"sum := 0",
		"for i := 1; i <= 10; i++ {",
		"\tsum += i",
		"}",
		"d.Assert(sum == 55)",
	}, lines)

	outer, ok := rec.Lookup("outer")
	require.True(t, ok)
	assert.Equal(t, []string{
		`d.BeginCapture("sum_block")`,
		"sum := 0",
		"for i := 1; i <= 10; i++ {",
		"\tsum += i",
		"}",
		"d.Assert(sum == 55)",
		`d.EndCapture("sum_block")`,
	}, outer, "the enclosing block keeps the nested block's markers")

	names := []string{}
	for _, b := range rec.Blocks() {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"outer", "sum_block"}, names)
}

func TestRecorder_SealIsFinal(t *testing.T) {
	rec := NewRecorder("Guide", nil, memReader(map[string]string{"guide.go": source}))
	require.NoError(t, rec.Begin("sum_block", Site{"guide.go", 5}))
	_, err := rec.End("sum_block", Site{"guide.go", 11})
	require.NoError(t, err)

	sealed, err := rec.End("sum_block", Site{"guide.go", 12})
	require.NoError(t, err)
	assert.False(t, sealed)

	lines, _ := rec.Lookup("sum_block")
	assert.Len(t, lines, 5)

	err = rec.Begin("sum_block", Site{"guide.go", 5})
	assert.True(t, errors.HasCategory(err, errors.CategoryCapture))
}

func TestRecorder_Errors(t *testing.T) {
	read := memReader(map[string]string{"guide.go": source, "other.go": source})

	t.Run("double begin", func(t *testing.T) {
		rec := NewRecorder("Guide", nil, read)
		require.NoError(t, rec.Begin("a", Site{"guide.go", 4}))
		err := rec.Begin("a", Site{"guide.go", 5})
		assert.True(t, errors.HasCategory(err, errors.CategoryCapture))
	})

	t.Run("end without begin", func(t *testing.T) {
		rec := NewRecorder("Guide", nil, read)
		_, err := rec.End("a", Site{"guide.go", 5})
		assert.True(t, errors.HasCategory(err, errors.CategoryCapture))
	})

	t.Run("end in another file", func(t *testing.T) {
		rec := NewRecorder("Guide", nil, read)
		require.NoError(t, rec.Begin("a", Site{"guide.go", 4}))
		_, err := rec.End("a", Site{"other.go", 8})
		assert.True(t, errors.HasCategory(err, errors.CategoryCapture))
		assert.Equal(t, []string{"a"}, rec.Unsealed())
	})

	t.Run("unreadable source", func(t *testing.T) {
		rec := NewRecorder("Guide", nil, read)
		require.NoError(t, rec.Begin("a", Site{"missing.go", 1}))
		_, err := rec.End("a", Site{"missing.go", 3})
		assert.True(t, errors.HasCategory(err, errors.CategoryCapture))
	})

	t.Run("empty name", func(t *testing.T) {
		rec := NewRecorder("Guide", nil, read)
		assert.Error(t, rec.Text("", "x", Site{}))
	})
}

func TestNamespace_RunWideUniqueness(t *testing.T) {
	ns := NewNamespace()
	first := NewRecorder("First", ns, nil)
	second := NewRecorder("Second", ns, nil)

	require.NoError(t, first.Text("shared", "x := 1", Site{}))
	err := second.Text("shared", "y := 2", Site{})
	require.Error(t, err)

	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	owner, _ := classified.Context().GetString("owner")
	assert.Equal(t, "First", owner)

	// A fresh namespace starts a fresh run.
	assert.NoError(t, NewRecorder("Second", NewNamespace(), nil).Text("shared", "y := 2", Site{}))
}

func TestRecorder_ReadsRealSourceFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.go")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o600))

	rec := NewRecorder("Guide", nil, nil)
	require.NoError(t, rec.Begin("loop", Site{path, 6}))
	_, err := rec.End("loop", Site{path, 10})
	require.NoError(t, err)

	lines, _ := rec.Lookup("loop")
	assert.Equal(t, "for i := 1; i <= 10; i++ {\n\tsum += i\n}", strings.Join(lines, "\n"))
}

func TestCaller(t *testing.T) {
	site := Caller(0)
	assert.Equal(t, "capture_test.go", filepath.Base(site.File))
	assert.Positive(t, site.Line)
}

func TestRecorder_KeepsNestedRecorderCalls(t *testing.T) {
	const src = `package guide

func show(d *Doc) {
	d.BeginCapture("show")
	d.CaptureText("inner", "x := 1")
	y := 2
	d.EndCaptureAndLoad("show")
}
`
	rec := NewRecorder("Guide", nil, memReader(map[string]string{"show.go": src}))
	require.NoError(t, rec.Begin("show", Site{"show.go", 4}))
	require.NoError(t, rec.Text("inner", "x := 1", Site{"show.go", 5}))
	_, err := rec.End("show", Site{"show.go", 7})
	require.NoError(t, err)

	lines, ok := rec.Lookup("show")
	require.True(t, ok)
	assert.Equal(t, []string{`d.CaptureText("inner", "x := 1")`, "y := 2"}, lines)
}
