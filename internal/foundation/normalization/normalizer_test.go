package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
)

type level int

const (
	levelLow level = iota + 1
	levelHigh
)

func TestTable_Lookup(t *testing.T) {
	table := NewTable(Lenient, map[string]level{"low-level": levelLow, "high": levelHigh})

	tests := []struct {
		in   string
		want level
		ok   bool
	}{
		{"low-level", levelLow, true},
		{"LOW_LEVEL", levelLow, true},
		{"  low level ", levelLow, true},
		{"High", levelHigh, true},
		{"medium", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := table.Lookup(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTable_ParseNamesValidSpellings(t *testing.T) {
	table := NewTable(Lenient, map[string]level{"low": levelLow, "high": levelHigh})

	_, err := table.Parse("medium")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	valid, _ := classified.Context().GetString("valid")
	assert.Equal(t, "high, low", valid)
	assert.Equal(t, []string{"high", "low"}, table.Names())
}

func TestNewTable_RejectsAmbiguousNames(t *testing.T) {
	assert.Panics(t, func() {
		NewTable(Lenient, map[string]level{"a-b": levelLow, "a_b": levelHigh})
	})
}
