// Package normalization maps loosely spelled configuration values onto typed names.
package normalization

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
)

// Fold reduces a spelling to the key it is compared by.
type Fold func(string) string

var separators = strings.NewReplacer("-", "", "_", "", " ", "")

// Lenient ignores case, surrounding space and the separators '-', '_' and ' '.
func Lenient(s string) string {
	return separators.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// Table resolves spellings to values of T.
type Table[T comparable] struct {
	fold      Fold
	byKey     map[string]T
	canonical []string
}

// NewTable builds a table from canonical names. Two names that fold to the
// same key are a programming error.
func NewTable[T comparable](fold Fold, values map[string]T) *Table[T] {
	t := &Table[T]{fold: fold, byKey: make(map[string]T, len(values))}
	for name, v := range values {
		key := fold(name)
		if _, dup := t.byKey[key]; dup {
			panic("normalization: ambiguous name " + name)
		}
		t.byKey[key] = v
		t.canonical = append(t.canonical, name)
	}
	slices.Sort(t.canonical)
	return t
}

// Lookup reports the value raw folds to.
func (t *Table[T]) Lookup(raw string) (T, bool) {
	v, ok := t.byKey[t.fold(raw)]
	return v, ok
}

// Parse is Lookup with a validation error naming the accepted spellings.
func (t *Table[T]) Parse(raw string) (T, error) {
	if v, ok := t.Lookup(raw); ok {
		return v, nil
	}
	var zero T
	return zero, errors.ValidationError("unrecognized value").
		WithContext("value", raw).
		WithContext("valid", strings.Join(t.canonical, ", ")).
		Build()
}

// Names returns the canonical names in sorted order.
func (t *Table[T]) Names() []string {
	return slices.Clone(t.canonical)
}
