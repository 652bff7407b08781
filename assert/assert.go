// Package assert provides the pure predicates used by documentation examples.
//
// None of these functions have side effects. They are meant to be composed into a
// single boolean expression that is then handed to Document.Assert, which is the
// only place a failure is recorded.
package assert

import (
	"errors"
	"fmt"
	"iter"
)

// ErrOutOfRange is matched by every RangeError.
var ErrOutOfRange = errors.New("sequence shorter than requested count")

// RangeError reports that fewer than Want elements were available.
type RangeError struct {
	Want int
	Got  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("need %d elements, sequence has %d", e.Want, e.Got)
}

func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }

// AreAllTrue reports whether pred holds for every element of s.
func AreAllTrue[T any](s []T, pred func(T) bool) bool {
	for _, v := range s {
		if !pred(v) {
			return false
		}
	}
	return true
}

// AreNTrue reports whether pred holds for each of the first n elements of seq.
// A sequence with fewer than n elements yields a *RangeError.
func AreNTrue[T any](seq iter.Seq[T], n int, pred func(T) bool) (bool, error) {
	if n < 0 {
		return false, &RangeError{Want: n}
	}
	if n == 0 {
		return true, nil
	}
	seen := 0
	result := true
	for v := range seq {
		if result && !pred(v) {
			result = false
		}
		seen++
		if seen == n {
			break
		}
	}
	if seen < n {
		return false, &RangeError{Want: n, Got: seen}
	}
	return result, nil
}

// AreAllEquivalentTo reports whether every element of s equals v.
func AreAllEquivalentTo[T comparable](s []T, v T) bool {
	return AreAllEquivalentToFunc(s, v, equal[T])
}

// AreAllEquivalentToFunc is AreAllEquivalentTo with a custom equivalence.
func AreAllEquivalentToFunc[T, U any](s []T, v U, eq func(T, U) bool) bool {
	return AreAllTrue(s, func(e T) bool { return eq(e, v) })
}

// AreNEquivalentTo reports whether the first n elements of seq equal v.
func AreNEquivalentTo[T comparable](seq iter.Seq[T], n int, v T) (bool, error) {
	return AreNEquivalentToFunc(seq, n, v, equal[T])
}

// AreNEquivalentToFunc is AreNEquivalentTo with a custom equivalence.
func AreNEquivalentToFunc[T, U any](seq iter.Seq[T], n int, v U, eq func(T, U) bool) (bool, error) {
	return AreNTrue(seq, n, func(e T) bool { return eq(e, v) })
}

// AreEquivalentRanges reports whether a and b have the same length and equal
// elements in the same order.
func AreEquivalentRanges[T comparable](a, b []T) bool {
	return AreEquivalentRangesFunc(a, b, equal[T])
}

// AreEquivalentRangesFunc is AreEquivalentRanges with a custom equivalence.
func AreEquivalentRangesFunc[T, U any](a []T, b []U, eq func(T, U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !eq(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equal[T comparable](a, b T) bool { return a == b }
