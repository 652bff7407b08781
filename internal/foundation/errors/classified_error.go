package errors

import (
	"errors"
	"fmt"
)

// ClassifiedError is a structured error with a category and context.
type ClassifiedError struct {
	category ErrorCategory
	message  string
	cause    error
	context  ErrorContext
}

// Error implements the standard error interface.
func (e *ClassifiedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.category, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.category, e.message)
}

func (e *ClassifiedError) Unwrap() error { return e.cause }

func (e *ClassifiedError) Category() ErrorCategory { return e.category }
func (e *ClassifiedError) Message() string         { return e.message }
func (e *ClassifiedError) Cause() error            { return e.cause }
func (e *ClassifiedError) Context() ErrorContext   { return e.context }

// Is matches another ClassifiedError by category and message.
func (e *ClassifiedError) Is(target error) bool {
	other, ok := target.(*ClassifiedError)
	return ok && e.category == other.category && e.message == other.message
}

// AsClassified finds the first ClassifiedError in err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified, true
	}
	return nil, false
}

// All returns every ClassifiedError in err's tree, depth first. It follows
// causes as well as errors combined with errors.Join.
func All(err error) []*ClassifiedError {
	var found []*ClassifiedError
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if c, ok := e.(*ClassifiedError); ok {
			found = append(found, c)
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return found
}

// HasCategory reports whether any ClassifiedError in err's tree has category.
func HasCategory(err error, category ErrorCategory) bool {
	for _, c := range All(err) {
		if c.category == category {
			return true
		}
	}
	return false
}

// Dominant picks the error of err's tree with the highest exit code; the
// earliest one wins a tie. A run that both failed an assertion and hit a
// filesystem error reports the filesystem error.
func Dominant(err error) (*ClassifiedError, bool) {
	var best *ClassifiedError
	for _, c := range All(err) {
		if best == nil || c.category.ExitCode() > best.category.ExitCode() {
			best = c
		}
	}
	return best, best != nil
}

// GetCategory extracts the category from an error, or returns CategoryInternal.
func GetCategory(err error) ErrorCategory {
	if classified, ok := AsClassified(err); ok {
		return classified.category
	}
	return CategoryInternal
}
