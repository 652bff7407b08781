package errors

import (
	"log/slog"
	"maps"
	"net/http"
	"slices"
)

// ErrorCategory classifies an error for routing and exit-code selection.
type ErrorCategory string

const (
	// CategoryAssertion is recorded when an embedded example fails an assertion.
	CategoryAssertion ErrorCategory = "assertion"
	// CategoryLookup is a reference to a code block that was never sealed.
	CategoryLookup ErrorCategory = "lookup"
	// CategoryGuard is an unbalanced or out-of-order guard scope.
	CategoryGuard ErrorCategory = "guard"
	// CategoryCapture is a misuse of the code-block recorder (duplicate or unopened name).
	CategoryCapture ErrorCategory = "capture"

	CategoryNotFound      ErrorCategory = "not_found"
	CategoryAlreadyExists ErrorCategory = "already_exists"
	CategoryConfig        ErrorCategory = "config"
	CategoryValidation    ErrorCategory = "validation"
	CategoryFileSystem    ErrorCategory = "filesystem"
	CategoryInternal      ErrorCategory = "internal"
)

type traits struct {
	exitCode int
	status   int
	level    slog.Level
}

var categoryTraits = map[ErrorCategory]traits{
	CategoryAssertion:     {exitCode: 3, status: http.StatusUnprocessableEntity, level: slog.LevelWarn},
	CategoryLookup:        {exitCode: 3, status: http.StatusNotFound, level: slog.LevelError},
	CategoryGuard:         {exitCode: 3, status: http.StatusUnprocessableEntity, level: slog.LevelError},
	CategoryCapture:       {exitCode: 3, status: http.StatusUnprocessableEntity, level: slog.LevelError},
	CategoryNotFound:      {exitCode: 4, status: http.StatusNotFound, level: slog.LevelError},
	CategoryAlreadyExists: {exitCode: 2, status: http.StatusConflict, level: slog.LevelError},
	CategoryConfig:        {exitCode: 7, status: http.StatusBadRequest, level: slog.LevelError},
	CategoryValidation:    {exitCode: 7, status: http.StatusBadRequest, level: slog.LevelError},
	CategoryFileSystem:    {exitCode: 11, status: http.StatusInternalServerError, level: slog.LevelError},
	CategoryInternal:      {exitCode: 10, status: http.StatusInternalServerError, level: slog.LevelError},
}

func (c ErrorCategory) traits() traits {
	if t, ok := categoryTraits[c]; ok {
		return t
	}
	return traits{exitCode: 1, status: http.StatusInternalServerError, level: slog.LevelError}
}

// ExitCode is the process exit status the CLI uses for the category.
func (c ErrorCategory) ExitCode() int { return c.traits().exitCode }

// HTTPStatus is the response status the preview server uses for the category.
func (c ErrorCategory) HTTPStatus() int { return c.traits().status }

// ErrorContext provides structured context for errors.
type ErrorContext map[string]any

// Set adds or updates a context value.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// GetString retrieves a string context value.
func (c ErrorContext) GetString(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}

// Keys returns the context keys in sorted order.
func (c ErrorContext) Keys() []string {
	return slices.Sorted(maps.Keys(c))
}
