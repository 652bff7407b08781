package errors

import (
	"encoding/json"
	"html"
	"log/slog"
	"net/http"
	"strings"
)

// HTTPErrorAdapter renders classified errors for the preview server. Browsers
// get a short HTML page; other clients get JSON.
type HTTPErrorAdapter struct {
	logger *slog.Logger
}

// NewHTTPErrorAdapter creates a new HTTP error adapter. A nil logger uses slog.Default.
func NewHTTPErrorAdapter(logger *slog.Logger) *HTTPErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPErrorAdapter{logger: logger}
}

// HTTPErrorResponse is the JSON error payload.
type HTTPErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// StatusCodeFor maps an error's category to an HTTP status. Unknown errors map to 500.
func (a *HTTPErrorAdapter) StatusCodeFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if c, ok := AsClassified(err); ok {
		return c.Category().HTTPStatus()
	}
	return http.StatusInternalServerError
}

// WriteErrorResponse answers r with err and logs server-side failures.
func (a *HTTPErrorAdapter) WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := a.StatusCodeFor(err)
	payload := a.FormatErrorResponse(err)

	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte("<!doctype html><title>" + http.StatusText(status) + "</title><p>" +
			html.EscapeString(payload.Error) + "</p>\n"))
	} else {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	}

	if status >= http.StatusInternalServerError {
		a.logger.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
		return
	}
	a.logger.DebugContext(r.Context(), "Request rejected", "path", r.URL.Path, "status", status, "error", err)
}

// FormatErrorResponse converts an error into the JSON payload. Unclassified
// errors keep only their message.
func (a *HTTPErrorAdapter) FormatErrorResponse(err error) HTTPErrorResponse {
	c, ok := AsClassified(err)
	switch {
	case err == nil:
		return HTTPErrorResponse{}
	case !ok:
		return HTTPErrorResponse{Error: err.Error()}
	}
	resp := HTTPErrorResponse{Error: c.Message(), Code: string(c.Category())}
	if len(c.Context()) > 0 {
		resp.Details = c.Context()
	}
	return resp
}
