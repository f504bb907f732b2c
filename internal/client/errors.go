package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the EDGE API. Detail carries the
// server's message verbatim when one was provided.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api error (%d)", e.StatusCode)
}

// checkStatus converts an error response body into an *APIError.
func checkStatus(status int, body []byte) error {
	if status < 400 {
		return nil
	}

	apiErr := &APIError{StatusCode: status}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		apiErr.Detail = payload.Detail
	} else if s := strings.TrimSpace(string(body)); s != "" && len(s) < 500 && !strings.HasPrefix(s, "<") {
		apiErr.Detail = s
	}
	return apiErr
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Detail returns the server-provided message from err, or fallback when
// none is present. Used wherever the UI shows the server detail verbatim
// with a generic message as backstop.
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
