package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type APIError struct {
	Status  int
	Path    string
	Message string
}

func (err *APIError) Error() string {
	if err.Message != "" {
		return fmt.Sprintf("backend %s: status %d: %s", err.Path, err.Status, err.Message)
	}
	return fmt.Sprintf("backend %s: status %d", err.Path, err.Status)
}

func newAPIError(status int, path string, body []byte) *APIError {
	return &APIError{Status: status, Path: path, Message: messageFromBody(body)}
}

func messageFromBody(body []byte) string {
	payload := struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if message := strings.TrimSpace(payload.Message); message != "" {
		return message
	}
	return strings.TrimSpace(payload.Error)
}

func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// Message returns the backend's own message for err, or fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
