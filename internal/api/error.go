package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error is a non-2xx response from the service. Detail carries the
// structured "detail" field when the body provided one.
type Error struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// newError builds an Error from a response body. Detail is filled only
// from a FastAPI-style {"detail": ...} field; non-string details are
// serialized as-is so validation errors stay readable. Anything else
// (plain text, proxy HTML) leaves Detail empty so callers fall back to
// their own messages instead of echoing the body.
func newError(statusCode int, body []byte) *Error {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return &Error{StatusCode: statusCode}
	}
	raw := string(payload.Detail)
	if len(payload.Detail) == 0 || raw == "null" {
		return &Error{StatusCode: statusCode}
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		detail = raw
	}
	return &Error{StatusCode: statusCode, Detail: detail}
}

// ErrorDetail returns the structured detail of err when it is an *Error
// carrying one, and ok reports whether a detail was found.
func ErrorDetail(err error) (detail string, ok bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}
