package github

import (
	"fmt"
	"net/http"
)

// ErrorKind is the small fixed taxonomy of provider failures.
type ErrorKind string

const (
	ErrKindAuth       ErrorKind = "auth"
	ErrKindPermission ErrorKind = "permission"
	ErrKindNotFound   ErrorKind = "not_found"
	ErrKindValidation ErrorKind = "validation"
	ErrKindUnknown    ErrorKind = "unknown"
)

// APIError is a typed provider error with a human-readable message.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
}

// classifyStatus maps a non-success status code onto the error taxonomy.
func classifyStatus(resp *http.Response) *APIError {
	detail := readBodyMessage(resp)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &APIError{
			Kind:       ErrKindAuth,
			StatusCode: resp.StatusCode,
			Message:    "authentication failed, check the stored token",
		}
	case http.StatusForbidden:
		return &APIError{
			Kind:       ErrKindPermission,
			StatusCode: resp.StatusCode,
			Message:    "permission denied, the token may be missing the workflow scope",
		}
	case http.StatusNotFound:
		return &APIError{
			Kind:       ErrKindNotFound,
			StatusCode: resp.StatusCode,
			Message:    "repository or workflow not found",
		}
	case http.StatusUnprocessableEntity:
		msg := "the workflow rejected the dispatch inputs"
		if detail != "" {
			msg = msg + ": " + detail
		}
		return &APIError{
			Kind:       ErrKindValidation,
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	default:
		msg := detail
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{
			Kind:       ErrKindUnknown,
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}
}
