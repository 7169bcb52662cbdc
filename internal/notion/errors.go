package notion

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Error codes assigned at classification time. Nothing outside this package
// reinterprets HTTP statuses; callers branch on Code and Retryable only.
const (
	CodeAuthentication = "authentication_error"
	CodeForbidden      = "forbidden"
	CodeNotFound       = "not_found"
	CodeRateLimited    = "rate_limited"
	CodeAPIError       = "api_error"
)

const defaultRetryAfterSeconds = 60

// Error is the classified form of every upstream failure. Retryable is true
// only for rate limiting; RetryAfterSeconds tells the caller when to try
// again.
type Error struct {
	Message           string `json:"message"`
	Status            int    `json:"status,omitempty"`
	Code              string `json:"code,omitempty"`
	Retryable         bool   `json:"retryable"`
	RetryAfterSeconds int    `json:"retry_after_seconds,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// AsError unwraps a classified error from err, if one is present.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func newAuthenticationError(message string) *Error {
	return &Error{
		Message: message,
		Status:  http.StatusUnauthorized,
		Code:    CodeAuthentication,
	}
}

// classifyResponse maps a non-2xx upstream response to the error taxonomy.
// Checked in priority order: 429, 401, 403, 404, then everything else.
func classifyResponse(method, path string, status int, retryAfter string, body []byte) *Error {
	switch status {
	case http.StatusTooManyRequests:
		return &Error{
			Message:           "rate limited by Notion API",
			Status:            status,
			Code:              CodeRateLimited,
			Retryable:         true,
			RetryAfterSeconds: parseRetryAfter(retryAfter),
		}
	case http.StatusUnauthorized:
		return &Error{
			Message: "invalid or expired Notion API token",
			Status:  status,
			Code:    CodeAuthentication,
		}
	case http.StatusForbidden:
		return &Error{
			Message: "integration lacks access to this resource; share it with the integration in Notion",
			Status:  status,
			Code:    CodeForbidden,
		}
	case http.StatusNotFound:
		return &Error{
			Message: fmt.Sprintf("resource not found: %s %s", method, path),
			Status:  status,
			Code:    CodeNotFound,
		}
	default:
		return &Error{
			Message: extractErrorMessage(status, body),
			Status:  status,
			Code:    CodeAPIError,
		}
	}
}

func parseRetryAfter(header string) int {
	header = strings.TrimSpace(header)
	if header == "" {
		return defaultRetryAfterSeconds
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return defaultRetryAfterSeconds
	}
	return seconds
}

// extractErrorMessage pulls a human message out of an upstream error body,
// trying the JSON "message" then "error" fields before falling back to a
// templated string.
func extractErrorMessage(status int, body []byte) string {
	if len(body) > 0 {
		var errResp struct {
			Message string `json:"message"`
			Err     string `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil {
			if msg := strings.TrimSpace(errResp.Message); msg != "" {
				return msg
			}
			if msg := strings.TrimSpace(errResp.Err); msg != "" {
				return msg
			}
		}
	}
	return fmt.Sprintf("API error: %d", status)
}
