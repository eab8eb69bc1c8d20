package apiclient

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// GenericErrorMessage is shown when the server gives no usable message.
const GenericErrorMessage = "Ocorreu um erro. Tente novamente."

var (
	// ErrTimeout is returned when the client-wide timeout expires.
	ErrTimeout = errors.New("request timed out")

	// ErrInvalidResponse is returned when a response body does not match the
	// expected shape.
	ErrInvalidResponse = errors.New("invalid response from server")

	// ErrResponseTooLarge is returned when a body exceeds the read limit.
	ErrResponseTooLarge = errors.New("response too large")
)

// APIError is a non-2xx response. Body holds the server payload untouched.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	RequestID  string
	Body       []byte
}

func (e *APIError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Message extracts the server-provided message from the payload, if any.
func (e *APIError) Message() string {
	if len(e.Body) == 0 || !gjson.ValidBytes(e.Body) {
		return ""
	}
	for _, path := range []string{"message", "error", "errors.0.message", "error.message"} {
		if r := gjson.GetBytes(e.Body, path); r.Type == gjson.String && r.Str != "" {
			return r.Str
		}
	}
	return ""
}

// UserMessage picks the text for a user-visible alert: the server's message
// when there is one, fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.Message(); msg != "" {
			return msg
		}
	}
	if fallback == "" {
		return GenericErrorMessage
	}
	return fallback
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
