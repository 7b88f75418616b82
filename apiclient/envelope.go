package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// envelope is the uniform response wrapper every backend endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// APIError is a backend-reported failure: a non-2xx status, or a 2xx whose
// envelope carries success=false. The message is the envelope message verbatim;
// the client never interprets it beyond the 401 refresh protocol.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %s (status %d)", http.StatusText(e.StatusCode), e.StatusCode)
	}
	return fmt.Sprintf("api error: %s (status %d)", e.Message, e.StatusCode)
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	if !asAPIError(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == statusCode
}
