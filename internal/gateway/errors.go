package gateway

import (
	"encoding/json"
	"strings"
)

// APIError is the single error shape every operation fails with on a non-2xx
// response. Message is always human-readable: either the backend's detail
// string or the operation's fallback, so callers never branch on which.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil || e.Message == "" {
		return "api error"
	}
	return e.Message
}

// parseAPIError normalizes a failed response body. The backend reports errors
// as {"detail": "..."}; anything else falls back to the per-operation message.
func parseAPIError(status int, raw []byte, fallback string) error {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && strings.TrimSpace(body.Detail) != "" {
		return &APIError{StatusCode: status, Message: strings.TrimSpace(body.Detail)}
	}
	return &APIError{StatusCode: status, Message: fallback}
}
