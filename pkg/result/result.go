// Package result defines the normalized outcome record every API call
// resolves to. Callers never see raw transport errors; the client converts
// each terminal failure into a Result with a user-facing message.
package result

import (
	"encoding/json"
	"net/http"
)

// Result is a tagged success/failure record.
// On success Data carries the decoded payload; on failure Message carries a
// human-readable explanation and Status the HTTP status code (0 for network
// failures that never produced a response).
type Result struct {
	OK      bool            `json:"ok"`
	Status  int             `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func Success(status int, data json.RawMessage) Result {
	return Result{OK: true, Status: status, Data: data}
}

func Failure(status int, message string) Result {
	return Result{OK: false, Status: status, Message: message}
}

// Decode unmarshals the success payload into v.
func (r Result) Decode(v interface{}) error {
	return json.Unmarshal(r.Data, v)
}

// Fixed user-facing messages for the statuses the admin UI words specially.
var statusMessages = map[int]string{
	http.StatusUnauthorized:        "Your session has expired. Please log in again.",
	http.StatusForbidden:           "You do not have permission to perform this action.",
	http.StatusNotFound:            "The requested resource was not found.",
	http.StatusInternalServerError: "Something went wrong on the server. Please try again later.",
}

const genericMessage = "Request failed. Please try again."

// errorBody is the shape backends use for error payloads. Both fields are
// probed; `detail` wins when present.
type errorBody struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// Normalize builds a failure Result from a terminal HTTP error response.
// The message is resolved through a single fallback chain: body JSON
// detail/error field, then the fixed per-status mapping, then the standard
// status text, then a generic message.
func Normalize(status int, body []byte) Result {
	if len(body) > 0 {
		var eb errorBody
		if err := json.Unmarshal(body, &eb); err == nil {
			if eb.Detail != "" {
				return Failure(status, eb.Detail)
			}
			if eb.Error != "" {
				return Failure(status, eb.Error)
			}
		}
	}
	if msg, ok := statusMessages[status]; ok {
		return Failure(status, msg)
	}
	if text := http.StatusText(status); text != "" {
		return Failure(status, text)
	}
	return Failure(status, genericMessage)
}
