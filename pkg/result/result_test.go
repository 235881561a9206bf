package result

import (
	"encoding/json"
	"testing"
)

func TestNormalizeFallbackChain(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail field wins", 400, `{"detail":"name already taken"}`, "name already taken"},
		{"error field", 400, `{"error":"bad ward id"}`, "bad ward id"},
		{"detail preferred over error", 400, `{"detail":"d","error":"e"}`, "d"},
		{"401 fixed message", 401, "", "Your session has expired. Please log in again."},
		{"403 fixed message", 403, "", "You do not have permission to perform this action."},
		{"404 fixed message", 404, "", "The requested resource was not found."},
		{"500 fixed message", 500, "", "Something went wrong on the server. Please try again later."},
		{"malformed body falls back to mapping", 404, `{"detail":`, "The requested resource was not found."},
		{"unmapped status uses status text", 409, "", "Conflict"},
		{"body without known fields", 409, `{"reason":"busy"}`, "Conflict"},
		{"unknown status code", 599, "", "Request failed. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Normalize(tt.status, []byte(tt.body))
			if res.OK {
				t.Fatal("Normalize produced a success record")
			}
			if res.Status != tt.status {
				t.Fatalf("Status = %d, want %d", res.Status, tt.status)
			}
			if res.Message != tt.want {
				t.Fatalf("Message = %q, want %q", res.Message, tt.want)
			}
		})
	}
}

func TestSuccessDecode(t *testing.T) {
	res := Success(200, json.RawMessage(`{"id":7,"name":"Ward A"}`))
	if !res.OK {
		t.Fatal("Success record not OK")
	}

	var payload struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	if err := res.Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if payload.ID != 7 || payload.Name != "Ward A" {
		t.Fatalf("decoded payload = %+v", payload)
	}
}
