// Package httputil centralizes JSON response encoding and domain error
// translation so handlers stay thin and error envelopes stay consistent.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "regwise/pkg/domain-errors"
)

// WriteJSON encodes v with the given status. Encoding failures are ignored;
// by that point the status line is already on the wire.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into a JSON error envelope. Internal
// and upstream errors omit the description so store/proxy details never reach
// clients; everything else carries the message as error_description.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := map[string]string{"error": string(code)}
	switch code {
	case dErrors.CodeInternal, dErrors.CodeUpstream:
	default:
		if msg := dErrors.MessageOf(err); msg != "" {
			body["error_description"] = msg
		}
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}

// Decode parses a JSON request body into T. A false return means the error
// response has already been written.
func Decode[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return v, false
	}
	return v, true
}
