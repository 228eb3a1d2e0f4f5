package controllers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

// writeError writes a {"message": ...} body with the given status code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResp{Message: message})
}

// writeJSON writes data as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// requestToken extracts a Jupyter-style API token from the request.
//
// It accepts "Authorization: token <t>" (or "bearer <t>") and falls back to
// the "token" query parameter.
func requestToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, value, ok := strings.Cut(h, " ")
		if ok && (strings.EqualFold(scheme, "token") || strings.EqualFold(scheme, "bearer")) {
			return strings.TrimSpace(value)
		}
	}
	return r.URL.Query().Get("token")
}

// tokenMatches compares tokens in constant time.
func tokenMatches(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
