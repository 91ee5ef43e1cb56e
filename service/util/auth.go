package util

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// VerifyAPIKey checks a bearer token against the configured API key using a
// constant-time comparison.
func VerifyAPIKey(r *http.Request, apiKey string) bool {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) == 1
}
