package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/yurykabanov/logrot/pkg/appcontext"
)

const requestIdHeader = "X-Request-Id"

// WithRequestId propagates the caller's request id or assigns a new one, so
// that log lines of one metrics request can be correlated.
func WithRequestId(next http.Handler, nextRequestId func() string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get(requestIdHeader)
		if requestId == "" {
			requestId = nextRequestId()
		}

		w.Header().Set(requestIdHeader, requestId)
		next.ServeHTTP(w, r.WithContext(appcontext.WithRequestId(r.Context(), requestId)))
	})
}

func RandomRequestId() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}
