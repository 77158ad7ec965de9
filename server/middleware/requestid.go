package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/kbukum/ledger/logger"
)

// RequestIDHeader carries the request id on both request and response.
const RequestIDHeader = "X-Request-Id"

const maxRequestIDLength = 128

// RequestID ensures every request has an X-Request-Id header, generating a
// UUID when the client did not send one, and stores it in the request context
// for the logger.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" || len(id) > maxRequestIDLength {
				id = uuid.NewString()
				r.Header.Set(RequestIDHeader, id)
			}
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(logger.ContextWithRequestID(r.Context(), id)))
		})
	}
}
