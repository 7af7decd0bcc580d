package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/onerror"
)

// RequestIDHeader carries the request ID to the client and from upstream proxies.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under key
// and echoes it in the X-Request-Id response header.
//
// An X-Request-Id set by a proxy in front of the app is kept if it is a valid uuid.
//
// If key is empty, then NoopAdapter returns and this middleware does nothing.
func RequestID(key onerror.Key) Adapter {
	if key == "" {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)
			h.ServeHTTP(w, r.Clone(context.WithValue(r.Context(), key, id)))
		})
	}
}
