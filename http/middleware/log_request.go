package middleware

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/onerror"
	"github.com/xy-planning-network/onerror/logger"
)

// LogMaskVal replaces the values of query parameters too sensitive to log.
const LogMaskVal = "xxxxxxx"

var maskedParams = []string{"password", "token"}

// LogRequest logs the request's method, requested URL, and originating IP address
// using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following keys:
//   - password
//   - token
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uri := r.URL.Path
			q := r.URL.Query()
			for _, key := range maskedParams {
				if q.Get(key) != "" {
					q.Set(key, LogMaskVal)
				}
			}

			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			strs := []string{r.Method, uri}
			if ip, ok := r.Context().Value(onerror.IpAddrKey).(string); ok {
				strs = append([]string{ip}, strs...)
			}

			lc := &logger.LogContext{}
			if id, ok := r.Context().Value(onerror.RequestIDKey).(string); ok {
				lc.RequestID = id
			}

			ls.Info(strings.Join(strs, " "), lc)
			h.ServeHTTP(w, r)
		})
	}
}
