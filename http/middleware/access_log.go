package middleware

import (
	"io"
	"net/http"

	"github.com/gorilla/handlers"
)

// AccessLog writes one Apache Combined Log Format line per request to out,
// recording the status and size of the response actually sent,
// error responses included.
//
// If out is nil, NoopAdapter returns and this middleware does nothing.
func AccessLog(out io.Writer) Adapter {
	if out == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler { return handlers.CombinedLoggingHandler(out, h) }
}
