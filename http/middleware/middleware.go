package middleware

import (
	"net/http"

	"github.com/xy-planning-network/onerror"
	"github.com/xy-planning-network/onerror/http/resp"
)

// An Adapter allows chaining middlewares together.
type Adapter func(http.Handler) http.Handler

// Chain glues the set of adapters to the handler.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	//NOTE: Loop in reverse to preserve middleware order
	for i := len(adapters) - 1; i >= 0; i-- {
		handler = adapters[i](handler)
	}

	return handler
}

// NoopAdapter passes the http.Handler through untouched.
// Middlewares missing what they need to do their job return it.
func NoopAdapter(h http.Handler) http.Handler { return h }

// fail answers the request with err.
//
// Requests served by a *resp.Context go through its App's ErrorHandler,
// so clients get the same negotiated body any handler error gets,
// along with the headers earlier middlewares set.
// Other requests get a plain text response.
func fail(w http.ResponseWriter, r *http.Request, err *onerror.Error) {
	if c, ok := resp.FromRequest(r); ok {
		c.SetRequest(r)
		c.KeepHeaders()
		c.OnError(err)
		return
	}

	http.Error(w, err.Message, err.StatusCode())
}
