package middleware

import (
	"net/http"
	"net/url"

	"github.com/xy-planning-network/onerror"
)

// ForceHTTPS redirects HTTP requests to HTTPS if the environment is not "development".
//
// The "X-Forwarded-Proto" is used to check whether HTTP was requested due to an application
// running behind a proxy.
//
// Only GET and HEAD requests are redirected.
// Other methods are answered with an exposed http.StatusForbidden error
// since clients would replay them without their body.
func ForceHTTPS(env onerror.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				handler.ServeHTTP(w, r)
				return
			}

			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				fail(w, r, onerror.New(http.StatusForbidden, "HTTPS required"))
				return
			}

			u := new(url.URL)
			*u = *r.URL
			u.Scheme = "https"
			u.Host = r.Host

			http.Redirect(w, r, u.String(), http.StatusPermanentRedirect)
		})
	}
}
