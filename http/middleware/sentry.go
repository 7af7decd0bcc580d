package middleware

import (
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/onerror"
)

// ReportPanic reports panics escaping the handler to Sentry
// and binds a Sentry hub to each request, so errors logged through
// a logger.SentryLogger carry the request they happened in.
//
// Panics are re-raised after being reported.
// Handlers served by ranger never panic this far: their panics become errors answered in kind.
//
// In DEVELOPMENT, NoopAdapter returns and this middleware does nothing.
func ReportPanic(env onerror.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: true,
	})

	return sh.Handle
}
