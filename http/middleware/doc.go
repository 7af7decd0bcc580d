/*
The middleware package defines what a middleware is and a set of basic middlewares.

The available middlewares are:
  - AccessLog
  - CORS
  - ForceHTTPS
  - InjectIPAddress
  - LogRequest
  - RateLimit
  - ReportPanic
  - RequestID

Middlewares that refuse a request, like RateLimit and ForceHTTPS,
answer with an *onerror.Error handed to the request's *resp.Context,
so the client gets the same negotiated html, text or json body any handler error gets.

ranger assembles a default chain; to build one by hand, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.RateLimit(vs),
		middleware.ForceHTTPS(env),
		middleware.RequestID(onerror.RequestIDKey),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
	}
*/
package middleware
