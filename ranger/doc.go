/*
Package ranger initializes and manages an app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New].

A [Ranger] is the resp.App behind every request it serves.
Each request gets a *resp.Context, routed by the embedded *router.Router
to a resp.HandlerFunc.
Handlers that fail, by returning an error or panicking, are answered by the *resp.Responder
New installs, and the error is emitted to the [Observer]s added with [*Ranger.OnError].
Without Observers, emitted errors are logged.

[*Ranger.Guide] begins an app's web server.
By default, [*Ranger.Guide] listens on [DefaultPort] (:3000),
assuming either a reverse proxy proxies requests
or only a client application makes direct requests to the web server.

Upon calling [*Ranger.Guide], all routes configured up to that point are now active.
Stop that web server with [*Ranger.Shutdown],
cancel the context.Context passed in with [WithContext],
or send a signal [*Ranger.Guide] listens for.

# Configuration

A developer configures an app through environment variables
and by passing [RangerOption]s to [New].

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - ACCESS_LOG: whether to print a Combined Log Format line per request to stdout; default: false
  - CORS_ORIGIN: the origin allowed to make cross-origin requests; default: none
  - ENVIRONMENT: the environment the application is running in; cf. [onerror.Environment]
  - FORCE_HTTPS: whether to redirect HTTP requests to HTTPS outside of DEVELOPMENT; default: false
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - PORT: the port the application should listen on; default: :3000
  - RATE_LIMIT: whether to limit each IP address to 5 requests per second; default: false
  - SENTRY_DSN: the Sentry project errors are reported to; default: none
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idiling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
*/
package ranger
