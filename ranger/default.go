package ranger

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/xy-planning-network/onerror"
	"github.com/xy-planning-network/onerror/http/middleware"
	"github.com/xy-planning-network/onerror/logger"
)

const (
	// Log defaults
	accessLogEnvVar = "ACCESS_LOG"
	logLevelEnvVar  = "LOG_LEVEL"

	// Middleware defaults
	corsOriginEnvVar = "CORS_ORIGIN"
	forceHTTPSEnvVar = "FORCE_HTTPS"
	rateLimitEnvVar  = "RATE_LIMIT"

	// Web server defaults
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second
)

// defaultOpts are the RangerOptions New applies before those passed in.
//
// The Logger and middlewares depend on the final Environment,
// so New builds those defaults after every option ran.
func defaultOpts() []RangerOption {
	return []RangerOption{
		WithEnv(""),
		WithContext(context.Background()),
		func(rng *Ranger) (OptFollowup, error) {
			rng.srv = defaultServer()
			return nil, nil
		},
		func(rng *Ranger) (OptFollowup, error) {
			if onerror.EnvVarOrBool(accessLogEnvVar, false) {
				rng.accessLog = os.Stdout
			}

			return nil, nil
		},
		WithRouter(),
	}
}

// defaultLogger constructs a logger.Logger printing to os.Stdout
// at the level named by LOG_LEVEL, INFO if unset.
//
// When SENTRY_DSN is set, it reports errors to Sentry, too.
func defaultLogger(env onerror.Environment) logger.Logger {
	return logger.New(
		logger.WithEnv(env.String()),
		logger.WithLevel(logger.NewLogLevel(os.Getenv(logLevelEnvVar))),
		logger.WithLogger(log.New(os.Stdout, "", log.LstdFlags)),
	)
}

// defaultMiddlewares constructs the middlewares run on every request.
//
// Always:
//   - middleware.RequestID
//   - middleware.InjectIPAddress
//   - middleware.LogRequest
//
// Depending on env vars:
//   - CORS_ORIGIN: middleware.CORS for that origin
//   - FORCE_HTTPS: middleware.ForceHTTPS outside of DEVELOPMENT
//   - RATE_LIMIT: middleware.RateLimit, 5 requests per second per IP address
func defaultMiddlewares(env onerror.Environment, l logger.Logger) []middleware.Adapter {
	mws := []middleware.Adapter{
		middleware.RequestID(onerror.RequestIDKey),
		middleware.InjectIPAddress(),
		middleware.CORS(onerror.EnvVarOrString(corsOriginEnvVar, "")),
	}

	if onerror.EnvVarOrBool(forceHTTPSEnvVar, false) {
		mws = append(mws, middleware.ForceHTTPS(env))
	}

	if onerror.EnvVarOrBool(rateLimitEnvVar, false) {
		mws = append(mws, middleware.RateLimit(middleware.NewVisitors()))
	}

	return append(mws, middleware.LogRequest(l))
}

// defaultServer constructs a default [*http.Server].
func defaultServer() *http.Server {
	port := onerror.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	return &http.Server{
		Addr:         port,
		IdleTimeout:  onerror.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  onerror.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: onerror.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
}
