package ranger

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/xy-planning-network/onerror"
	"github.com/xy-planning-network/onerror/http/middleware"
	"github.com/xy-planning-network/onerror/http/resp"
	"github.com/xy-planning-network/onerror/http/router"
	"github.com/xy-planning-network/onerror/logger"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the optFollowup it returns.
// Some RangerOptions require data in others and thus an optFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithLogger is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithRouter is an example of the second.
// An unexported field on the passed in *Ranger
// is updated only when the closure it returns is called.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// WithAccessLog writes a Combined Log Format line per request to w.
func WithAccessLog(w io.Writer) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.accessLog = w
		rng.debug("using access log %T", w)
		return nil, nil
	}
}

// WithContext exposes the provided context.Context to the app.
// Canceling it stops Guide.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if ctx == nil {
			return nil, fmt.Errorf("%w: nil context.Context", onerror.ErrNotValid)
		}

		rng.ctx = ctx
		rng.debug("using context %T", ctx)
		return nil, nil
	}
}

// WithEnv sets the Environment the app runs in.
//
// If env is not valid, the ENVIRONMENT env var is read instead,
// falling back to Development.
func WithEnv(env onerror.Environment) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if env.Valid() != nil {
			env = onerror.EnvVarOrEnv(onerror.EnvironmentEnvVar, onerror.Development)
		}

		rng.env = env
		rng.debug("using env %s", env)
		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if l == nil {
			return nil, fmt.Errorf("%w: nil logger.Logger", onerror.ErrNotValid)
		}

		rng.l = l
		rng.debug("using logger %T", l)
		return nil, nil
	}
}

// WithMiddlewares appends middlewares run on every request,
// after the *resp.Context is bound to it and the default middlewares ran,
// and before it is routed.
func WithMiddlewares(mws ...middleware.Adapter) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.mws = append(rng.mws, mws...)
		return nil, nil
	}
}

// WithObserver adds an Observer notified of every emitted error; cf. (*Ranger).OnError.
func WithObserver(obs Observer) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.OnError(obs)
		return nil, nil
	}
}

// WithResponder configures the *resp.Responder New installs.
// The Ranger's Environment is passed to it first, so these opts can override it.
func WithResponder(opts ...resp.OptFn) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.respOpts = append(rng.respOpts, opts...)
		return nil, nil
	}
}

// WithRouter constructs a followup option that, when called,
// exposes a *router.Router to the app.
//
// The *router.Router is built once every other option has run,
// reporting the errors of its handlers to the Ranger.
func WithRouter() RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			rng.Router = router.New(rng, nil)
			rng.debug("using router %T", rng.Router)
			return nil
		}, nil
	}
}

// WithServer exposes the *http.Server to the app.
// Its Handler is replaced by the Ranger.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if s == nil {
			return nil, fmt.Errorf("%w: nil *http.Server", onerror.ErrNotValid)
		}

		rng.srv = s
		rng.debug("using server %T", s)
		return nil, nil
	}
}

func (rng *Ranger) debug(format string, v any) {
	if rng.l != nil {
		rng.l.Debug(fmt.Sprintf(format, v), nil)
	}
}
