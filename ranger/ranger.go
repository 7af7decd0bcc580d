package ranger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	// TODO(dlk): configurable env files
	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/onerror"
	"github.com/xy-planning-network/onerror/http/middleware"
	"github.com/xy-planning-network/onerror/http/resp"
	"github.com/xy-planning-network/onerror/http/router"
	"github.com/xy-planning-network/onerror/logger"
)

// An Observer is notified of every error raised while serving a request,
// whether or not a response could still be written for it.
type Observer func(err error, c *resp.Context)

// A Ranger manages and exposes all components of an app to one another.
//
// A Ranger is the resp.App every request's *resp.Context reports to:
// errors are emitted to its Observers and answered by its ErrorHandler,
// a *resp.Responder installed by New.
type Ranger struct {
	*router.Router

	ctx context.Context

	env     onerror.Environment
	handler http.Handler
	l       logger.Logger
	mws     []middleware.Adapter
	rp      *resp.Responder
	srv     *http.Server

	accessLog io.Writer
	respOpts  []resp.OptFn

	mu        sync.RWMutex
	onErr     resp.ErrorHandler
	observers []Observer
}

// New constructs a Ranger from the provided options.
// Default options are applied first followed by the options passed into New.
// Options supplied to New overwrite default configurations.
//
// Once configured, New installs a *resp.Responder as the Ranger's ErrorHandler.
func New(opts ...RangerOption) (*Ranger, error) {
	r := new(Ranger)
	followups := make([]OptFollowup, 0)

	// NOTE(dlk): calling an option configures the *Ranger under construction.
	// Some options require data from other options.
	// These options, therefore, must delay configuring the *Ranger
	// until either (1) user supplied RangerOptions or (2) default RangerOptions
	// configure the *Ranger first.
	// They return an optFollowup to be called after the initial set of options are run.
	for _, opt := range append(defaultOpts(), opts...) {
		fn, err := opt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", onerror.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", onerror.ErrBadConfig, err)
		}
	}

	if r.l == nil {
		r.l = defaultLogger(r.env)
	}

	rp, err := resp.Install(r, append([]resp.OptFn{resp.WithEnv(r.env)}, r.respOpts...)...)
	if err != nil {
		return nil, err
	}
	r.rp = rp

	r.handler = middleware.Chain(
		r.Router,
		append([]middleware.Adapter{
			middleware.AccessLog(r.accessLog),
			middleware.ReportPanic(r.env),
			r.contextualize,
		}, append(defaultMiddlewares(r.env, r.l), r.mws...)...)...,
	)
	r.srv.Handler = r

	return r, nil
}

func (r *Ranger) Env() onerror.Environment   { return r.env }
func (r *Ranger) Logger() logger.Logger      { return r.l }
func (r *Ranger) Responder() *resp.Responder { return r.rp }

// Emit notifies every Observer of err.
// Without Observers, err is logged.
func (r *Ranger) Emit(err error, c *resp.Context) {
	r.mu.RLock()
	observers := r.observers
	r.mu.RUnlock()

	if len(observers) == 0 {
		r.logError(err, c)
		return
	}

	for _, obs := range observers {
		obs(err, c)
	}
}

// OnError adds an Observer notified of every emitted error.
// Adding an Observer turns off logging emitted errors.
func (r *Ranger) OnError(obs Observer) {
	if obs == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, obs)
}

func (r *Ranger) ErrorHandler() resp.ErrorHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.onErr
}

func (r *Ranger) SetErrorHandler(h resp.ErrorHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onErr = h
}

// ServeHTTP responds to an HTTP request,
// serving it through a *resp.Context bound to the Ranger.
func (r *Ranger) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - canceling the context.Context passed in with WithContext
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ctx, cancel := context.WithCancel(r.ctx)
	defer cancel()

	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			cancel()
		case <-ctx.Done():
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); err != http.ErrServerClosed {
			err = fmt.Errorf("could not listen: %w", err)
			r.l.Error(err.Error(), nil)
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return r.Shutdown()
	}
}

// Shutdown shutdowns the web server.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}

// contextualize binds a new *resp.Context to each request
// before it reaches middlewares and handlers.
func (r *Ranger) contextualize(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		c := resp.NewContext(w, req, r)
		h.ServeHTTP(c.ResponseWriter(), c.Request())
	})
}
