package router

import (
	"io/fs"
	"mime"
	"net/http"
	"path"
	"runtime/debug"
	"strings"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/onerror"
	"github.com/xy-planning-network/onerror/http/middleware"
	"github.com/xy-planning-network/onerror/http/resp"
)

// A Route maps a path and HTTP method to a [resp.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     resp.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests to handlers serving them through a [*resp.Context].
type Router struct {
	app           resp.App
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	r             *mux.Router
}

// New constructs a [*Router] whose handlers report errors to app.
//
// Requests matching no Route, or matching one only by path,
// fail with an exposed 404 or 405 error.
func New(app resp.App, logReq middleware.Adapter) *Router {
	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	rt := &Router{app: app, logReq: logReq, r: mux.NewRouter()}
	rt.r.NotFoundHandler = middleware.Chain(rt.serve(fail(http.StatusNotFound)), logReq)
	rt.r.MethodNotAllowedHandler = middleware.Chain(rt.serve(fail(http.StatusMethodNotAllowed)), logReq)

	return rt
}

// CatchAll sets up a handler for all routes to funnel to for e.g. maintenance mode.
func (r *Router) CatchAll(handler resp.HandlerFunc) {
	r.r.PathPrefix("/").Handler(middleware.Chain(r.serve(handler), r.everyReqStack...))
}

// Files serves the files in fsys under the path prefix.
//
// A file that does not exist fails the request with an error
// answered with http.StatusNotFound.
func (r *Router) Files(prefix string, fsys fs.FS) {
	prefix = "/" + strings.Trim(prefix, "/") + "/"
	r.r.PathPrefix(prefix).Handler(middleware.Chain(
		r.serve(serveFile(prefix, fsys)),
		cacheControlMiddleware(),
		r.logReq,
	))
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [resp.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler resp.HandlerFunc) {
	r.r.NotFoundHandler = middleware.Chain(r.serve(handler), r.logReq)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append(append([]middleware.Adapter{}, r.everyReqStack...), middlewares...)
		mws = append(mws, route.Middlewares...)
		handler := middleware.Chain(r.serve(route.Handler), mws...)
		r.r.Handle(route.Path, handler).Methods(route.Method)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

func (r *Router) SubrouterHost(host string) *Router {
	return &Router{
		app:           r.app,
		r:             r.r.Host(host).Subrouter(),
		logReq:        r.logReq,
		everyReqStack: r.everyReqStack,
	}
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/users
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		app:           r.app,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		logReq:        r.logReq,
		everyReqStack: r.everyReqStack,
	}
}

// serve adapts a resp.HandlerFunc into an http.Handler.
//
// The handler runs with the *resp.Context already bound to the request,
// or a new one if the Router serves requests on its own.
// A returned error, or a recovered panic, is handed to the Context's OnError.
// Otherwise, the response is ended with whatever the handler set,
// unless the handler wrote to the client itself.
func (r *Router) serve(h resp.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		c, ok := resp.FromRequest(req)
		if !ok {
			c = resp.NewContext(w, req, r.app)
		} else {
			c.SetRequest(req)
		}

		defer func() {
			v := recover()
			if v == nil {
				return
			}

			if v == http.ErrAbortHandler {
				panic(v)
			}

			c.OnError(onerror.Recovered(v, debug.Stack()))
		}()

		c.KeepHeaders()
		if err := h(c); err != nil {
			c.OnError(err)
			return
		}

		if c.HeaderSent() || !c.Writable() {
			return
		}

		if err := c.End(); err != nil {
			c.OnError(err)
		}
	})
}

func fail(status int) resp.HandlerFunc {
	return func(c *resp.Context) error {
		return onerror.New(status, http.StatusText(status))
	}
}

func serveFile(prefix string, fsys fs.FS) resp.HandlerFunc {
	return func(c *resp.Context) error {
		name := path.Clean(strings.TrimPrefix(c.Request().URL.Path, prefix))
		if !fs.ValidPath(name) {
			return onerror.Errorf(http.StatusBadRequest, "invalid path: %w", fs.ErrInvalid)
		}

		f, err := fsys.Open(name)
		if err != nil {
			return err
		}

		info, err := f.Stat()
		if err != nil {
			f.Close()
			return err
		}

		if info.IsDir() {
			f.Close()
			return &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}

		if typ := mime.TypeByExtension(path.Ext(name)); typ != "" {
			c.SetType(typ)
		} else {
			c.SetType("application/octet-stream")
		}

		c.SetStatus(http.StatusOK)
		c.SetBody(f)
		return nil
	}
}

// cacheControlMiddleware helps by adding a "Cache-Control" header to the response.
func cacheControlMiddleware() middleware.Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "max-age=2592000") // 30 days
			handler.ServeHTTP(w, r)
		})
	}
}
