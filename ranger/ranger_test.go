package ranger_test

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/onerror"
	"github.com/xy-planning-network/onerror/http/middleware"
	"github.com/xy-planning-network/onerror/http/resp"
	"github.com/xy-planning-network/onerror/http/router"
	tt "github.com/xy-planning-network/onerror/http/template/templatetest"
	"github.com/xy-planning-network/onerror/logger"
	"github.com/xy-planning-network/onerror/ranger"
)

func newRanger(t *testing.T, env onerror.Environment, opts ...ranger.RangerOption) (*ranger.Ranger, *bytes.Buffer) {
	t.Helper()

	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(log.New(b, "", 0)), logger.WithLevel(logger.LogLevelDebug))
	base := []ranger.RangerOption{
		ranger.WithEnv(env),
		ranger.WithLogger(l),
		ranger.WithResponder(resp.WithParser(tt.NewParser())),
	}

	rng, err := ranger.New(append(base, opts...)...)
	require.Nil(t, err)
	return rng, b
}

func serve(h http.Handler, target, accept string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, target, nil)
	if accept != "" {
		r.Header.Set("Accept", accept)
	}

	h.ServeHTTP(w, r)
	return w
}

func TestNew(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		// Arrange
		t.Setenv(onerror.EnvironmentEnvVar, "staging")

		// Act
		rng, err := ranger.New(ranger.WithResponder(resp.WithParser(tt.NewParser())))

		// Assert
		require.Nil(t, err)
		require.Equal(t, onerror.Staging, rng.Env())
		require.NotNil(t, rng.Logger())
		require.NotNil(t, rng.Responder())
		require.False(t, rng.Responder().Development())
		require.NotNil(t, rng.ErrorHandler())
	})

	t.Run("With-Env", func(t *testing.T) {
		rng, _ := newRanger(t, onerror.Development)
		require.Equal(t, onerror.Development, rng.Env())
		require.True(t, rng.Responder().Development())
	})

	t.Run("Bad-Options", func(t *testing.T) {
		for _, opt := range []ranger.RangerOption{
			ranger.WithLogger(nil),
			ranger.WithServer(nil),
			ranger.WithContext(nil),
		} {
			rng, err := ranger.New(opt)
			require.ErrorIs(t, err, onerror.ErrBadConfig)
			require.Nil(t, rng)
		}
	})

	t.Run("Bad-Template", func(t *testing.T) {
		rng, err := ranger.New(ranger.WithResponder(
			resp.WithParser(tt.NewParser()),
			resp.WithTemplate("nope.tmpl"),
		))
		require.ErrorIs(t, err, onerror.ErrBadConfig)
		require.Nil(t, rng)
	})
}

func TestRangerServeHTTP(t *testing.T) {
	tcs := []struct {
		name     string
		env      onerror.Environment
		handler  resp.HandlerFunc
		accept   string
		status   int
		expected string
	}{
		{
			"Ok",
			onerror.Production,
			func(c *resp.Context) error {
				c.SetBody("ok")
				return nil
			},
			"",
			http.StatusOK,
			"ok",
		},
		{
			"Error-JSON",
			onerror.Production,
			func(c *resp.Context) error { return errors.New("foo is not defined") },
			"application/json",
			http.StatusInternalServerError,
			`{"error":"Internal Server Error"}`,
		},
		{
			"Error-Text-Development",
			onerror.Development,
			func(c *resp.Context) error { return errors.New("foo is not defined") },
			"text/plain",
			http.StatusInternalServerError,
			"foo is not defined",
		},
		{
			"Panic",
			onerror.Development,
			func(c *resp.Context) error { panic(1) },
			"text/plain",
			http.StatusInternalServerError,
			"non-error thrown: 1",
		},
		{
			"Exposed",
			onerror.Production,
			func(c *resp.Context) error { return onerror.New(http.StatusBadRequest, "name is required") },
			"application/json",
			http.StatusBadRequest,
			`{"error":"name is required"}`,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			rng, _ := newRanger(t, tc.env)
			rng.Handle(router.Route{Path: "/", Method: http.MethodGet, Handler: tc.handler})

			// Act
			w := serve(rng, "/", tc.accept)

			// Assert
			require.Equal(t, tc.status, w.Code)
			require.Equal(t, tc.expected, w.Body.String())

			_, err := uuid.Parse(w.Header().Get(middleware.RequestIDHeader))
			require.Nil(t, err)
		})
	}

	t.Run("Not-Found", func(t *testing.T) {
		rng, _ := newRanger(t, onerror.Production)
		w := serve(rng, "/nope", "application/json")
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, `{"error":"Not Found"}`, w.Body.String())
	})
}

func TestRangerServeHTTPKeepsHeaders(t *testing.T) {
	const origin = "https://app.example.com"

	tcs := []struct {
		name     string
		accept   string
		expected string
	}{
		{"Text", "text/plain", "Internal Server Error"},
		{"Unacceptable", "image/png", "Internal Server Error"},
		{"JSON", "application/json", `{"error":"Internal Server Error"}`},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			t.Setenv("CORS_ORIGIN", origin)
			rng, _ := newRanger(t, onerror.Production)
			rng.Handle(router.Route{Path: "/", Method: http.MethodGet, Handler: func(c *resp.Context) error {
				c.Header().Set("X-Partial", "true")
				return errors.New("foo is not defined")
			}})

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Accept", tc.accept)
			r.Header.Set("Origin", origin)

			// Act
			rng.ServeHTTP(w, r)

			// Assert
			require.Equal(t, http.StatusInternalServerError, w.Code)
			require.Equal(t, tc.expected, w.Body.String())
			require.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))

			_, err := uuid.Parse(w.Header().Get(middleware.RequestIDHeader))
			require.Nil(t, err)
		})
	}

	t.Run("Rate-Limited", func(t *testing.T) {
		// Arrange
		t.Setenv("CORS_ORIGIN", origin)
		rng, _ := newRanger(t, onerror.Production, ranger.WithMiddlewares(
			middleware.RateLimit(middleware.NewVisitorsWithLimit(0, 0)),
		))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept", "text/plain")
		r.Header.Set("Origin", origin)

		// Act
		rng.ServeHTTP(w, r)

		// Assert
		require.Equal(t, http.StatusTooManyRequests, w.Code)
		require.Equal(t, "slow down, too many requests", w.Body.String())
		require.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
		require.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})
}

func TestRangerEmit(t *testing.T) {
	t.Run("Logs-Without-Observers", func(t *testing.T) {
		// Arrange
		rng, b := newRanger(t, onerror.Production)
		rng.Handle(router.Route{Path: "/", Method: http.MethodGet, Handler: func(c *resp.Context) error {
			return errors.New("foo is not defined")
		}})

		// Act
		w := serve(rng, "/", "")

		// Assert
		require.Contains(t, b.String(), "[ERROR]")
		require.Contains(t, b.String(), "foo is not defined")
		require.Contains(t, b.String(), `"requestId":"`+w.Header().Get(middleware.RequestIDHeader)+`"`)
	})

	t.Run("Logs-Exposed-As-Debug", func(t *testing.T) {
		// Arrange
		rng, b := newRanger(t, onerror.Production)
		rng.Handle(router.Route{Path: "/", Method: http.MethodGet, Handler: func(c *resp.Context) error {
			return onerror.New(http.StatusBadRequest, "name is required")
		}})

		// Act
		serve(rng, "/", "")

		// Assert
		require.Contains(t, b.String(), "[DEBUG]")
		require.NotContains(t, b.String(), "[ERROR]")
	})

	t.Run("Logs-Missing-File-As-Debug", func(t *testing.T) {
		// Arrange
		rng, b := newRanger(t, onerror.Production)
		rng.Files("/static", fstest.MapFS{})

		// Act
		w := serve(rng, "/static/missing.txt", "application/json")

		// Assert
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, `{"error":"Not Found"}`, w.Body.String())
		require.Contains(t, b.String(), "[DEBUG]")
		require.Contains(t, b.String(), `"status":404`)
		require.NotContains(t, b.String(), "[ERROR]")
	})

	t.Run("Observers", func(t *testing.T) {
		// Arrange
		var mu sync.Mutex
		var first, second []error
		rng, b := newRanger(t, onerror.Production, ranger.WithObserver(func(err error, c *resp.Context) {
			mu.Lock()
			defer mu.Unlock()
			first = append(first, err)
		}))
		rng.OnError(func(err error, c *resp.Context) {
			mu.Lock()
			defer mu.Unlock()
			second = append(second, err)
			require.NotNil(t, c)
			require.Equal(t, "/", c.Request().URL.Path)
		})
		rng.OnError(nil)

		cause := errors.New("foo is not defined")
		rng.Handle(router.Route{Path: "/", Method: http.MethodGet, Handler: func(c *resp.Context) error {
			return cause
		}})

		// Act
		serve(rng, "/", "")

		// Assert
		require.Len(t, first, 1)
		require.Len(t, second, 1)
		require.ErrorIs(t, first[0], cause)
		require.NotContains(t, b.String(), "[ERROR]")
	})

	t.Run("Header-Sent", func(t *testing.T) {
		// Arrange
		var emitted []error
		rng, _ := newRanger(t, onerror.Production, ranger.WithObserver(func(err error, c *resp.Context) {
			emitted = append(emitted, err)
		}))
		rng.Handle(router.Route{Path: "/", Method: http.MethodGet, Handler: func(c *resp.Context) error {
			c.ResponseWriter().Write([]byte("partial"))
			return errors.New("stream broke")
		}})

		// Act
		w := serve(rng, "/", "application/json")

		// Assert
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "partial", w.Body.String())
		require.Len(t, emitted, 1)
		require.True(t, onerror.From(emitted[0]).HeaderSent)
	})
}

func TestRangerSetErrorHandler(t *testing.T) {
	// Arrange
	rng, _ := newRanger(t, onerror.Production)
	rng.SetErrorHandler(func(c *resp.Context, err error) {
		c.SetStatus(http.StatusTeapot)
		c.SetBody("custom")
		c.End()
	})
	rng.Handle(router.Route{Path: "/", Method: http.MethodGet, Handler: func(c *resp.Context) error {
		return errors.New("foo is not defined")
	}})

	// Act
	w := serve(rng, "/", "")

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
	require.Equal(t, "custom", w.Body.String())
}

func TestRangerMiddlewares(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	var seen bool
	rng, _ := newRanger(t, onerror.Production,
		ranger.WithAccessLog(b),
		ranger.WithMiddlewares(func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, seen = resp.FromRequest(r)
				h.ServeHTTP(w, r)
			})
		}),
	)

	// Act
	serve(rng, "/nope", "")

	// Assert
	require.True(t, seen)
	require.Contains(t, b.String(), `"GET /nope HTTP/1.1" 404`)
}

func TestRangerShutdown(t *testing.T) {
	rng, b := newRanger(t, onerror.Testing)
	require.Nil(t, rng.Shutdown())
	require.Contains(t, b.String(), "web server shutdown successfully")
}
