/*
Package main provides a toy app failing in every way an error can reach a client.

Try it with different Accept headers:

	curl -i localhost:3000/boom
	curl -i -H 'Accept: application/json' localhost:3000/missing
	curl -i -H 'Accept: text/html' localhost:3000/panic

Set ENVIRONMENT=PRODUCTION to see messages hidden.
*/
package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strings"
	"sync/atomic"

	"github.com/xy-planning-network/onerror"
	"github.com/xy-planning-network/onerror/http/req"
	"github.com/xy-planning-network/onerror/http/resp"
	"github.com/xy-planning-network/onerror/http/router"
	"github.com/xy-planning-network/onerror/logger"
	"github.com/xy-planning-network/onerror/ranger"
)

//go:embed static/*
var files embed.FS

func main() {
	rng, err := newApp()
	if err != nil {
		log.Fatal(err)
	}

	if err := rng.Guide(); err != nil {
		log.Fatal(err)
	}
}

// newApp wires the example routes into a *ranger.Ranger,
// counting and logging every error the app emits.
func newApp(opts ...ranger.RangerOption) (*ranger.Ranger, error) {
	var count int64
	rng, err := ranger.New(opts...)
	if err != nil {
		return nil, err
	}

	rng.OnError(func(err error, c *resp.Context) {
		n := atomic.AddInt64(&count, 1)
		lc := &logger.LogContext{Error: err, Data: map[string]any{"count": n}}
		if c != nil {
			lc.Request = c.Request()
		}

		rng.Logger().Warn(fmt.Sprintf("error #%d: %s", n, err), lc)
	})

	rng.HandleRoutes([]router.Route{
		{Path: "/", Method: http.MethodGet, Handler: index},
		{Path: "/bad", Method: http.MethodGet, Handler: badRequest},
		{Path: "/boom", Method: http.MethodGet, Handler: boom},
		{Path: "/missing", Method: http.MethodGet, Handler: missing},
		{Path: "/panic", Method: http.MethodGet, Handler: panics},
		{Path: "/signup", Method: http.MethodPost, Handler: signup},
		{Path: "/stream", Method: http.MethodGet, Handler: stream},
	})
	static, err := fs.Sub(files, "static")
	if err != nil {
		return nil, err
	}
	rng.Files("static", static)

	return rng, nil
}

func index(c *resp.Context) error {
	c.SetType(resp.Text)
	c.SetBody(strings.Join([]string{"/bad", "/boom", "/missing", "/panic", "POST /signup", "/stream", "/static/hello.txt"}, "\n"))
	return nil
}

// badRequest fails with an error the client is allowed to see.
func badRequest(c *resp.Context) error {
	if c.Request().URL.Query().Get("name") == "" {
		return onerror.New(http.StatusBadRequest, "name is required")
	}

	c.SetBody("hello, " + c.Request().URL.Query().Get("name"))
	return nil
}

// boom fails like a bug would: the client only learns something broke.
func boom(c *resp.Context) error {
	return errors.New("foo is not defined")
}

// missing fails opening a file, answered with 404.
// Had it opened, End would stream and close it.
func missing(c *resp.Context) error {
	f, err := os.Open("does-not-exist.txt")
	if err != nil {
		return err
	}

	c.SetBody(f)
	return nil
}

var parser = req.NewParser()

// signup fails with a 400 for malformed JSON and a 422 for missing fields.
func signup(c *resp.Context) error {
	var form struct {
		Email string `json:"email" validate:"required,email"`
		Name  string `json:"name" validate:"required"`
	}

	if err := parser.Parse(c.Request(), &form); err != nil {
		return err
	}

	c.SetStatus(http.StatusCreated)
	c.SetBody(map[string]string{"welcome": form.Name})
	return nil
}

func panics(c *resp.Context) error {
	panic(1)
}

// stream fails after the response started, so only the app hears about it.
func stream(c *resp.Context) error {
	w := c.ResponseWriter()
	fmt.Fprintln(w, "first chunk")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	return errors.New("upstream closed mid-stream")
}
