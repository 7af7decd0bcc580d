package resp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/xy-planning-network/onerror"
)

type ctxKey struct{}

// An ErrorHandler answers a request that failed with err.
type ErrorHandler func(c *Context, err error)

// A HandlerFunc handles a request through its *Context.
// A returned error is handed to the App's ErrorHandler.
type HandlerFunc func(c *Context) error

// An App owns the Contexts created for it.
// Errors raised while serving a Context are observed through Emit
// and answered by the installed ErrorHandler.
type App interface {
	Emit(err error, c *Context)
	ErrorHandler() ErrorHandler
	SetErrorHandler(h ErrorHandler)
}

var bufPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// A Context is the live request/response pair for a single request.
//
// Handlers set Status, Body and Type; End writes them to the client.
// A Context is not safe for concurrent use.
type Context struct {
	app App
	w   *writer
	r   *http.Request

	status         int
	explicitStatus bool
	body           any
	typ            string
	ended          bool

	// Headers restored by ResetHeaders
	kept http.Header
}

// NewContext constructs a *Context for the request.
//
// The status starts at http.StatusNotFound until a handler says otherwise.
// The *Context is reachable from the request it holds through FromRequest.
func NewContext(w http.ResponseWriter, r *http.Request, app App) *Context {
	c := &Context{
		app:    app,
		w:      &writer{ResponseWriter: w},
		status: http.StatusNotFound,
	}
	c.r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, c))

	return c
}

// FromRequest retrieves the *Context a request was created for.
func FromRequest(r *http.Request) (*Context, bool) {
	c, ok := r.Context().Value(ctxKey{}).(*Context)
	return c, ok && c != nil
}

func (c *Context) App() App { return c.app }

// Request returns the *http.Request being served.
func (c *Context) Request() *http.Request { return c.r }

// SetRequest replaces the *http.Request, e.g., after middleware added values to its context.
func (c *Context) SetRequest(r *http.Request) {
	if r != nil {
		c.r = r
	}
}

// ResponseWriter returns the http.ResponseWriter writing to the client.
// Writes through it are tracked by HeaderSent.
func (c *Context) ResponseWriter() http.ResponseWriter { return c.w }

func (c *Context) Header() http.Header { return c.w.Header() }

// KeepHeaders marks the response headers set so far, and their values,
// as surviving ResetHeaders.
//
// Hosts call it right before a handler runs,
// so headers set by middlewares, like CORS or request IDs,
// stay on error responses.
func (c *Context) KeepHeaders() {
	c.kept = c.w.Header().Clone()
}

// ResetHeaders removes every response header set since KeepHeaders was called,
// restoring the kept ones to their values at that time.
func (c *Context) ResetHeaders() {
	h := c.w.Header()
	for k := range h {
		delete(h, k)
	}

	for k, v := range c.kept {
		h[k] = append([]string(nil), v...)
	}
}

func (c *Context) Status() int { return c.status }

func (c *Context) SetStatus(code int) {
	c.status = code
	c.explicitStatus = true
}

func (c *Context) Body() any { return c.body }

// SetBody sets the body End writes.
// Unless a status was set, setting a body makes the status http.StatusOK.
func (c *Context) SetBody(body any) {
	c.body = body
	if !c.explicitStatus {
		c.status = http.StatusOK
	}
}

// Type returns the short name or MIME type last passed to SetType.
func (c *Context) Type() string { return c.typ }

// SetType sets the Content-Type header from a short name (html, text, json) or a MIME type.
func (c *Context) SetType(typ string) {
	c.typ = typ
	c.w.Header().Set("Content-Type", contentType(typ))
}

// HeaderSent reports whether the status line and headers already went out to the client.
func (c *Context) HeaderSent() bool { return c.w.wroteHeader }

// Writable reports whether a response can still be written:
// the client has not gone away, the response has not ended,
// and the connection has not been hijacked.
func (c *Context) Writable() bool {
	if c.ended || c.w.hijacked {
		return false
	}

	return c.r.Context().Err() == nil
}

// OnError hands err to the App's ErrorHandler.
//
// Without an ErrorHandler, err is emitted and, if still possible,
// answered with a bare http.StatusInternalServerError.
func (c *Context) OnError(err error) {
	if err == nil {
		return
	}

	if c.app != nil {
		if h := c.app.ErrorHandler(); h != nil {
			h(c, err)
			return
		}

		c.app.Emit(err, c)
	}

	if c.HeaderSent() || !c.Writable() {
		return
	}

	c.ResetHeaders()
	c.SetStatus(http.StatusInternalServerError)
	c.SetType(Text)
	c.SetBody(http.StatusText(http.StatusInternalServerError))
	c.End()
}

// End writes the status and body to the client and ends the response.
//
// Bodies may be a string, []byte, json.RawMessage, io.Reader or nil.
// Any other value is encoded as JSON.
// A nil body is replaced by the status text, except for statuses forbidding a body.
// A body failing to encode leaves the response writable, so it can still be answered with an error.
func (c *Context) End() error {
	if !c.Writable() {
		return fmt.Errorf("%w: ended or client gone", ErrNotWritable)
	}

	if rc, ok := c.body.(io.ReadCloser); ok {
		defer rc.Close()
	}

	if r, ok := c.body.(io.Reader); ok {
		c.ended = true
		c.w.WriteHeader(c.status)
		if _, err := io.Copy(c.w, r); err != nil {
			return fmt.Errorf("cannot stream body: %w", err)
		}

		return nil
	}

	b := bufPool.Get().(*bytes.Buffer)
	b.Reset()
	defer bufPool.Put(b)

	switch body := c.body.(type) {
	case nil:
		if bodiless(c.status) {
			break
		}

		if c.typ == "" {
			c.SetType(Text)
		}
		b.WriteString(http.StatusText(c.status))
	case string:
		b.WriteString(body)
	case []byte:
		b.Write(body)
	case json.RawMessage:
		b.Write(body)
	default:
		if c.typ == "" {
			c.SetType(JSON)
		}

		if err := json.NewEncoder(b).Encode(body); err != nil {
			return fmt.Errorf("%w: cannot encode body: %s", onerror.ErrNotValid, err)
		}
	}
	c.ended = true

	if !bodiless(c.status) {
		c.w.Header().Set("Content-Length", strconv.Itoa(b.Len()))
	}

	c.w.WriteHeader(c.status)
	if _, err := b.WriteTo(c.w); err != nil {
		return fmt.Errorf("cannot write body: %w", err)
	}

	return nil
}

func bodiless(status int) bool {
	return status == http.StatusNoContent || status == http.StatusNotModified || (status >= 100 && status < 200)
}
