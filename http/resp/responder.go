package resp

import (
	"encoding/json"
	"fmt"
	html "html/template"
	"net/http"

	"github.com/xy-planning-network/onerror"
	"github.com/xy-planning-network/onerror/http/template"
)

// A Renderer sets the status and body answering a failed request in one format.
type Renderer func(c *Context, e *onerror.Error)

// ErrFirst adapts a renderer taking the error first into a Renderer.
func ErrFirst(fn func(e *onerror.Error, c *Context)) Renderer {
	return func(c *Context, e *onerror.Error) { fn(e, c) }
}

// negotiable lists the formats Handle renders, in order of preference.
var negotiable = []string{HTML, Text, JSON}

// Responder answers failed requests with a body in the format the client prefers.
//
// Each format has a Renderer, defaulting to the Responder's own;
// a catch-all Renderer set by WithAll replaces all three.
//
// A Responder is configured once by Install and is read-only afterwards,
// so one Responder serves any number of concurrent requests.
type Responder struct {
	all  Renderer
	html Renderer
	json Renderer
	text Renderer

	env    onerror.Environment
	dev    bool
	parser template.Parser

	// Path of the HTML template rendered by the default html Renderer
	template string
	tmpl     *html.Template
}

// Install constructs a *Responder using the OptFns passed in
// and installs its Handle as app's ErrorHandler.
//
// Options not supplied are filled with defaults:
// the Responder's own renderers, template.DefaultErrTmpl,
// and the Environment named by the ENVIRONMENT env var (DEVELOPMENT if unset).
//
// The default HTML template is parsed here, once.
// If it cannot be, ErrBadConfig returns and nothing is installed.
//
// Installing again replaces the ErrorHandler;
// the Responders share nothing.
func Install(app App, opts ...OptFn) (*Responder, error) {
	if app == nil {
		return nil, fmt.Errorf("%w: %s", onerror.ErrBadConfig, ErrNoApp)
	}

	r := new(Responder)
	for _, opt := range opts {
		opt(r)
	}

	if r.env == "" {
		r.env = onerror.EnvVarOrEnv(onerror.EnvironmentEnvVar, onerror.Development)
	}
	r.dev = r.env.IsDevelopment()

	if r.text == nil {
		r.text = r.renderText
	}

	if r.json == nil {
		r.json = r.renderJSON
	}

	if r.html == nil {
		if err := r.compile(); err != nil {
			return nil, err
		}

		r.html = r.renderHTML
	}

	app.SetErrorHandler(r.Handle)
	return r, nil
}

// Handle answers the request c holds with err.
//
// A nil err is ignored, so Handle can be passed where a callback taking an error is expected.
//
// err is always emitted to c.App.
// If the response already went out or the client is gone,
// the *onerror.Error is marked HeaderSent and nothing is written.
// Otherwise, Handle negotiates html, text or json (falling back to text),
// renders with the matching Renderer, and ends the response.
//
// Errors caused by files that do not exist are answered with http.StatusNotFound.
func (r *Responder) Handle(c *Context, err error) {
	e := onerror.From(err)
	if e == nil {
		return
	}

	if c.HeaderSent() || !c.Writable() {
		e.HeaderSent = true
		r.emit(c, e)
		return
	}

	r.emit(c, e)

	if e.Code == onerror.CodeNotExist {
		e.Status = http.StatusNotFound
	}

	format := c.Accepts(negotiable...)
	if format == "" {
		format = Text
	}

	switch {
	case r.all != nil:
		r.all(c, e)
	case format == HTML:
		r.html(c, e)
	case format == JSON:
		r.json(c, e)
	default:
		r.text(c, e)
	}

	c.SetType(format)
	if format == JSON {
		r.serialize(c)
	}

	if err := c.End(); err != nil {
		r.emit(c, fmt.Errorf("cannot end error response: %w", err))
	}
}

// Development reports whether error internals are shown to every client.
func (r *Responder) Development() bool { return r.dev }

// compile parses the HTML template once for the default html Renderer.
// The functions added to r.parser are copied into the parsed template.
func (r *Responder) compile() error {
	if r.template == "" {
		r.template = template.DefaultErrTmpl
	}

	if r.parser == nil {
		r.parser = template.NewParser()
	}

	r.parser.AddFn(template.Env(r.env))
	r.parser.AddFn(template.Nonce())
	r.parser.AddFn(template.StatusText())

	tmpl, err := r.parser.Parse(r.template)
	if err != nil {
		return fmt.Errorf("%w: cannot parse %s: %s", onerror.ErrBadConfig, r.template, err)
	}

	r.tmpl = tmpl
	return nil
}

// serialize replaces the body with its JSON encoding, once.
// Bodies that are already JSON, as []byte or json.RawMessage, are kept.
func (r *Responder) serialize(c *Context) {
	switch c.Body().(type) {
	case []byte, json.RawMessage:
		return
	}

	b, err := json.Marshal(c.Body())
	if err != nil {
		r.emit(c, fmt.Errorf("%w: cannot serialize error body: %s", onerror.ErrNotValid, err))
		c.SetStatus(http.StatusInternalServerError)
		b, _ = json.Marshal(jsonBody{Error: http.StatusText(http.StatusInternalServerError)})
	}

	c.SetBody(string(b))
}

func (r *Responder) emit(c *Context, err error) {
	if app := c.App(); app != nil {
		app.Emit(err, c)
	}
}
