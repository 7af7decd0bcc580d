package resp

import (
	"github.com/xy-planning-network/onerror"
	"github.com/xy-planning-network/onerror/http/template"
)

// An OptFn mutates the provided *Responder in some way.
// An OptFn is used when installing a Responder.
type OptFn func(*Responder)

// WithAll sets a Renderer used for every format,
// bypassing the html, text and json Renderers.
func WithAll(fn Renderer) OptFn {
	return func(r *Responder) {
		r.all = fn
	}
}

// WithEnv sets the Environment deciding whether error messages are exposed by default.
//
// Invalid Environments are ignored, leaving the one read from the ENVIRONMENT env var.
func WithEnv(env onerror.Environment) OptFn {
	return func(r *Responder) {
		if env.Valid() != nil {
			return
		}

		r.env = env
	}
}

// WithHTML sets the Renderer for clients preferring text/html.
func WithHTML(fn Renderer) OptFn {
	return func(r *Responder) {
		r.html = fn
	}
}

// WithJSON sets the Renderer for clients preferring application/json.
//
// The body it sets is encoded as JSON after it returns,
// unless it already is a []byte or json.RawMessage.
func WithJSON(fn Renderer) OptFn {
	return func(r *Responder) {
		r.json = fn
	}
}

// WithParser sets the template.Parser parsing the HTML template.
//
// If no Parser is provided through this option, one reading the current working directory is used.
//
// Install adds the "env", "nonce" and "statusText" functions to p, replacing any by those names.
// The parsed template keeps its own copy, so installing again with the same p,
// in another Environment, leaves earlier Responders rendering their own.
func WithParser(p template.Parser) OptFn {
	return func(r *Responder) {
		r.parser = p
	}
}

// WithTemplate sets the template identified by the filepath
// rendered by the default html Renderer.
func WithTemplate(fp string) OptFn {
	return func(r *Responder) {
		r.template = fp
	}
}

// WithText sets the Renderer for clients preferring text/plain,
// or clients no format suits.
func WithText(fn Renderer) OptFn {
	return func(r *Responder) {
		r.text = fn
	}
}
