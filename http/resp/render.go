package resp

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/onerror"
)

type jsonBody struct {
	Error string `json:"error"`
}

// renderHTML renders the parsed HTML template.
//
// The template receives:
//
//	Env      the Environment's name
//	Request  the *http.Request
//	Response the status and headers of the response
//	Error    the error message
//	Expose   whether the error message is safe to show outside of DEVELOPMENT
//	Stack    the error's stack
//	Status   the response status
//	Code     the error's system code, like ENOENT
//
// Stack is passed in every Environment;
// the template decides whether to show it.
func (r *Responder) renderHTML(c *Context, e *onerror.Error) {
	c.SetStatus(e.StatusCode())

	b := bufPool.Get().(*bytes.Buffer)
	b.Reset()
	defer bufPool.Put(b)

	err := r.tmpl.Execute(b, map[string]any{
		"Env":     r.env.String(),
		"Request": c.Request(),
		"Response": struct {
			Status int
			Header http.Header
		}{c.Status(), c.Header()},
		"Error":  e.Message,
		"Expose": e.Expose,
		"Stack":  e.Stack,
		"Status": c.Status(),
		"Code":   e.Code,
	})
	if err != nil {
		r.emit(c, fmt.Errorf("cannot render %s: %w", r.template, err))
		r.renderText(c, e)
		return
	}

	c.SetBody(b.String())
}

// renderText clears headers set before the failure,
// and answers with the message if exposed, else the status text.
func (r *Responder) renderText(c *Context, e *onerror.Error) {
	c.ResetHeaders()
	c.SetStatus(e.StatusCode())
	c.SetBody(r.message(c, e))
}

// renderJSON answers with {"error": message} if exposed, else {"error": status text}.
func (r *Responder) renderJSON(c *Context, e *onerror.Error) {
	c.SetStatus(e.StatusCode())
	c.SetBody(jsonBody{Error: r.message(c, e)})
}

// message is what a client may learn about e.
func (r *Responder) message(c *Context, e *onerror.Error) string {
	if r.dev || e.Expose {
		return e.Message
	}

	return http.StatusText(c.Status())
}
