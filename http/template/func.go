package template

import (
	html "html/template"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/onerror"
)

// AddFn includes the named function in the Parse function map.
func (p *Parse) AddFn(name string, fn any) {
	if p.fns == nil {
		p.fns = make(html.FuncMap)
	}
	p.fns[name] = fn
}

// Env encloses some string representing an environment.
// It returns "env" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning the enclosed value when called.
func Env(e onerror.Environment) (string, func() string) {
	return "env", func() string { return e.String() }
}

// Nonce returns "nonce" as the name of the function for convenient passing to a template.FuncMap
// and returns a function generating a uuid.
func Nonce() (string, func() string) {
	return "nonce", func() string { return uuid.NewString() }
}

// StatusText returns "statusText" as the name of the function for convenient passing to a template.FuncMap
// and returns http.StatusText.
func StatusText() (string, func(int) string) {
	return "statusText", http.StatusText
}
