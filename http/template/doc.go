// Package template parses HTML templates from an app's files,
// falling back to the templates embedded in this package, like the default error page.
package template
