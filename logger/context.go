package logger

import (
	"encoding"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xy-planning-network/onerror"
)

var (
	_ encoding.TextMarshaler = LogContext{}
)

// A LogContext provides additional information and configuration
// for a [Logger] method that cannot be tersely captured in the message itself.
type LogContext struct {
	// Data is any information pertinent at the time of the logging event.
	Data map[string]any

	// Error is the error that may or may not have instigated a logging event.
	Error error

	// Request is the *http.Request that may or may not have been open during the logging event.
	Request *http.Request

	// RequestID identifies the request across log lines.
	RequestID string
}

// MarshalText converts LogContext into a JSON representation,
// eliminating zero-value fields or fields not requiring logging.
//
// When Error is or wraps an [*onerror.Error], its status, code
// and whether it arrived after headers were sent are included.
//
// Values in LogContext.Data that cannot be represented in JSON will cause an error to be thrown.
//
// MarshalText implements [encoding.TextMarshaler].
func (lc LogContext) MarshalText() ([]byte, error) {
	m := make(map[string]any)
	if lc.Data != nil {
		m["data"] = lc.Data
	}

	if lc.Error != nil {
		m["error"] = lc.Error.Error()
	}

	if e := lc.httpError(); e != nil {
		m["status"] = e.StatusCode()
		if e.Code != "" {
			m["code"] = e.Code
		}

		if e.HeaderSent {
			m["headerSent"] = true
		}
	}

	if lc.Request != nil {
		r := make(map[string]any)
		r["method"] = lc.Request.Method
		r["url"] = lc.Request.URL.String()
		r["header"] = lc.Request.Header
		if lc.Request.Form != nil {
			r["form"] = lc.Request.Form
		}

		m["request"] = r
	}

	if lc.RequestID != "" {
		m["requestId"] = lc.RequestID
	}

	return json.Marshal(m)
}

// String stringifies LogContext as a JSON representation of it.
func (lc LogContext) String() string {
	b, err := lc.MarshalText()
	if err != nil {
		return ""
	}

	return string(b)
}

func (lc LogContext) httpError() *onerror.Error {
	var e *onerror.Error
	if errors.As(lc.Error, &e) && e != nil {
		return e
	}

	return nil
}
