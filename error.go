package onerror

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"runtime"
	"strings"
)

var (
	ErrBadConfig = errors.New("bad config")
	ErrNotValid  = errors.New("invalid")
)

// CodeNotExist is the system error code for a missing file or directory.
// An Error carrying it is answered with http.StatusNotFound.
const CodeNotExist = "ENOENT"

const maxStackDepth = 32

// An Error is a failure on its way to becoming an HTTP response.
//
// Message is what clients may see when the Error is exposed.
// Status of zero means no status has been decided yet.
type Error struct {
	Message string
	Stack   string
	Status  int
	Code    string

	// Expose marks Message as safe to reveal to clients.
	Expose bool

	// HeaderSent is set once the Error is known to have arrived after
	// the response was already on its way to the client.
	HeaderSent bool

	err error
}

// New constructs an *Error for the HTTP status code.
// Client errors (4xx) are exposed, server errors are not.
func New(status int, msg string) *Error {
	return &Error{
		Message: msg,
		Stack:   callers(3),
		Status:  status,
		Expose:  status < http.StatusInternalServerError,
	}
}

// Errorf is New with a formatted message.
// A %w verb keeps the wrapped error reachable through errors.Is and errors.As.
func Errorf(status int, format string, args ...any) *Error {
	err := fmt.Errorf(format, args...)

	e := New(status, err.Error())
	e.Stack = callers(3)
	e.err = errors.Unwrap(err)
	return e
}

// From converts err into an *Error.
//
// An *Error anywhere in err's chain is returned as is.
// Otherwise, a new *Error wraps err:
//   - errors satisfying errors.Is(err, fs.ErrNotExist) get Code CodeNotExist
//   - errors implementing StatusCode() int lend their status
//
// From returns nil for a nil err.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	if e, ok := err.(*Error); ok {
		return e
	}

	var e *Error
	if errors.As(err, &e) && e != nil {
		return e
	}

	e = &Error{Message: err.Error(), Stack: callers(3), err: err}
	if errors.Is(err, fs.ErrNotExist) {
		e.Code = CodeNotExist
	}

	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		e.Status = sc.StatusCode()
	}

	return e
}

// Recovered converts a value recovered from a panic into an *Error.
//
// Values that are not errors become "non-error thrown: <v>".
// stack, usually from runtime/debug.Stack, replaces an empty Stack.
func Recovered(v any, stack []byte) *Error {
	var e *Error
	if err, ok := v.(error); ok {
		e = From(err)
	}

	if e == nil {
		e = &Error{Message: fmt.Sprintf("non-error thrown: %v", v)}
	}

	if e.Stack == "" && len(stack) > 0 {
		e.Stack = string(stack)
	}

	return e
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.err }

// StatusCode returns Status when set.
// Otherwise, Errors with Code CodeNotExist are http.StatusNotFound
// and every other Error is http.StatusInternalServerError.
func (e *Error) StatusCode() int {
	switch {
	case e.Status != 0:
		return e.Status
	case e.Code == CodeNotExist:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// callers formats the stack of the caller skip frames up.
func callers(skip int) string {
	var pcs [maxStackDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		if !more {
			break
		}
	}

	return b.String()
}
