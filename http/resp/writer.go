package resp

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
)

// writer tracks whether headers reached the client
// and whether the connection was taken over.
type writer struct {
	http.ResponseWriter
	wroteHeader bool
	hijacked    bool
}

func (w *writer) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}

	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *writer) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}

	return w.ResponseWriter.Write(b)
}

// Flush sends buffered data, and so headers, to the client.
func (w *writer) Flush() {
	f, ok := w.ResponseWriter.(http.Flusher)
	if !ok {
		return
	}

	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}

	f.Flush()
}

func (w *writer) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %T cannot be hijacked", ErrNotWritable, w.ResponseWriter)
	}

	conn, rw, err := hj.Hijack()
	if err == nil {
		w.hijacked = true
	}

	return conn, rw, err
}

// Unwrap supports http.ResponseController.
func (w *writer) Unwrap() http.ResponseWriter { return w.ResponseWriter }
