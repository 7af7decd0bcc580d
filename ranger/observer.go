package ranger

import (
	"net/http"

	"github.com/xy-planning-network/onerror"
	"github.com/xy-planning-network/onerror/http/resp"
	"github.com/xy-planning-network/onerror/logger"
)

// logError logs an emitted error with the request it was raised in.
//
// Errors clients were told about, those exposed or answered with 404,
// are logged at debug level. Everything else is an error.
func (r *Ranger) logError(err error, c *resp.Context) {
	if err == nil {
		return
	}

	lc := &logger.LogContext{Error: err}
	if c != nil {
		lc.Request = c.Request()
		if id, ok := lc.Request.Context().Value(onerror.RequestIDKey).(string); ok {
			lc.RequestID = id
		}
	}

	if e := onerror.From(err); e.StatusCode() == http.StatusNotFound || e.Expose {
		r.l.Debug(err.Error(), lc)
		return
	}

	r.l.Error(err.Error(), lc)
}
