package resp_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/xy-planning-network/onerror/http/resp"
)

// testApp records emitted errors and holds the installed ErrorHandler.
type testApp struct {
	emitted []error
	handler resp.ErrorHandler
}

func (a *testApp) Emit(err error, _ *resp.Context)     { a.emitted = append(a.emitted, err) }
func (a *testApp) ErrorHandler() resp.ErrorHandler     { return a.handler }
func (a *testApp) SetErrorHandler(h resp.ErrorHandler) { a.handler = h }

func newContext(app resp.App, accept string) (*resp.Context, *httptest.ResponseRecorder) {
	r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	if accept != "" {
		r.Header.Set("Accept", accept)
	}

	w := httptest.NewRecorder()
	return resp.NewContext(w, r, app), w
}
