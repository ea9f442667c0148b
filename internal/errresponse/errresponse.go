package errresponse

import (
	"net/http"

	"github.com/SergeyParamoshkin/articles/internal/apierror"
	"github.com/SergeyParamoshkin/articles/internal/logging"
	"github.com/go-chi/render"
)

// ErrResponse renderer type for handling all sorts of errors.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	ErrorText  string `json:"error,omitempty"` // application-level error message
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

// New maps err onto the response sent to the client. Errors that are not
// an *apierror.Error are treated as store failures. The cause of a store
// failure is never shown to the client.
func New(err error) *ErrResponse {
	e := apierror.As(err)
	if e == nil {
		e = apierror.Store(err)
	}

	resp := &ErrResponse{
		Err:            err,
		HTTPStatusCode: e.Status,
		StatusText:     http.StatusText(e.Status),
		ErrorText:      e.Message,
	}
	switch e.Kind {
	case apierror.KindStore:
		resp.ErrorText = http.StatusText(http.StatusInternalServerError)
	case apierror.KindInvalidRequest:
		if e.Err != nil {
			resp.ErrorText = e.Err.Error()
		}
	}

	return resp
}

// Render is the shared error pipeline: it logs err with the request logger
// and writes the client-facing JSON.
func Render(w http.ResponseWriter, r *http.Request, err error) {
	resp := New(err)

	logger := logging.FromContext(r.Context())
	if resp.HTTPStatusCode >= http.StatusInternalServerError {
		logger.Errorw("request failed", "status", resp.HTTPStatusCode, "error", err)
	} else {
		logger.Warnw("request rejected", "status", resp.HTTPStatusCode, "error", err)
	}

	if rerr := render.Render(w, r, resp); rerr != nil {
		logger.Errorw("render error response", "error", rerr)
	}
}
