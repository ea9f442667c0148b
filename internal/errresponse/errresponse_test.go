package errresponse

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SergeyParamoshkin/articles/internal/apierror"
	"github.com/SergeyParamoshkin/articles/internal/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"not found", apierror.NotFound(apierror.MsgArticleNotFound), http.StatusNotFound, "Article does not exist"},
		{"validation", apierror.Validation("Article validation failed: language must be one of [cz sk en]", nil), http.StatusBadRequest, "Article validation failed: language must be one of [cz sk en]"},
		{"invalid request", apierror.InvalidRequest(errors.New("EOF")), http.StatusBadRequest, "EOF"},
		{"unauthorized", apierror.Unauthorized("missing bearer token", nil), http.StatusUnauthorized, "missing bearer token"},
		{"store hides cause", apierror.Store(errors.New("dial tcp 10.0.0.1:27017")), http.StatusInternalServerError, "Internal Server Error"},
		{"untyped", errors.New("secret detail"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/articles/1", nil)

			Render(w, r, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var body ErrResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode %q: %v", w.Body.String(), err)
			}
			if body.ErrorText != tt.wantError {
				t.Errorf("error = %q, want %q", body.ErrorText, tt.wantError)
			}
			if body.StatusText != http.StatusText(tt.wantStatus) {
				t.Errorf("status text = %q", body.StatusText)
			}
		})
	}
}

func TestRenderLogsByClass(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := logging.WithLogger(httptest.NewRequest(http.MethodGet, "/", nil).Context(), zap.New(core).Sugar())

	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	Render(httptest.NewRecorder(), r, apierror.NotFound(apierror.MsgArticleNotFound))
	Render(httptest.NewRecorder(), r, apierror.Store(errors.New("boom")))

	if n := logs.FilterMessage("request rejected").Len(); n != 1 {
		t.Errorf("warn entries = %d, want 1", n)
	}
	errs := logs.FilterMessage("request failed").All()
	if len(errs) != 1 || errs[0].Level != zap.ErrorLevel {
		t.Fatalf("error entries = %+v", errs)
	}
	if !strings.Contains(errs[0].ContextMap()["error"].(string), "boom") {
		t.Errorf("cause not logged: %v", errs[0].ContextMap())
	}
}
