package articleresponse

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRenderListIsArray(t *testing.T) {
	a := model.NewArticle()
	a.ID = primitive.NewObjectID()
	b := model.NewArticle()
	b.ID = primitive.NewObjectID()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/articles", nil)
	if err := render.RenderList(w, r, NewArticleListResponse([]*model.Article{a, b})); err != nil {
		t.Fatal(err)
	}

	var got []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	if len(got) != 2 || got[0]["id"] != a.ID.Hex() || got[1]["id"] != b.ID.Hex() {
		t.Fatalf("got %v", got)
	}
}

func TestRenderEmptyList(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/articles", nil)
	if err := render.RenderList(w, r, NewArticleListResponse(nil)); err != nil {
		t.Fatal(err)
	}

	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Fatalf("body = %q, want []", got)
	}
}

func TestResponseOmitsUpdatedAt(t *testing.T) {
	a := model.NewArticle()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/articles/x", nil)
	if err := render.Render(w, r, NewArticleResponse(a)); err != nil {
		t.Fatal(err)
	}

	if strings.Contains(w.Body.String(), "updatedAt") {
		t.Fatalf("body exposes updatedAt: %s", w.Body.String())
	}
}
