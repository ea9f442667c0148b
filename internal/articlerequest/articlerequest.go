package articlerequest

import (
	"net/http"
	"time"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

// ArticleRequest is the request payload for the Article data model.
//
// Fields owned by the server shadow the embedded Article fields of the same
// JSON name, so a body cannot set them.
type ArticleRequest struct {
	*model.Article

	ProtectedID        string     `json:"id"`
	ProtectedCreatedAt *time.Time `json:"createdAt"`
	ProtectedUpdatedAt *time.Time `json:"updatedAt"`
}

// New returns a payload that decodes onto base. Fields absent from the
// body keep the values of base. A nil base decodes onto the schema
// defaults.
func New(base *model.Article) *ArticleRequest {
	if base == nil {
		base = model.NewArticle()
	}

	return &ArticleRequest{Article: base}
}

func (a *ArticleRequest) Bind(r *http.Request) error {
	a.ProtectedID = ""
	a.ProtectedCreatedAt = nil
	a.ProtectedUpdatedAt = nil

	return nil
}
