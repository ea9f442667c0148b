package articleresponse

import (
	"net/http"

	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/go-chi/render"
)

// ArticleResponse is the response payload for the Article data model. It
// carries only the public fields of an article.
type ArticleResponse struct {
	*model.PublicArticle
}

func NewArticleListResponse(articles []*model.Article) []render.Renderer {
	list := make([]render.Renderer, 0, len(articles))
	for _, article := range articles {
		list = append(list, NewArticleResponse(article))
	}

	return list
}

func NewArticleResponse(article *model.Article) *ArticleResponse {
	return &ArticleResponse{PublicArticle: article.Transform()}
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
