package article

import (
	"context"
	"net/http"

	"github.com/SergeyParamoshkin/articles/internal/errresponse"
	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/go-chi/chi/v5"
)

type ctxKey int8

const ctxKeyArticle ctxKey = iota

// URLParam is the route parameter holding the article id.
const URLParam = "articleID"

// ArticleCtx middleware is used to load an Article object from
// the URL parameters passed through as the request. In case
// the Article could not be loaded, the error goes to the error pipeline.
func (api *API) ArticleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		article, err := api.repo.Get(r.Context(), chi.URLParam(r, URLParam))
		if err != nil {
			errresponse.Render(w, r, err)

			return
		}

		next.ServeHTTP(w, r.WithContext(WithArticle(r.Context(), article)))
	})
}

func WithArticle(ctx context.Context, a *model.Article) context.Context {
	return context.WithValue(ctx, ctxKeyArticle, a)
}

// FromContext returns the article loaded by ArticleCtx. Handlers mounted
// below ArticleCtx can rely on it being present.
func FromContext(ctx context.Context) *model.Article {
	a, _ := ctx.Value(ctxKeyArticle).(*model.Article)

	return a
}
