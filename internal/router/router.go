package router

import (
	"net/http"

	"github.com/SergeyParamoshkin/articles/internal/article"
	"github.com/SergeyParamoshkin/articles/internal/auth"
	"github.com/SergeyParamoshkin/articles/internal/logging"
	"github.com/SergeyParamoshkin/articles/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

type Options struct {
	Logger  *zap.SugaredLogger
	Repo    *article.Repository
	Auth    *auth.Authenticator
	Metrics *metrics.Metrics // optional
	// AccessLog enables chi's request logger.
	AccessLog bool
}

func New(o Options) chi.Router {
	api := article.NewAPI(o.Repo)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logging.Middleware(o.Logger))
	if o.AccessLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	if o.Metrics != nil {
		r.Use(o.Metrics.Middleware)
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte("pong")); err != nil {
			logging.FromContext(r.Context()).Errorw(err.Error())
		}
	})

	// RESTy routes for "articles" resource
	r.Route("/articles", func(r chi.Router) {
		r.Get("/", api.ListArticles)                           // GET /articles
		r.With(o.Auth.Middleware).Post("/", api.CreateArticle) // POST /articles

		r.Route("/{"+article.URLParam+"}", func(r chi.Router) {
			r.With(api.ArticleCtx).Get("/", api.GetArticle) // GET /articles/123

			r.Group(func(r chi.Router) {
				r.Use(o.Auth.Middleware)
				r.Use(api.ArticleCtx)            // Load the *Article on the request context
				r.Put("/", api.ReplaceArticle)   // PUT /articles/123
				r.Patch("/", api.UpdateArticle)  // PATCH /articles/123
				r.Delete("/", api.DeleteArticle) // DELETE /articles/123
			})
		})
	})

	return r
}
