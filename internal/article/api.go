package article

import (
	"net/http"
	"strconv"

	"github.com/SergeyParamoshkin/articles/internal/apierror"
	"github.com/SergeyParamoshkin/articles/internal/articlerequest"
	"github.com/SergeyParamoshkin/articles/internal/articleresponse"
	"github.com/SergeyParamoshkin/articles/internal/auth"
	"github.com/SergeyParamoshkin/articles/internal/errresponse"
	"github.com/SergeyParamoshkin/articles/internal/logging"
	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/go-chi/render"
)

// API holds the HTTP handlers of the articles resource.
type API struct {
	repo *Repository
}

func NewAPI(repo *Repository) *API {
	return &API{repo: repo}
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}

	return n
}

// ListArticles returns a page of articles, newest first.
func (api *API) ListArticles(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Page:    queryInt(r, "page"),
		PerPage: queryInt(r, "perPage"),
	}

	articles, err := api.repo.List(r.Context(), params)
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	if err := render.RenderList(w, r, articleresponse.NewArticleListResponse(articles)); err != nil {
		logging.FromContext(r.Context()).Errorw("render article list", "error", err)
	}
}

// CreateArticle persists the posted Article on behalf of the authenticated
// user and returns it back to the client.
func (api *API) CreateArticle(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		errresponse.Render(w, r, apierror.Unauthorized("authentication required", err))

		return
	}

	data := articlerequest.New(model.NewArticle())
	if err := render.Bind(r, data); err != nil {
		errresponse.Render(w, r, apierror.InvalidRequest(err))

		return
	}

	article := data.Article
	article.AddedBy = userID

	saved, err := api.repo.Create(r.Context(), article)
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	logging.FromContext(r.Context()).Infow("article created", "id", saved.ID.Hex(), "addedBy", userID.Hex())

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, articleresponse.NewArticleResponse(saved)); err != nil {
		logging.FromContext(r.Context()).Errorw("render article", "error", err)
	}
}

// GetArticle returns the Article loaded by ArticleCtx.
func (api *API) GetArticle(w http.ResponseWriter, r *http.Request) {
	article := FromContext(r.Context())

	if err := render.Render(w, r, articleresponse.NewArticleResponse(article)); err != nil {
		logging.FromContext(r.Context()).Errorw("render article", "error", err)
	}
}

// ReplaceArticle overwrites the loaded Article with the document in the
// request body. The body is taken as is, addedBy included.
func (api *API) ReplaceArticle(w http.ResponseWriter, r *http.Request) {
	existing := FromContext(r.Context())

	data := articlerequest.New(model.NewArticle())
	if err := render.Bind(r, data); err != nil {
		errresponse.Render(w, r, apierror.InvalidRequest(err))

		return
	}

	saved, err := api.repo.Replace(r.Context(), existing, data.Article)
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	if err := render.Render(w, r, articleresponse.NewArticleResponse(saved)); err != nil {
		logging.FromContext(r.Context()).Errorw("render article", "error", err)
	}
}

// UpdateArticle merges the fields present in the request body onto the
// loaded Article and saves it.
func (api *API) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	article := FromContext(r.Context()).Clone()

	data := articlerequest.New(article)
	if err := render.Bind(r, data); err != nil {
		errresponse.Render(w, r, apierror.InvalidRequest(err))

		return
	}

	saved, err := api.repo.Save(r.Context(), data.Article)
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	if err := render.Render(w, r, articleresponse.NewArticleResponse(saved)); err != nil {
		logging.FromContext(r.Context()).Errorw("render article", "error", err)
	}
}

// DeleteArticle removes the loaded Article from the store.
func (api *API) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	article := FromContext(r.Context())

	if err := api.repo.Remove(r.Context(), article.ID); err != nil {
		errresponse.Render(w, r, err)

		return
	}

	logging.FromContext(r.Context()).Infow("article removed", "id", article.ID.Hex())
	render.NoContent(w, r)
}
