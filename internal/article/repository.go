package article

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/SergeyParamoshkin/articles/internal/apierror"
	"github.com/SergeyParamoshkin/articles/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 30
)

// ListParams selects one page of the createdAt-descending article list.
// Values below 1 fall back to the defaults.
type ListParams struct {
	Page    int
	PerPage int
}

func (p ListParams) normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}

	return p
}

// Skip is the number of articles before the page. It saturates at
// math.MaxInt64 instead of overflowing.
func (p ListParams) Skip() int64 {
	p = p.normalize()

	perPage, pages := int64(p.PerPage), int64(p.Page-1)
	if pages > math.MaxInt64/perPage {
		return math.MaxInt64
	}

	return perPage * pages
}

// Repository adds existence checks and typed errors on top of a Store.
type Repository struct {
	store Store
	now   func() time.Time
}

func NewRepository(store Store) *Repository {
	return &Repository{store: store, now: time.Now}
}

func notFound() error {
	return apierror.NotFound(apierror.MsgArticleNotFound)
}

func storeErr(err error) error {
	if errors.Is(err, ErrNoArticle) {
		return notFound()
	}

	return apierror.Store(err)
}

func (r *Repository) timestamp() time.Time {
	// Mongo stores milliseconds.
	return r.now().UTC().Truncate(time.Millisecond)
}

// Get returns the article with the given id. Malformed and unknown ids
// both yield a NotFound error.
func (r *Repository) Get(ctx context.Context, id string) (*model.Article, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, notFound()
	}

	a, err := r.store.FindByID(ctx, oid)
	if err != nil {
		return nil, storeErr(err)
	}

	return a, nil
}

// AddClaimID appends claimID to the claims of the article. The same claim
// added twice is stored twice.
func (r *Repository) AddClaimID(ctx context.Context, id, claimID string) (*model.Article, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, notFound()
	}
	cid, err := model.ParseID(claimID)
	if err != nil {
		return nil, notFound()
	}

	a, err := r.store.PushClaim(ctx, oid, cid, r.timestamp())
	if err != nil {
		return nil, storeErr(err)
	}

	return a, nil
}

// List returns one page of articles, newest first. Pages past the end are
// empty.
func (r *Repository) List(ctx context.Context, params ListParams) ([]*model.Article, error) {
	params = params.normalize()

	articles, err := r.store.Find(ctx, params.Skip(), int64(params.PerPage))
	if err != nil {
		return nil, apierror.Store(err)
	}

	return articles, nil
}

// Create validates and inserts a new article, assigning its id and
// timestamps.
func (r *Repository) Create(ctx context.Context, a *model.Article) (*model.Article, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	now := r.timestamp()
	a.ID = primitive.NilObjectID
	a.CreatedAt = now
	a.UpdatedAt = now

	if err := r.store.Insert(ctx, a); err != nil {
		return nil, apierror.Store(err)
	}

	return a, nil
}

// Replace overwrites the whole document stored under existing's id with
// next, inserting it when it vanished meanwhile, and returns the stored
// document. The creation time of existing is kept.
func (r *Repository) Replace(ctx context.Context, existing, next *model.Article) (*model.Article, error) {
	if err := next.Validate(); err != nil {
		return nil, err
	}

	next.ID = existing.ID
	next.CreatedAt = existing.CreatedAt
	next.UpdatedAt = r.timestamp()

	if err := r.store.Replace(ctx, existing.ID, next, true); err != nil {
		return nil, storeErr(err)
	}

	saved, err := r.store.FindByID(ctx, existing.ID)
	if err != nil {
		return nil, storeErr(err)
	}

	return saved, nil
}

// Save persists a modified article. Concurrent saves of one article are
// last-write-wins.
func (r *Repository) Save(ctx context.Context, a *model.Article) (*model.Article, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	a.UpdatedAt = r.timestamp()
	if err := r.store.Replace(ctx, a.ID, a, false); err != nil {
		return nil, storeErr(err)
	}

	return a, nil
}

// Remove deletes the article with the given id.
func (r *Repository) Remove(ctx context.Context, id primitive.ObjectID) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return storeErr(err)
	}

	return nil
}
