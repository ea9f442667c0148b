package article

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/SergeyParamoshkin/articles/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNoArticle is returned by a Store when no document matches an id.
var ErrNoArticle = errors.New("article not found")

// Store is the document store holding articles.
type Store interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Article, error)
	Insert(ctx context.Context, article *model.Article) error
	// Replace overwrites the whole document keyed by id. With upsert set a
	// missing document is inserted, otherwise ErrNoArticle is returned.
	Replace(ctx context.Context, id primitive.ObjectID, article *model.Article, upsert bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// PushClaim appends claimID to the claims of the article and returns
	// the updated document.
	PushClaim(ctx context.Context, id, claimID primitive.ObjectID, at time.Time) (*model.Article, error)
	// Find returns articles sorted by createdAt descending.
	Find(ctx context.Context, skip, limit int64) ([]*model.Article, error)
}

// MemoryStore keeps articles in process memory. It backs tests and the
// "memory" store mode.
type MemoryStore struct {
	mu       sync.RWMutex
	articles map[primitive.ObjectID]*model.Article
}

func NewMemoryStore(fixtures ...*model.Article) *MemoryStore {
	s := &MemoryStore{articles: make(map[primitive.ObjectID]*model.Article, len(fixtures))}
	for _, a := range fixtures {
		s.articles[a.ID] = a.Clone()
	}

	return s
}

func (s *MemoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return nil, ErrNoArticle
	}

	return a.Clone(), nil
}

func (s *MemoryStore) Insert(_ context.Context, article *model.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if article.ID.IsZero() {
		article.ID = primitive.NewObjectID()
	}
	if _, ok := s.articles[article.ID]; ok {
		return errors.New("duplicate key _id " + article.ID.Hex())
	}
	s.articles[article.ID] = article.Clone()

	return nil
}

func (s *MemoryStore) Replace(_ context.Context, id primitive.ObjectID, article *model.Article, upsert bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.articles[id]; !ok && !upsert {
		return ErrNoArticle
	}
	stored := article.Clone()
	stored.ID = id
	s.articles[id] = stored

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.articles[id]; !ok {
		return ErrNoArticle
	}
	delete(s.articles, id)

	return nil
}

func (s *MemoryStore) PushClaim(_ context.Context, id, claimID primitive.ObjectID, at time.Time) (*model.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[id]
	if !ok {
		return nil, ErrNoArticle
	}
	a.Claims = append(a.Claims, claimID)
	a.UpdatedAt = at

	return a.Clone(), nil
}

func (s *MemoryStore) Find(_ context.Context, skip, limit int64) ([]*model.Article, error) {
	s.mu.RLock()
	all := make([]*model.Article, 0, len(s.articles))
	for _, a := range s.articles {
		all = append(all, a.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID.Hex() > all[j].ID.Hex()
		}

		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if skip < 0 || skip >= int64(len(all)) {
		return []*model.Article{}, nil
	}
	all = all[skip:]
	if limit > 0 && limit < int64(len(all)) {
		all = all[:limit]
	}

	return all, nil
}
