package article

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyParamoshkin/articles/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding articles.
const CollectionName = "articles"

// MongoStore is the Store backed by a MongoDB collection.
type MongoStore struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoStore returns a store on db's articles collection. A positive
// timeout bounds every call.
func NewMongoStore(db *mongo.Database, timeout time.Duration) *MongoStore {
	return &MongoStore{coll: db.Collection(CollectionName), timeout: timeout}
}

func (s *MongoStore) ctx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, s.timeout)
}

// EnsureIndexes creates the secondary indexes of the collection.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	models := make([]mongo.IndexModel, 0, 4)
	for _, field := range []string{"addedBy", "claims", "nPositiveVotes", "nNegativeVotes"} {
		models = append(models, mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}})
	}
	if _, err := s.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create article indexes: %w", err)
	}

	return nil
}

func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Article, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	var a model.Article
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoArticle
	}
	if err != nil {
		return nil, fmt.Errorf("find article %s: %w", id.Hex(), err)
	}

	return &a, nil
}

func (s *MongoStore) Insert(ctx context.Context, article *model.Article) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	if article.ID.IsZero() {
		article.ID = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, article.Clone()); err != nil {
		return fmt.Errorf("insert article: %w", err)
	}

	return nil
}

func (s *MongoStore) Replace(ctx context.Context, id primitive.ObjectID, article *model.Article, upsert bool) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	doc := article.Clone()
	doc.ID = id

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(upsert))
	if err != nil {
		return fmt.Errorf("replace article %s: %w", id.Hex(), err)
	}
	if !upsert && res.MatchedCount == 0 {
		return ErrNoArticle
	}

	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete article %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNoArticle
	}

	return nil
}

func (s *MongoStore) PushClaim(ctx context.Context, id, claimID primitive.ObjectID, at time.Time) (*model.Article, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"claims": claimID},
		"$set":  bson.M{"updatedAt": at},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var a model.Article
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoArticle
	}
	if err != nil {
		return nil, fmt.Errorf("push claim to article %s: %w", id.Hex(), err)
	}

	return &a, nil
}

func (s *MongoStore) Find(ctx context.Context, skip, limit int64) ([]*model.Article, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	articles := []*model.Article{}
	if err := cur.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}

	return articles, nil
}
