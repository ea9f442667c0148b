package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/SergeyParamoshkin/articles/internal/apierror"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ArticleTypes are the accepted values of Article.SourceType.
var ArticleTypes = []string{"article", "tv", "radio", "other"}

// Languages are the accepted values of Article.Language.
var Languages = []string{"cz", "sk", "en"}

const (
	DefaultSourceType = "article"
	DefaultLanguage   = "cz"

	MaxTextLength      = 16448
	MaxSourceURLLength = 512
)

// ErrInvalidID is returned by ParseID for strings that are not ObjectIDs.
var ErrInvalidID = errors.New("invalid object id")

// Article is a stored article document. Claims, PositiveVotes and
// NegativeVotes hold ids of documents owned by other collections.
type Article struct {
	ID             primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	AddedBy        primitive.ObjectID   `json:"addedBy" bson:"addedBy" validate:"required"`
	Text           string               `json:"text" bson:"text,omitempty" validate:"max=16448"`
	Claims         []primitive.ObjectID `json:"claims" bson:"claims"`
	SourceURL      string               `json:"sourceUrl" bson:"sourceUrl,omitempty" validate:"max=512"`
	SourceType     string               `json:"sourceType" bson:"sourceType" validate:"oneof=article tv radio other"`
	Language       string               `json:"language" bson:"language" validate:"oneof=cz sk en"`
	NPositiveVotes int                  `json:"nPositiveVotes" bson:"nPositiveVotes" validate:"min=0"`
	PositiveVotes  []primitive.ObjectID `json:"positiveVotes" bson:"positiveVotes"`
	NNegativeVotes int                  `json:"nNegativeVotes" bson:"nNegativeVotes" validate:"min=0"`
	NegativeVotes  []primitive.ObjectID `json:"negativeVotes" bson:"negativeVotes"`
	CreatedAt      time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// NewArticle returns an Article carrying the schema defaults. The id
// sequences start empty, never nil, so they are stored as arrays.
func NewArticle() *Article {
	return &Article{
		SourceType:    DefaultSourceType,
		Language:      DefaultLanguage,
		Claims:        []primitive.ObjectID{},
		PositiveVotes: []primitive.ObjectID{},
		NegativeVotes: []primitive.ObjectID{},
	}
}

// PublicArticle is the only shape of an Article handed to clients.
type PublicArticle struct {
	ID             primitive.ObjectID   `json:"id"`
	AddedBy        primitive.ObjectID   `json:"addedBy"`
	Text           string               `json:"text"`
	SourceURL      string               `json:"sourceUrl"`
	SourceType     string               `json:"sourceType"`
	Language       string               `json:"language"`
	CreatedAt      time.Time            `json:"createdAt"`
	NPositiveVotes int                  `json:"nPositiveVotes"`
	PositiveVotes  []primitive.ObjectID `json:"positiveVotes"`
	NNegativeVotes int                  `json:"nNegativeVotes"`
	NegativeVotes  []primitive.ObjectID `json:"negativeVotes"`
	Claims         []primitive.ObjectID `json:"claims"`
}

// Transform maps the article to its public representation.
func (a *Article) Transform() *PublicArticle {
	return &PublicArticle{
		ID:             a.ID,
		AddedBy:        a.AddedBy,
		Text:           a.Text,
		SourceURL:      a.SourceURL,
		SourceType:     a.SourceType,
		Language:       a.Language,
		CreatedAt:      a.CreatedAt,
		NPositiveVotes: a.NPositiveVotes,
		PositiveVotes:  cloneIDs(a.PositiveVotes),
		NNegativeVotes: a.NNegativeVotes,
		NegativeVotes:  cloneIDs(a.NegativeVotes),
		Claims:         cloneIDs(a.Claims),
	}
}

// Clone returns a deep copy of the article.
func (a *Article) Clone() *Article {
	c := *a
	c.Claims = cloneIDs(a.Claims)
	c.PositiveVotes = cloneIDs(a.PositiveVotes)
	c.NegativeVotes = cloneIDs(a.NegativeVotes)

	return &c
}

func cloneIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, len(ids))
	copy(out, ids)

	return out
}

// ParseID checks that id is well formed for the store and decodes it.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	return oid, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Validate checks the schema constraints of the article.
func (a *Article) Validate() error {
	err := validate.Struct(a)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierror.Validation("Article validation failed", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}

	return apierror.Validation("Article validation failed: "+strings.Join(msgs, "; "), err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s is longer than %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
