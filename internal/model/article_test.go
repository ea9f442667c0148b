package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SergeyParamoshkin/articles/internal/apierror"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validArticle() *Article {
	a := NewArticle()
	a.AddedBy = primitive.NewObjectID()
	a.Text = "some text"

	return a
}

func TestNewArticleDefaults(t *testing.T) {
	a := NewArticle()
	if a.SourceType != "article" || a.Language != "cz" {
		t.Fatalf("defaults = %q/%q", a.SourceType, a.Language)
	}
	if a.NPositiveVotes != 0 || a.NNegativeVotes != 0 {
		t.Fatalf("vote counters not zero")
	}
}

// $push fails on a field stored as null, so the id sequences must always
// marshal as arrays.
func TestIDSequencesMarshalAsArrays(t *testing.T) {
	tests := []struct {
		name    string
		article *Article
	}{
		{"new article", NewArticle()},
		{"clone of zero value", (&Article{}).Clone()},
		{"clone after null body fields", (&Article{Claims: nil, PositiveVotes: nil}).Clone()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := bson.Marshal(tt.article)
			if err != nil {
				t.Fatal(err)
			}

			for _, field := range []string{"claims", "positiveVotes", "negativeVotes"} {
				v, err := bson.Raw(raw).LookupErr(field)
				if err != nil {
					t.Fatalf("%s: %v", field, err)
				}
				if v.Type != bsontype.Array {
					t.Errorf("%s stored as %s, want array", field, v.Type)
				}
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	a := validArticle()
	a.ID = primitive.NewObjectID()
	a.CreatedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	a.UpdatedAt = a.CreatedAt.Add(time.Hour)
	a.Claims = []primitive.ObjectID{primitive.NewObjectID()}

	raw, err := json.Marshal(a.Transform())
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]json.RawMessage
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"id", "addedBy", "text", "sourceUrl", "sourceType", "language", "createdAt",
		"nPositiveVotes", "positiveVotes", "nNegativeVotes", "negativeVotes", "claims",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d fields, want %d: %s", len(got), len(want), raw)
	}
	for _, k := range want {
		if _, ok := got[k]; !ok {
			t.Errorf("missing field %q", k)
		}
	}
	if _, ok := got["updatedAt"]; ok {
		t.Error("updatedAt must not be exposed")
	}
	if string(got["positiveVotes"]) != "[]" {
		t.Errorf("positiveVotes = %s, want []", got["positiveVotes"])
	}
	if string(got["id"]) != `"`+a.ID.Hex()+`"` {
		t.Errorf("id = %s", got["id"])
	}
}

func TestTransformDoesNotAlias(t *testing.T) {
	a := validArticle()
	a.Claims = []primitive.ObjectID{primitive.NewObjectID()}

	p := a.Transform()
	p.Claims[0] = primitive.NilObjectID

	if a.Claims[0].IsZero() {
		t.Fatal("Transform shares the claims slice with the entity")
	}
}

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()
	got, err := ParseID(oid.Hex())
	if err != nil || got != oid {
		t.Fatalf("ParseID(%q) = %v, %v", oid.Hex(), got, err)
	}

	for _, bad := range []string{"", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", oid.Hex() + "0"} {
		if _, err := ParseID(bad); !errors.Is(err, ErrInvalidID) {
			t.Errorf("ParseID(%q) err = %v", bad, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(a *Article)
		wantErr string
	}{
		{"valid", func(a *Article) {}, ""},
		{"tv source", func(a *Article) { a.SourceType = "tv" }, ""},
		{"missing addedBy", func(a *Article) { a.AddedBy = primitive.NilObjectID }, "addedBy is required"},
		{"long text", func(a *Article) { a.Text = strings.Repeat("x", MaxTextLength+1) }, "text is longer"},
		{"text at limit in runes", func(a *Article) { a.Text = strings.Repeat("č", MaxTextLength) }, ""},
		{"long url", func(a *Article) { a.SourceURL = strings.Repeat("u", MaxSourceURLLength+1) }, "sourceUrl is longer"},
		{"bad source type", func(a *Article) { a.SourceType = "podcast" }, "sourceType must be one of"},
		{"bad language", func(a *Article) { a.Language = "de" }, "language must be one of"},
		{"negative votes", func(a *Article) { a.NNegativeVotes = -1 }, "nNegativeVotes must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validArticle()
			tt.mutate(a)

			err := a.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				return
			}
			if !apierror.Is(err, apierror.KindValidation) {
				t.Fatalf("err = %v, want validation error", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
