package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/SergeyParamoshkin/articles/internal/apierror"
	"github.com/SergeyParamoshkin/articles/internal/errresponse"
	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ctxKey int8

const ctxKeyUser ctxKey = iota

// Authenticator issues and verifies HS256 bearer tokens whose subject is
// the user's ObjectID.
type Authenticator struct {
	secret []byte
}

func New(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// IssueToken signs a token for userID valid for ttl.
func (a *Authenticator) IssueToken(userID primitive.ObjectID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Verify parses tokenString and returns the user id it was issued for.
func (a *Authenticator) Verify(tokenString string) (primitive.ObjectID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return primitive.NilObjectID, err
	}

	return model.ParseID(claims.Subject)
}

// Middleware rejects requests without a valid bearer token and puts the
// authenticated user id on the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			errresponse.Render(w, r, apierror.Unauthorized("missing bearer token", nil))

			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			errresponse.Render(w, r, apierror.Unauthorized("malformed authorization header", nil))

			return
		}

		userID, err := a.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			errresponse.Render(w, r, apierror.Unauthorized("invalid or expired token", err))

			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func WithUserID(ctx context.Context, id primitive.ObjectID) context.Context {
	return context.WithValue(ctx, ctxKeyUser, id)
}

// ErrNoUser is returned by UserID for requests that were not authenticated.
var ErrNoUser = errors.New("no authenticated user")

// UserID returns the authenticated user of the request.
func UserID(ctx context.Context) (primitive.ObjectID, error) {
	id, ok := ctx.Value(ctxKeyUser).(primitive.ObjectID)
	if !ok || id.IsZero() {
		return primitive.NilObjectID, ErrNoUser
	}

	return id, nil
}
