// Package auth authenticates API requests with HS256 bearer tokens and
// resolves the caller to the owner identity scoping their data.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/penny/internal/identity"
)

type ctxKey struct{}

// WithResolution returns a context carrying the caller's owner resolution.
func WithResolution(ctx context.Context, res identity.Resolution) context.Context {
	return context.WithValue(ctx, ctxKey{}, res)
}

// ResolutionFrom extracts the owner resolution set by Middleware.
func ResolutionFrom(ctx context.Context) (identity.Resolution, bool) {
	res, ok := ctx.Value(ctxKey{}).(identity.Resolution)
	return res, ok
}

// Middleware verifies the bearer token and stores the resolved owner on the
// request context. Requests without a valid token get a 401.
func Middleware(secret string, resolver *identity.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			userID, err := verify(token, secret)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			res, err := resolver.Resolve(userID)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithResolution(r.Context(), res)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}

	return token, true
}

// verify checks the signature and returns the subject claim as the
// authenticated user.
func verify(raw, secret string) (uuid.UUID, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("reading subject: %w", err)
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("subject is not a user id: %w", err)
	}

	return userID, nil
}
