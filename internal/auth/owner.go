// Package auth resolves the alarm owner for a request. There is no real
// identity layer yet; the resolver stands in for one so handlers already take
// an explicit owner instead of a hardcoded user.
package auth

import (
	"context"
	"net/http"
)

type contextKey string

var ownerCtxKey contextKey = "owner"

// OwnerResolver abstracts where the owner id comes from.
type OwnerResolver interface {
	// Middleware stores the resolved owner id in the request context.
	Middleware() func(http.Handler) http.Handler
}

// StaticResolver reads the owner from the X-User-ID header or the userId
// query parameter and falls back to a configured default.
type StaticResolver struct {
	fallback string
}

func NewStaticResolver(fallback string) *StaticResolver {
	return &StaticResolver{fallback: fallback}
}

func (s *StaticResolver) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner := r.Header.Get("X-User-ID")
			if owner == "" {
				owner = r.URL.Query().Get("userId")
			}
			if owner == "" {
				owner = s.fallback
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), owner)))
		})
	}
}

func NewContext(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerCtxKey, owner)
}

func OwnerFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(ownerCtxKey).(string)
	return owner, ok
}
