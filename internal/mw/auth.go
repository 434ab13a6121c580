package mw

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/model"
	"storefront/internal/service"
)

type contextKey string

const userCtxKey contextKey = "current_user"

// Auth resolves the optional bearer credential into the request context.
// Resolution never rejects a request: a missing or bad token just leaves the
// context anonymous. Handlers that need a caller check with UserFrom.
func Auth(authSvc *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := authSvc.ResolveUser(r.Context(), bearerToken(r))
			if user != nil {
				ctx := context.WithValue(r.Context(), userCtxKey, user)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// UserFrom returns the resolved caller, or (nil, false) for an anonymous
// context.
func UserFrom(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userCtxKey).(*model.User)
	return user, ok
}
