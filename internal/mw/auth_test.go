package mw

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
	"storefront/internal/service"
)

type stubUserStore struct {
	user *model.User
}

func (s *stubUserStore) Create(_ context.Context, _ *model.User) error { return nil }

func (s *stubUserStore) ByID(_ context.Context, id string) (*model.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubUserStore) ByEmail(_ context.Context, email string) (*model.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, nil
}

func TestAuthResolvesOrFallsThroughAnonymous(t *testing.T) {
	user := &model.User{ID: "u1", Email: "ada@example.com"}
	authSvc := service.NewAuthService(&stubUserStore{user: user}, "secret")

	token, err := authSvc.Token("u1")
	require.NoError(t, err)

	var resolved *model.User
	var resolvedOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved, resolvedOK = UserFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := Auth(authSvc)(next)

	cases := []struct {
		name    string
		header  string
		wantUID string
	}{
		{name: "valid token", header: "Bearer " + token, wantUID: "u1"},
		{name: "no header", header: ""},
		{name: "bad scheme", header: "Basic abc"},
		{name: "garbage token", header: "Bearer garbage"},
		{name: "unknown user", header: "Bearer " + mustToken(t, authSvc, "nobody")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resolved, resolvedOK = nil, false

			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			// The gate never rejects; the handler always runs.
			assert.Equal(t, http.StatusOK, rec.Code)

			if tc.wantUID != "" {
				require.True(t, resolvedOK)
				assert.Equal(t, tc.wantUID, resolved.ID)
			} else {
				assert.False(t, resolvedOK)
				assert.Nil(t, resolved)
			}
		})
	}
}

func mustToken(t *testing.T, svc *service.AuthService, userID string) string {
	t.Helper()
	token, err := svc.Token(userID)
	require.NoError(t, err)
	return token
}
