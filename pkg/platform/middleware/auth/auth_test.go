package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"maidlink/pkg/requestcontext"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
}

func (v stubValidator) ValidateToken(string) (*JWTClaims, error) { return v.claims, v.err }

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userID := uuid.New()

	var gotRole requestcontext.Role
	var gotUser string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole = requestcontext.CallerRole(r.Context())
		gotUser = requestcontext.UserID(r.Context()).String()
	})

	serve := func(v JWTValidator, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		RequireAuth(v, logger)(next).ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing header", func(t *testing.T) {
		rec := serve(stubValidator{}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		rec := serve(stubValidator{err: errors.New("bad")}, "Bearer x")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-uuid subject", func(t *testing.T) {
		rec := serve(stubValidator{claims: &JWTClaims{UserID: "nope"}}, "Bearer x")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token defaults role to member", func(t *testing.T) {
		rec := serve(stubValidator{claims: &JWTClaims{UserID: userID.String()}}, "Bearer x")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, requestcontext.RoleMember, gotRole)
		assert.Equal(t, userID.String(), gotUser)
	})

	t.Run("valid token carries role", func(t *testing.T) {
		rec := serve(stubValidator{claims: &JWTClaims{UserID: userID.String(), Role: "reviewer"}}, "Bearer x")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, requestcontext.RoleReviewer, gotRole)
	})
}
