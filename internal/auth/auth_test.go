package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.GenerateAccessToken(42, RoleAdmin)
	require.NoError(t, err)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTRejectsExpiredAndForeignTokens(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := m.GenerateAccessToken(1, RoleUser)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseAndValidate(expired)
	assert.Error(t, err)

	other := NewJWTManager("other-secret", time.Hour)
	foreign, err := other.GenerateAccessToken(1, RoleUser)
	require.NoError(t, err)
	_, err = m.ParseAndValidate(foreign)
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(4)

	hash, err := h.Hash("hunter22")
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, "hunter22"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrPasswordMismatch)
	assert.Error(t, h.Compare("not-a-hash", "hunter22"))
}

type memRevoker struct {
	revoked map[string]bool
	err     error
}

func (r *memRevoker) Revoke(_ context.Context, id string, _ time.Time) error {
	r.revoked[id] = true
	return nil
}

func (r *memRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	return r.revoked[id], r.err
}

func newTestRouter(m *JWTManager, rv Revoker) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthRequired(m, rv), func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "admin": IsAdmin(c), "self": CanActAs(c, 7)})
	})
	r.GET("/admin", AuthRequired(m, rv), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	rv := &memRevoker{revoked: map[string]bool{}}
	r := newTestRouter(m, rv)

	userToken, _ := m.GenerateAccessToken(7, RoleUser)
	adminToken, _ := m.GenerateAccessToken(1, RoleAdmin)

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "").Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid user", func(t *testing.T) {
		w := do(r, "/me", userToken)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":7,"admin":false,"self":true}`, w.Body.String())
	})

	t.Run("admin route", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, do(r, "/admin", userToken).Code)
		assert.Equal(t, http.StatusNoContent, do(r, "/admin", adminToken).Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		claims, err := m.ParseAndValidate(userToken)
		require.NoError(t, err)
		require.NoError(t, rv.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time))
		assert.Equal(t, http.StatusUnauthorized, do(r, "/me", userToken).Code)
	})

	t.Run("revocation store down", func(t *testing.T) {
		rv.err = errors.New("connection refused")
		defer func() { rv.err = nil }()
		assert.Equal(t, http.StatusServiceUnavailable, do(r, "/me", adminToken).Code)
	})
}
