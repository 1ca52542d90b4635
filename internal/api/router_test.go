package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/smart-parking-backend/internal/auth"
	"github.com/nekogravitycat/smart-parking-backend/internal/metrics"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	reg := metrics.NewRegistry()
	m := metrics.New(reg)
	m.Transition("book")

	return NewRouter(Config{
		Logger:     zap.NewNop(),
		Gatherer:   reg,
		JWTManager: auth.NewJWTManager("test-secret", time.Minute),
	})
}

func TestPublicEndpoints(t *testing.T) {
	r := newTestRouter()

	t.Run("root", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Smart Parking API", w.Body.String())
	})

	t.Run("healthz", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `parking_occupancy_transitions_total{op="book"} 1`)
	})
}

func TestRequestID(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEmpty(t, w.Header().Get(headerRequestID))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(headerRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(headerRequestID))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter()

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/v1/slots/1/book/42"},
		{http.MethodPost, "/v1/slots/1/cancel"},
		{http.MethodPost, "/v1/slots/1/exit/42"},
		{http.MethodGet, "/v1/bookings?user_id=42"},
		{http.MethodPost, "/v1/feedbacks"},
		{http.MethodGet, "/v1/me"},
		{http.MethodPost, "/v1/slots"},
		{http.MethodGet, "/v1/drivers"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestAdminRoutesRejectDrivers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jm := auth.NewJWTManager("test-secret", time.Minute)
	r := NewRouter(Config{JWTManager: jm})

	tok, err := jm.GenerateAccessToken(42, auth.RoleUser)
	require.NoError(t, err)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/v1/slots"},
		{http.MethodDelete, "/v1/slots/1"},
		{http.MethodGet, "/v1/drivers"},
		{http.MethodGet, "/v1/feedbacks"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", tc.method, tc.path)
	}
}
