package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/smart-parking-backend/internal/auth"
	"github.com/nekogravitycat/smart-parking-backend/internal/driver"
)

type stubService struct {
	drivers   map[int64]*driver.Driver
	passwords map[int64]string
	lastPatch driver.ProfilePatch
	patchErr  error
}

func newStubService() *stubService {
	return &stubService{
		drivers: map[int64]*driver.Driver{
			42: {ID: 1, UserID: 42, OwnerName: "Alice", VehicleName: "Car", BankNumber: "001", Role: auth.RoleUser,
				Slot: &driver.SlotRef{ID: 3, Number: "A1", Status: "occupied"}},
			7: {ID: 2, UserID: 7, OwnerName: "Root", VehicleName: "-", BankNumber: "-", Role: auth.RoleAdmin},
		},
		passwords: map[int64]string{42: "secret", 7: "admin"},
	}
}

func (s *stubService) Register(_ context.Context, req driver.RegisterRequest) (*driver.Driver, error) {
	if _, ok := s.drivers[req.UserID]; ok {
		return nil, driver.ErrUserIDTaken
	}
	d := &driver.Driver{ID: 99, UserID: req.UserID, OwnerName: req.OwnerName, Role: auth.RoleUser}
	s.drivers[req.UserID] = d
	return d, nil
}

func (s *stubService) Authenticate(_ context.Context, userID int64, password string) (*driver.Driver, error) {
	d, ok := s.drivers[userID]
	if !ok || s.passwords[userID] != password {
		return nil, driver.ErrLoginFailed
	}
	return d, nil
}

func (s *stubService) UpdateProfile(_ context.Context, userID int64, patch driver.ProfilePatch) (*driver.Driver, error) {
	s.lastPatch = patch
	if s.patchErr != nil {
		return nil, s.patchErr
	}
	d := s.drivers[userID]
	if patch.OwnerName != nil {
		d.OwnerName = *patch.OwnerName
	}
	return d, nil
}

func (s *stubService) GetByUserID(_ context.Context, userID int64) (*driver.Driver, error) {
	d, ok := s.drivers[userID]
	if !ok {
		return nil, driver.ErrNotFound
	}
	return d, nil
}

func (s *stubService) List(context.Context) ([]*driver.Driver, error) {
	return []*driver.Driver{s.drivers[42], s.drivers[7]}, nil
}

type memRevoker struct {
	revoked map[string]time.Time
}

func (r *memRevoker) Revoke(_ context.Context, id string, exp time.Time) error {
	r.revoked[id] = exp
	return nil
}

func (r *memRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := r.revoked[id]
	return ok, nil
}

type testEnv struct {
	router  *gin.Engine
	jwt     *auth.JWTManager
	svc     *stubService
	revoker *memRevoker
}

func setup() *testEnv {
	gin.SetMode(gin.TestMode)
	env := &testEnv{
		jwt:     auth.NewJWTManager("test-secret", time.Hour),
		svc:     newStubService(),
		revoker: &memRevoker{revoked: map[string]time.Time{}},
	}
	env.router = gin.New()
	RegisterRoutes(env.router.Group("/v1"),
		NewHandler(env.svc, env.jwt, env.revoker),
		auth.AuthRequired(env.jwt, env.revoker),
		auth.RequireAdmin(),
	)
	return env
}

func (e *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T, userID int64, password string) LoginResponse {
	t.Helper()
	w := e.do(http.MethodPost, "/v1/auth/login", LoginRequest{UserID: userID, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRegister(t *testing.T) {
	env := setup()

	w := env.do(http.MethodPost, "/v1/auth/register", RegisterRequest{
		UserID: 55, OwnerName: "Bob", VehicleName: "Van", BankNumber: "002", Password: "pw",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodPost, "/v1/auth/register", RegisterRequest{
		UserID: 42, OwnerName: "Dup", VehicleName: "Van", BankNumber: "002", Password: "pw",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	env := setup()

	t.Run("issues token carrying id and role", func(t *testing.T) {
		resp := env.login(t, 42, "secret")
		require.NotEmpty(t, resp.AccessToken)

		claims, err := env.jwt.ParseAndValidate(resp.AccessToken)
		require.NoError(t, err)
		id, err := claims.UserID()
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
		assert.Equal(t, auth.RoleUser, claims.Role)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("reports current slot", func(t *testing.T) {
		resp := env.login(t, 42, "secret")
		require.NotNil(t, resp.User.Slot)
		assert.Equal(t, "A1", *resp.User.Slot)

		resp = env.login(t, 7, "admin")
		assert.Nil(t, resp.User.Slot)
		assert.Equal(t, auth.RoleAdmin, resp.User.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := env.do(http.MethodPost, "/v1/auth/login", LoginRequest{UserID: 42, Password: "nope"}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "login failed")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	env := setup()
	token := env.login(t, 42, "secret").AccessToken

	w := env.do(http.MethodGet, "/v1/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPost, "/v1/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	claims, err := env.jwt.ParseAndValidate(token)
	require.NoError(t, err)
	exp, ok := env.revoker.revoked[claims.ID]
	require.True(t, ok)
	assert.True(t, exp.Equal(claims.ExpiresAt.Time))

	w = env.do(http.MethodGet, "/v1/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")

	// A fresh login is unaffected.
	w = env.do(http.MethodGet, "/v1/me", nil, env.login(t, 42, "secret").AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateMe(t *testing.T) {
	env := setup()
	token := env.login(t, 42, "secret").AccessToken

	w := env.do(http.MethodPatch, "/v1/me", map[string]string{"owner_name": "Alicia"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alicia")
	require.NotNil(t, env.svc.lastPatch.OwnerName)
	assert.Nil(t, env.svc.lastPatch.VehicleName)

	env.svc.patchErr = driver.ErrIncorrectPassword
	w = env.do(http.MethodPatch, "/v1/me", map[string]string{"old_password": "x", "new_password": "y"}, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutes(t *testing.T) {
	env := setup()
	userToken := env.login(t, 42, "secret").AccessToken
	adminToken := env.login(t, 7, "admin").AccessToken

	w := env.do(http.MethodGet, "/v1/drivers", nil, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodGet, "/v1/drivers", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	var list []DriverResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	require.NotNil(t, list[0].SlotNumber)
	assert.Equal(t, "A1", *list[0].SlotNumber)

	w = env.do(http.MethodGet, "/v1/drivers/42/id", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())

	w = env.do(http.MethodGet, "/v1/drivers/404/id", nil, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
