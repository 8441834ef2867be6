package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/userdir/internal/api/http/context"
	"github.com/dtroode/userdir/internal/model"
	"github.com/dtroode/userdir/internal/repository/memory"
	"github.com/dtroode/userdir/internal/service"
	"github.com/dtroode/userdir/internal/testutil"
	"github.com/dtroode/userdir/internal/token"
)

const testSecret = "router-test-secret"

type testEnv struct {
	server *httptest.Server
	store  *memory.UserStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	lg := testutil.MakeNoopLogger()
	store := memory.NewUserStore()
	validator := service.NewValidator()
	userService := service.NewUser(store, validator, lg)
	authService := service.NewAuth(store, token.NewJWT(testSecret, time.Hour), validator, lg)

	_, err := userService.EnsureAdmin(context.Background(), model.CreateUserParams{
		Name:  "Admin User",
		Email: "admin@example.com",
	})
	require.NoError(t, err)

	srv := httptest.NewServer(New(authService, userService, httpctx.NewManager(), false, lg).Register())
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, store: store}
}

func (e *testEnv) do(t *testing.T, method, path, bearer, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))

	return resp.StatusCode, decoded
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()

	status, body := e.do(t, http.MethodPost, "/auth/login", "", `{"email":"`+email+`"}`)
	require.Equal(t, http.StatusOK, status)
	return body["data"].(map[string]any)["token"].(string)
}

func TestRouter_UserLifecycle(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t, "admin@example.com")

	status, body := env.do(t, http.MethodPost, "/users", "", `{"name":"Ann","email":"ann@example.com"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Access denied. No token provided.", body["message"])

	status, body = env.do(t, http.MethodPost, "/users", tok, `{"name":"Ann","email":" ANN@Example.com ","age":30}`)
	require.Equal(t, http.StatusCreated, status)
	created := body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "ann@example.com", created["email"])
	id := created["_id"].(string)

	status, body = env.do(t, http.MethodPost, "/users", tok, `{"name":"Ann 2","email":"ann@example.com"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "An account with this email already exists.", body["message"])

	status, body = env.do(t, http.MethodGet, "/users?age=30", tok, "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["results"])

	status, body = env.do(t, http.MethodPut, "/users/"+id, tok, `{"email":"admin@example.com"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "This email is already in use by another account.", body["message"])

	status, body = env.do(t, http.MethodPut, "/users/"+id, tok, `{"name":"Annie"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Annie", body["data"].(map[string]any)["user"].(map[string]any)["name"])

	status, body = env.do(t, http.MethodDelete, "/users/"+id, tok, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User with ID "+id+" has been deleted successfully.", body["message"])

	status, body = env.do(t, http.MethodGet, "/users/"+id, tok, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No user found with ID: "+id, body["message"])

	status, body = env.do(t, http.MethodDelete, "/users/"+id, tok, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No user found with ID: "+id+" to delete.", body["message"])
}

func TestRouter_Pagination(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t, "admin@example.com")

	for _, name := range []string{"b", "c", "d"} {
		status, _ := env.do(t, http.MethodPost, "/users", tok, `{"name":"`+name+`","email":"`+name+`@example.com"}`)
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := env.do(t, http.MethodGet, "/users?page=1&size=3", tok, "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["results"])

	status, body = env.do(t, http.MethodGet, "/users?page=5&size=3", tok, "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, body["results"])
	assert.Equal(t, []any{}, body["data"].(map[string]any)["users"])
}

func TestRouter_AuthFailures(t *testing.T) {
	env := newTestEnv(t)

	admin, err := env.store.GetByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		UserID: admin.ID,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	foreign, err := token.NewJWT("other-secret", time.Hour).Issue(admin.ID)
	require.NoError(t, err)

	ghost, err := token.NewJWT(testSecret, time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantMsg string
	}{
		{name: "expired", token: expired, wantMsg: "Invalid or expired token."},
		{name: "wrong signature", token: foreign, wantMsg: "Invalid or expired token."},
		{name: "garbage", token: "not.a.jwt", wantMsg: "Invalid or expired token."},
		{name: "user gone", token: ghost, wantMsg: "The user belonging to this token no longer exists."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := env.do(t, http.MethodGet, "/users", tt.token, "")
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}
}

func TestRouter_LoginFailures(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/auth/login", "", `{"email":"ghost@example.com"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Incorrect email or password.", body["message"])

	status, body = env.do(t, http.MethodPost, "/auth/login", "", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, `"email" is required`, body["message"])
}

func TestRouter_Validation(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t, "admin@example.com")

	status, body := env.do(t, http.MethodPost, "/users", tok, `{"email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, `"name" is required, "email" must be a valid email`, body["message"])
}

func TestRouter_Health(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", body["status"])
}

func TestRouter_OutOfRangeIntegers(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t, "admin@example.com")

	status, body := env.do(t, http.MethodGet, "/users?page=4611686018427387904&size=4", tok, "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, body["results"])

	status, body = env.do(t, http.MethodGet, "/users?age=3000000000", tok, "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, body["results"])

	status, body = env.do(t, http.MethodPost, "/users", tok, `{"name":"Ann","email":"ann@example.com","age":3000000000}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, `"age" must be less than or equal to 2147483647`, body["message"])
}
