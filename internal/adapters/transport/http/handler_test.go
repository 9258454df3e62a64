package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avelorn/auth-service/internal/adapters/transport/http/dto"
	"github.com/avelorn/auth-service/internal/app/auth/hash"
	appjwt "github.com/avelorn/auth-service/internal/app/auth/jwt"
	appsvc "github.com/avelorn/auth-service/internal/app/auth/service"
	authErrors "github.com/avelorn/auth-service/internal/domain/auth/errors"
	"github.com/avelorn/auth-service/internal/domain/auth/model"
	"github.com/avelorn/auth-service/internal/infra/config"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

/* ──────────────────────────────── stubs ──────────────────────────────── */

type userRepoStub struct{ users map[uuid.UUID]model.User }

func (u *userRepoStub) CreateUser(_ context.Context, m model.User) (uuid.UUID, error) {
	for _, v := range u.users {
		if v.Email == m.Email {
			return uuid.Nil, authErrors.ErrAlreadyExists
		}
	}
	m.CreatedAt = time.Now()
	u.users[m.ID] = m
	return m.ID, nil
}

func (u *userRepoStub) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	for _, v := range u.users {
		if v.Email == email {
			return v, nil
		}
	}
	return model.User{}, authErrors.ErrNotFound
}

func (u *userRepoStub) GetUserByID(_ context.Context, id uuid.UUID) (model.User, error) {
	v, ok := u.users[id]
	if !ok {
		return model.User{}, authErrors.ErrNotFound
	}
	return v, nil
}

func (u *userRepoStub) UpdateRefreshTokenHash(_ context.Context, id uuid.UUID, hash *string) error {
	if v, ok := u.users[id]; ok {
		v.RefreshTokenHash = hash
		u.users[id] = v
	}
	return nil
}

/* ───────────────────────────── helpers ───────────────────────────── */

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	util := appjwt.NewJWTUtil(&config.Config{
		JWTSecret:        "access-secret",
		JWTRefreshSecret: "refresh-secret",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  168 * time.Hour,
	})

	v := validator.New()
	require.NoError(t, dto.RegisterStrongPassword(v))

	svc := appsvc.New(&userRepoStub{users: make(map[uuid.UUID]model.User)}, util, hash.New(), v)
	handler := NewHandler(svc, CookieConfig{}, zap.NewNop())

	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func doJSON(router *gin.Engine, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func register(t *testing.T, router *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()
	rec := doJSON(router, http.MethodPost, "/auth/register", gin.H{
		"email": "a@x.com", "name": "Ann Lee", "password": "Pass123!",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return rec
}

/* ───────────────────────────── tests ───────────────────────────── */

func TestAuthFlow_RegisterLoginRefresh(t *testing.T) {
	router := newTestRouter(t)

	// Register sets both cookies and returns the sanitized user.
	reg := register(t, router)
	regAccess := cookieByName(t, reg, "access_token")
	regRefresh := cookieByName(t, reg, "refresh_token")
	require.NotEmpty(t, regAccess.Value)
	require.NotEmpty(t, regRefresh.Value)
	require.True(t, regAccess.HttpOnly)
	require.True(t, regRefresh.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, regRefresh.SameSite)

	var body struct {
		User map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(reg.Body.Bytes(), &body))
	require.Equal(t, "a@x.com", body.User["email"])
	require.NotContains(t, body.User, "passwordHash")
	require.NotContains(t, body.User, "refreshTokenHash")
	require.NotContains(t, reg.Body.String(), "PasswordHash")

	// Wrong password and unknown email produce byte-identical 401s.
	badPwd := doJSON(router, http.MethodPost, "/auth/login", gin.H{"email": "a@x.com", "password": "wrong!"})
	noUser := doJSON(router, http.MethodPost, "/auth/login", gin.H{"email": "ghost@x.com", "password": "Pass123!"})
	require.Equal(t, http.StatusUnauthorized, badPwd.Code)
	require.Equal(t, http.StatusUnauthorized, noUser.Code)
	require.Equal(t, badPwd.Body.String(), noUser.Body.String())
	require.JSONEq(t, `{"error":"Invalid credentials"}`, badPwd.Body.String())

	// Correct login issues a fresh pair.
	login := doJSON(router, http.MethodPost, "/auth/login", gin.H{"email": "a@x.com", "password": "Pass123!"})
	require.Equal(t, http.StatusOK, login.Code)
	loginRefresh := cookieByName(t, login, "refresh_token")
	require.NotEqual(t, regRefresh.Value, loginRefresh.Value)

	// The registration-time refresh token was superseded by the login.
	stale := doJSON(router, http.MethodPost, "/auth/refresh", nil, regRefresh)
	require.Equal(t, http.StatusUnauthorized, stale.Code)
	require.JSONEq(t, `{"error":"Invalid refresh token"}`, stale.Body.String())

	// The current one rotates successfully and becomes single-use.
	ok := doJSON(router, http.MethodPost, "/auth/refresh", nil, loginRefresh)
	require.Equal(t, http.StatusOK, ok.Code)
	reused := doJSON(router, http.MethodPost, "/auth/refresh", nil, loginRefresh)
	require.Equal(t, http.StatusUnauthorized, reused.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router := newTestRouter(t)
	register(t, router)

	rec := doJSON(router, http.MethodPost, "/auth/register", gin.H{
		"email": "a@x.com", "name": "Bob", "password": "Pass123!",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"User already exists"}`, rec.Body.String())
}

func TestRegister_WeakPassword(t *testing.T) {
	router := newTestRouter(t)

	for _, pwd := range []string{"short1!", "NoDigits!", "NoSymbol1", "12345678!"} {
		rec := doJSON(router, http.MethodPost, "/auth/register", gin.H{
			"email": "a@x.com", "name": "Ann Lee", "password": pwd,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code, "password %q should be rejected", pwd)
	}
}

func TestRefresh_MissingCookie(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/auth/refresh", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"Invalid refresh token"}`, rec.Body.String())
}

func TestMe(t *testing.T) {
	router := newTestRouter(t)
	reg := register(t, router)
	access := cookieByName(t, reg, "access_token")

	rec := doJSON(router, http.MethodGet, "/auth/me", nil, access)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"a@x.com"`)

	noCookie := doJSON(router, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusUnauthorized, noCookie.Code)

	forged := doJSON(router, http.MethodGet, "/auth/me", nil,
		&http.Cookie{Name: "access_token", Value: "forged"})
	require.Equal(t, http.StatusUnauthorized, forged.Code)
}

func TestLogout(t *testing.T) {
	router := newTestRouter(t)
	reg := register(t, router)
	access := cookieByName(t, reg, "access_token")
	refresh := cookieByName(t, reg, "refresh_token")

	rec := doJSON(router, http.MethodDelete, "/auth/logout", nil, access)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"Logged out successfully"}`, rec.Body.String())

	// Both cookies are cleared.
	require.Empty(t, cookieByName(t, rec, "access_token").Value)
	require.Empty(t, cookieByName(t, rec, "refresh_token").Value)

	// The previously valid refresh token is permanently unusable.
	stale := doJSON(router, http.MethodPost, "/auth/refresh", nil, refresh)
	require.Equal(t, http.StatusUnauthorized, stale.Code)

	// Access token itself is still signed and unexpired, so /me keeps
	// working until it expires; only the refresh path is cut off.
	me := doJSON(router, http.MethodGet, "/auth/me", nil, access)
	require.Equal(t, http.StatusOK, me.Code)
}
