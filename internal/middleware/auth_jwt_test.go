package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Divarzky/jajanan-rizky/internal/config"
	"github.com/Divarzky/jajanan-rizky/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":      "u-1",
		"username": "admin",
		"iat":      now.Unix(),
		"exp":      now.Add(time.Hour).Unix(),
	}
}

func runGuard(t *testing.T, authz string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	cfg := config.Config{JWTSecret: testSecret}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := middleware.AuthJWT(cfg)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, c
}

func TestAuthJWT_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, validClaims())

	rec, c := runGuard(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", c.Get(middleware.CtxUserIDKey))
	assert.Equal(t, "admin", c.Get(middleware.CtxUsernameKey))
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec, _ := runGuard(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	rec, _ := runGuard(t, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token := signToken(t, "other_secret", validClaims())

	rec, _ := runGuard(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_Expired(t *testing.T) {
	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := signToken(t, testSecret, claims)

	rec, _ := runGuard(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MissingUsernameClaim(t *testing.T) {
	claims := validClaims()
	delete(claims, "username")
	token := signToken(t, testSecret, claims)

	rec, _ := runGuard(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
