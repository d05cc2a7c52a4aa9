package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests-only-0001"

func signToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func setupAuthRouter(cfg JWTConfig) (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(JWTAuth(cfg))

	var seenOfficer string
	engine.GET("/api/v1/protected", func(c *gin.Context) {
		seenOfficer = GetOfficerExternalID(c)
		c.Status(http.StatusOK)
	})
	engine.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine, &seenOfficer
}

func defaultTestConfig() JWTConfig {
	return JWTConfig{
		Secret:    testSecret,
		Issuer:    "consular-idp",
		SkipPaths: []string{"/health"},
	}
}

func TestJWTAuthExtractsOfficerExternalID(t *testing.T) {
	engine, seenOfficer := setupAuthRouter(defaultTestConfig())

	token := signToken(t, jwt.RegisteredClaims{
		Subject:   "mmartin@consulat",
		Issuer:    "consular-idp",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mmartin@consulat", *seenOfficer)
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	engine, _ := setupAuthRouter(defaultTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	engine, _ := setupAuthRouter(defaultTestConfig())

	token := signToken(t, jwt.RegisteredClaims{
		Subject:   "mmartin@consulat",
		Issuer:    "consular-idp",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_TOKEN_EXPIRED")
}

func TestJWTAuthRejectsWrongIssuer(t *testing.T) {
	engine, _ := setupAuthRouter(defaultTestConfig())

	token := signToken(t, jwt.RegisteredClaims{
		Subject:   "mmartin@consulat",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsMissingSubject(t *testing.T) {
	engine, _ := setupAuthRouter(defaultTestConfig())

	token := signToken(t, jwt.RegisteredClaims{
		Issuer:    "consular-idp",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthSkipsConfiguredPaths(t *testing.T) {
	engine, _ := setupAuthRouter(defaultTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDPreservedWhenPresent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
