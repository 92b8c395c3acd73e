package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamzahxou/api-x/pkg/response"
)

const testSecret = "middleware-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newVerifier(t *testing.T, cfg VerifierConfig) *TokenVerifier {
	t.Helper()
	v, err := NewTokenVerifier(cfg)
	require.NoError(t, err)
	return v
}

func sign(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestNewTokenVerifierRequiresKey(t *testing.T) {
	_, err := NewTokenVerifier(VerifierConfig{})
	assert.ErrorIs(t, err, ErrNoVerifyKey)
}

func TestVerifyValidToken(t *testing.T) {
	v := newVerifier(t, VerifierConfig{HMACSecret: testSecret})

	subject, err := v.Verify(sign(t, jwt.RegisteredClaims{
		Subject:   "ext-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}))
	require.NoError(t, err)
	assert.Equal(t, "ext-1", subject)
}

func TestVerifyExpiredToken(t *testing.T) {
	v := newVerifier(t, VerifierConfig{HMACSecret: testSecret})

	_, err := v.Verify(sign(t, jwt.RegisteredClaims{
		Subject:   "ext-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyEmptySubject(t *testing.T) {
	v := newVerifier(t, VerifierConfig{HMACSecret: testSecret})

	_, err := v.Verify(sign(t, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyIssuerMismatch(t *testing.T) {
	v := newVerifier(t, VerifierConfig{HMACSecret: testSecret, Issuer: "https://id.example.com"})

	_, err := v.Verify(sign(t, jwt.RegisteredClaims{
		Subject:   "ext-1",
		Issuer:    "https://evil.example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	v := newVerifier(t, VerifierConfig{HMACSecret: "other-secret"})

	_, err := v.Verify(sign(t, jwt.RegisteredClaims{
		Subject:   "ext-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func requireAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	v := newVerifier(t, VerifierConfig{HMACSecret: testSecret})

	r := gin.New()
	r.GET("/protected", NewAuthMiddleware(v).RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": GetSubject(c)})
	})
	return r
}

func TestRequireAuthMissingHeader(t *testing.T) {
	r := requireAuthRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
}

func TestRequireAuthBadScheme(t *testing.T) {
	r := requireAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthSetsSubject(t *testing.T) {
	r := requireAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, jwt.RegisteredClaims{
		Subject:   "ext-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ext-42")
}
