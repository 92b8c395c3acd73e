package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Hamzahxou/api-x/pkg/response"
)

const (
	SubjectKey    = "subject"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoVerifyKey  = errors.New("no verification key configured")
)

// VerifierConfig holds the material needed to verify session tokens issued
// by the external identity provider. Exactly one of PublicKeyPEM (RS256,
// the provider's published key) or HMACSecret (HS256, dev/test setups)
// must be set.
type VerifierConfig struct {
	Issuer       string `mapstructure:"issuer"`
	PublicKeyPEM string `mapstructure:"public_key_pem"`
	HMACSecret   string `mapstructure:"hmac_secret"`
}

// TokenVerifier validates identity-provider session tokens and extracts the
// opaque subject identifier. It never issues tokens.
type TokenVerifier struct {
	cfg    VerifierConfig
	parser *jwt.Parser
	keyFn  jwt.Keyfunc
}

// NewTokenVerifier creates a verifier from the given config.
func NewTokenVerifier(cfg VerifierConfig) (*TokenVerifier, error) {
	var (
		keyFn   jwt.Keyfunc
		methods []string
	)

	switch {
	case cfg.PublicKeyPEM != "":
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to parse identity provider public key: %w", err)
		}
		keyFn = func(t *jwt.Token) (interface{}, error) { return pub, nil }
		methods = []string{jwt.SigningMethodRS256.Alg()}

	case cfg.HMACSecret != "":
		secret := []byte(cfg.HMACSecret)
		keyFn = func(t *jwt.Token) (interface{}, error) { return secret, nil }
		methods = []string{jwt.SigningMethodHS256.Alg()}

	default:
		return nil, ErrNoVerifyKey
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods(methods)}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &TokenVerifier{
		cfg:    cfg,
		parser: jwt.NewParser(opts...),
		keyFn:  keyFn,
	}, nil
}

// Verify parses and validates a session token, returning the subject claim.
func (v *TokenVerifier) Verify(token string) (string, error) {
	claims := jwt.RegisteredClaims{}
	parsed, err := v.parser.ParseWithClaims(token, &claims, v.keyFn)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// AuthMiddleware guards routes that require an authenticated caller.
type AuthMiddleware struct {
	verifier *TokenVerifier
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(verifier *TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth returns a Gin middleware that validates the bearer token and
// stores the external subject identifier in the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Unauthorized(c, "invalid authorization format")
			c.Abort()
			return
		}

		subject, err := m.verifier.Verify(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			response.Unauthorized(c, "invalid or expired session token")
			c.Abort()
			return
		}

		c.Set(SubjectKey, subject)
		c.Next()
	}
}

// GetSubject extracts the authenticated subject identifier from Gin context.
func GetSubject(c *gin.Context) string {
	if s, exists := c.Get(SubjectKey); exists {
		return s.(string)
	}
	return ""
}
