package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/civilregistry/backend/internal/infrastructure/config"
	"github.com/civilregistry/backend/internal/infrastructure/logger"
	"github.com/civilregistry/backend/internal/interfaces/http/dto"
)

// JWT context keys
const (
	OfficerExternalIDKey = "officer_external_id"
	AuthHeaderKey        = "Authorization"
	BearerPrefix         = "Bearer "
)

// JWTConfig holds configuration for the authentication middleware. Tokens are
// issued by the consular identity provider; the subject claim carries the
// officer's external ID.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
}

// NewJWTConfig builds middleware configuration from application config.
func NewJWTConfig(cfg config.JWTConfig) JWTConfig {
	return JWTConfig{
		Secret:   cfg.Secret,
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
		SkipPaths: []string{
			"/health",
			"/ready",
		},
	}
}

// JWTAuth creates the authentication middleware. On success the officer's
// external ID is stored in the gin context and in the request logger context.
func JWTAuth(cfg JWTConfig) gin.HandlerFunc {
	keyFunc := func(token *jwt.Token) (any, error) {
		return []byte(cfg.Secret), nil
	}

	parseOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		parseOpts = append(parseOpts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		parseOpts = append(parseOpts, jwt.WithAudience(cfg.Audience))
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Missing token")
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc, parseOpts...)
		if err != nil || !token.Valid {
			code := dto.ErrCodeTokenInvalid
			if errors.Is(err, jwt.ErrTokenExpired) {
				code = dto.ErrCodeTokenExpired
			}
			abortUnauthorized(c, code, "Token validation failed")
			return
		}
		if claims.Subject == "" {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Token has no subject")
			return
		}

		c.Set(OfficerExternalIDKey, claims.Subject)
		ctx, _ := logger.WithOfficerID(c.Request.Context(), logger.FromContext(c.Request.Context()), claims.Subject)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetOfficerExternalID returns the authenticated officer's external ID, or an
// empty string on unauthenticated routes.
func GetOfficerExternalID(c *gin.Context) string {
	return c.GetString(OfficerExternalIDKey)
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}
