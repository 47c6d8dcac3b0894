package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys for token data
const (
	ContextKeyEmail  = "auth_email"
	ContextKeyClaims = "auth_claims"
)

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	ValidateToken(token string) (*Claims, error)
}

// Middleware authenticates requests that carry a bearer token.
type Middleware struct {
	verifier TokenVerifier
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(verifier TokenVerifier) *Middleware {
	return &Middleware{verifier: verifier}
}

// Handler returns a Gin middleware that attaches token claims to the context
// when a valid bearer token is present. Requests without one pass through.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := m.tryBearerAuth(c); claims != nil {
			c.Set(ContextKeyEmail, claims.Email)
			c.Set(ContextKeyClaims, claims)
		}
		c.Next()
	}
}

// RequireAuth returns a middleware that rejects requests without valid claims.
// It must run after Handler.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		c.Next()
	}
}

// tryBearerAuth extracts and verifies the token from "Authorization: Bearer <token>".
func (m *Middleware) tryBearerAuth(c *gin.Context) *Claims {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil
	}

	claims, err := m.verifier.ValidateToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil
	}
	return claims
}

// GetEmail retrieves the authenticated email from the context.
func GetEmail(c *gin.Context) string {
	if v, exists := c.Get(ContextKeyEmail); exists {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}

// GetClaims retrieves the verified token claims from the context.
func GetClaims(c *gin.Context) *Claims {
	if v, exists := c.Get(ContextKeyClaims); exists {
		if claims, ok := v.(*Claims); ok {
			return claims
		}
	}
	return nil
}

// IsAuthenticated returns true if the request carried a valid token.
func IsAuthenticated(c *gin.Context) bool {
	return GetEmail(c) != ""
}
