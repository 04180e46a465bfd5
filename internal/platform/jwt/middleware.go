package jwtmw

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	ContextUsername = "username"
	ContextUserID   = "userID"
)

// Verifier verifies a bearer token and extracts its subject.
type Verifier interface {
	UsernameFromToken(token string) (string, error)
}

// UserFinder resolves a token subject to a registered user's ID.
type UserFinder interface {
	FindIDByUsername(ctx context.Context, username string) (uuid.UUID, error)
}

// AuthRequired returns a Gin middleware function that validates bearer tokens
// and restricts access to authenticated, registered users only.
// Dependencies are injected explicitly; nothing is read from the environment
// at request time.
func AuthRequired(tokens Verifier, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		username, err := tokens.UsernameFromToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			return
		}

		// トークンの主体が登録済みユーザーであることを確認する
		userID, err := users.FindIDByUsername(c.Request.Context(), username)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			return
		}

		c.Set(ContextUsername, username)
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user's ID set by AuthRequired.
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
