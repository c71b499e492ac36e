package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"transfleet/internal/domain"
	"transfleet/internal/redis"
)

// sessionContextKey is the gin context key the resolved session is
// stored under.
const sessionContextKey = "session"

// AuthMiddleware returns middleware that resolves the Bearer token to
// a stored session and aborts unauthenticated requests.
func AuthMiddleware(sessions redis.SessionStoreInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		session, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			return
		}
		if session == nil || !session.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set(sessionContextKey, *session)
		c.Next()
	}
}

// SessionFrom returns the session stored by AuthMiddleware.
func SessionFrom(c *gin.Context) (domain.Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return domain.Session{}, false
	}
	session, ok := v.(domain.Session)
	return session, ok
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
