package types

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/promptdeck/pkg/commons"
)

const principleContextKey = "session.principle"

// SessionMiddleware validates the bearer token and stores the resolved
// principle on the request context. Requests without a valid session
// get 401 before any handler runs.
func SessionMiddleware(secret string, logger commons.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims,
			func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
		if err != nil || !token.Valid {
			logger.Debugf("rejected session token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(principleContextKey, claims.ToPrinciple())
		c.Next()
	}
}

// CurrentPrinciple returns the authenticated caller, or an error when
// the route was reached without the session middleware.
func CurrentPrinciple(c *gin.Context) (*SessionPrinciple, error) {
	value, ok := c.Get(principleContextKey)
	if !ok {
		return nil, fmt.Errorf("no session on request: %w", commons.ErrPermission)
	}
	principle, ok := value.(*SessionPrinciple)
	if !ok {
		return nil, fmt.Errorf("malformed session on request: %w", commons.ErrPermission)
	}
	return principle, nil
}
