package middleware

import (
	"net/http"
	"strings"

	"tourdesk/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userIDKey = "auth_user_id"
	roleKey   = "auth_role"
)

// Auth validates the bearer token and stashes the caller's identity on
// the context.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if raw == "" || raw == strings.TrimSpace(header) {
			abortAuth(c, http.StatusUnauthorized, "missing bearer token")
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abortAuth(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortAuth(c, http.StatusUnauthorized, "invalid token claims")
			return
		}

		userID, _ := claims["user_id"].(string)
		role, _ := claims["role"].(string)
		c.Set(userIDKey, userID)
		c.Set(roleKey, role)
		c.Next()
	}
}

// RequireRole gates a route group to one role. ADMIN passes everywhere;
// OPERATOR and ACCOUNTS are mutually exclusive.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		have := GetRole(c)
		if have == models.RoleAdmin || have == role {
			c.Next()
			return
		}
		abortAuth(c, http.StatusForbidden, "insufficient role")
	}
}

func GetUserID(c *gin.Context) string {
	if v, ok := c.Get(userIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func GetRole(c *gin.Context) string {
	if v, ok := c.Get(roleKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func abortAuth(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success":    false,
		"error":      message,
		"request_id": GetRequestID(c),
	})
}
