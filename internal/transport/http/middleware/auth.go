package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sj9102001/workly/internal/auth"
	"github.com/sj9102001/workly/internal/transport/http/response"
)

const userIDKey = "auth_user_id"

// Auth verifies the bearer token and stores the caller's user id on the
// context. Requests without a valid token never reach the handler.
func Auth(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.RespondError(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}
		userID, err := tokens.Parse(token)
		if err != nil {
			response.RespondError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated caller's id. Only valid behind Auth.
func UserID(c *gin.Context) uuid.UUID {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(uuid.UUID)
	return userID
}
