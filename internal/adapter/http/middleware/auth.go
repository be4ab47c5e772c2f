package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"taskhub/internal/adapter/http/helper"
	"taskhub/pkg/auth"
)

const authUserKey = "auth-user"

// AuthUser is the identity extracted from a verified token.
type AuthUser struct {
	ID    int
	UUID  string
	Email string
}

func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" {
			helper.SendUnauthorizedError(c, "UNAUTHORIZED", "Authorization header is required")
			c.Abort()
			return
		}

		if !strings.HasPrefix(bearer, "Bearer ") {
			helper.SendUnauthorizedError(c, "UNAUTHORIZED", "Invalid authorization format")
			c.Abort()
			return
		}

		claims, err := tokens.VerifyToken(strings.TrimPrefix(bearer, "Bearer "))

		if err != nil {
			code := "TOKEN_INVALID"

			if errors.Is(err, auth.ErrTokenExpired) {
				code = "TOKEN_EXPIRED"
			}

			helper.SendUnauthorizedError(c, code, "Unauthorized request")
			c.Abort()
			return
		}

		user := AuthUser{
			ID:    claims.UserID,
			UUID:  claims.UserUUID,
			Email: claims.Email,
		}

		c.Set(authUserKey, user)
		c.Set("x-user-id", user.ID)
		c.Next()
	}
}

func CurrentUser(c *gin.Context) AuthUser {
	if value, exists := c.Get(authUserKey); exists {
		if user, ok := value.(AuthUser); ok {
			return user
		}
	}

	return AuthUser{}
}
