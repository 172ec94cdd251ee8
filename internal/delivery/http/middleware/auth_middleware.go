package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"hirehub-backend/internal/delivery/http/response"
	"hirehub-backend/internal/domain"
	"hirehub-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer access token and loads the caller's
// identity into the request context. Refresh tokens presented here are
// rejected: the typ claim must be "access".
func AuthMiddleware(tokens *token.Manager, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// Fall back to cookie for browser clients
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		claims, err := tokens.Verify(tokenString, token.KindAccess)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		// Fetch fresh user data so a deleted user cannot ride out an
		// unexpired token, and the role comes from the database rather
		// than a possibly stale claim.
		user, err := authUC.GetCurrentUser(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), strconv.FormatInt(user.ID, 10))
		c.Set(string(domain.KeyUserEmail), user.Email)
		c.Set(string(domain.KeyUserRole), user.Role)

		c.Next()
	}
}

// RequireRole gates a route group to a single role. Runs after
// AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(string(domain.KeyUserRole)) != role {
			response.Error(c, http.StatusForbidden, "Insufficient role for this resource", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID extracts the authenticated user's ID set by AuthMiddleware.
func UserID(c *gin.Context) int64 {
	id, _ := strconv.ParseInt(c.GetString(string(domain.KeyUserID)), 10, 64)
	return id
}
