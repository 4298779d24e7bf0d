package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/crewzy/workforce-api/internal/auth"
	apierrors "github.com/crewzy/workforce-api/internal/errors"
	"github.com/crewzy/workforce-api/internal/models"
	"github.com/crewzy/workforce-api/internal/repository"
)

// Context keys for the authenticated identity.
const (
	ContextUserIDKey    = "user_id"
	ContextUserEmailKey = "user_email"
	ContextUserRoleKey  = "user_role"
)

// Authenticate verifies the request token and attaches the decoded identity
// plus a freshly-looked-up role to the context. The token may arrive in the
// Authorization header (Bearer or raw), the x-access-token header, a "token"
// body field, or a "token" query parameter, checked in that order. The wide
// acceptance is a compatibility requirement, not a recommendation.
func Authenticate(tokens *auth.Manager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			apierrors.Unauthorized(c, "No token provided")
			c.Abort()
			return
		}

		claims, err := tokens.VerifyToken(tokenString)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		// Re-fetch the user so the role is current and deleted users are
		// locked out even while their token is still unexpired.
		user, err := users.FindByID(claims.UserID)
		if err != nil {
			apierrors.Unauthorized(c, "User not found")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserEmailKey, user.Email)
		c.Set(ContextUserRoleKey, user.Role)
		c.Next()
	}
}

// RequireRoles rejects with 403 when the authenticated role is not in the set.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "")
		c.Abort()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// GetUserRole retrieves the current user role from context
func GetUserRole(c *gin.Context) (models.Role, bool) {
	value, exists := c.Get(ContextUserRoleKey)
	if !exists {
		return "", false
	}
	role, ok := value.(models.Role)
	return role, ok
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimPrefix(header, "Bearer ")
		}
		return header
	}

	if header := c.GetHeader("x-access-token"); header != "" {
		return header
	}

	if token := tokenFromBody(c); token != "" {
		return token
	}

	return c.Query("token")
}

// tokenFromBody peeks at a JSON body for a "token" field, restoring the body
// afterwards so handlers can still bind it.
func tokenFromBody(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}

	data, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil || len(data) == 0 {
		return ""
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Token
}
