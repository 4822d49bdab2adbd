package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"Share_Space/internal/model"
	"Share_Space/internal/pkg"
	"Share_Space/internal/service"
)

const ContextUserKey = "current_user"

var (
	errMissingHeader = errors.New("missing authorization header")
	errHeaderFormat  = errors.New("invalid authorization format")
)

// AuthMiddleware requires a valid access token whose session slot still exists.
func AuthMiddleware(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authenticate(c, users)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
			return
		}
		// 注入当前用户快照
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// OptionalAuth resolves the user when a token is sent and lets anonymous
// requests through otherwise.
func OptionalAuth(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if user, err := authenticate(c, users); err == nil {
				c.Set(ContextUserKey, user)
			}
		}
		c.Next()
	}
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": service.ErrPermissionDenied.Error()})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the session user or nil for anonymous requests.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(model.User)
	if !ok {
		return nil
	}
	return &user
}

func authenticate(c *gin.Context, users *service.UserService) (model.User, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return model.User{}, errMissingHeader
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return model.User{}, errHeaderFormat
	}

	claims, err := pkg.ParseAccess(parts[1])
	if err != nil {
		return model.User{}, err
	}

	// 会话槽位被清除（登出/封禁/删号）后 token 立即失效
	return users.Current(c.Request.Context(), claims.UID)
}
