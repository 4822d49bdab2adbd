package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"Share_Space/internal/middleware"
	"Share_Space/internal/model"
	"Share_Space/internal/pkg"
	"Share_Space/internal/service"
)

// fail maps service errors to HTTP statuses. Anything unknown is a 500,
// which covers failed slot writes.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	body := gin.H{"msg": err.Error()}

	var banned *service.BannedError
	switch {
	case errors.As(err, &banned):
		status = http.StatusForbidden
		body["bannedUntil"] = banned.Until
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidTheme):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrDuplicateEmail):
		status = http.StatusConflict
	case errors.Is(err, service.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrSessionExpired),
		errors.Is(err, pkg.ErrRefreshExpired),
		errors.Is(err, pkg.ErrRefreshInvalid),
		errors.Is(err, pkg.ErrTokenParseFailure):
		status = http.StatusUnauthorized
	default:
		_ = c.Error(err)
		body["msg"] = "internal error"
	}
	c.JSON(status, body)
}

func badParams(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
}

// notFound answers requests for ids that do not exist (or are hidden).
func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
}

func actor(c *gin.Context) *model.User {
	return middleware.CurrentUser(c)
}
