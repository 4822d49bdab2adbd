package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Share_Space/internal/service"
)

type SpaceHandler struct {
	svc *service.SpaceService
}

func NewSpaceHandler(svc *service.SpaceService) *SpaceHandler {
	return &SpaceHandler{svc: svc}
}

// Get 个人空间，只展示已发布内容
func (h *SpaceHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Space(c.Param("uid")))
}
