package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Share_Space/internal/service"
)

type GalleryHandler struct {
	svc *service.GalleryService
}

func NewGalleryHandler(svc *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{svc: svc}
}

func (h *GalleryHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"list": h.svc.Published()})
}

func (h *GalleryHandler) Create(c *gin.Context) {
	var req service.ArtDraft
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}
	sub, err := h.svc.Add(c.Request.Context(), actor(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	if _, err := h.svc.Remove(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}
