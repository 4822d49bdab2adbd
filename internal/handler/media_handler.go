package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Share_Space/internal/service"
)

type MediaHandler struct {
	svc *service.MediaService
}

func NewMediaHandler(svc *service.MediaService) *MediaHandler {
	return &MediaHandler{svc: svc}
}

func (h *MediaHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"list": h.svc.Published()})
}

func (h *MediaHandler) Get(c *gin.Context) {
	item, ok := h.svc.Get(actor(c), c.Param("id"))
	if !ok {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MediaHandler) Create(c *gin.Context) {
	var req service.MediaDraft
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

func (h *MediaHandler) Comment(c *gin.Context) {
	var req CommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}
	comment, ok, err := h.svc.AddComment(c.Request.Context(), actor(c), c.Param("id"), req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	if !ok {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *MediaHandler) Delete(c *gin.Context) {
	if _, err := h.svc.Remove(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}
