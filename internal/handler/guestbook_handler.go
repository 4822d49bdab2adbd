package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Share_Space/internal/service"
)

type GuestbookHandler struct {
	svc *service.GuestbookService
}

type MessageReq struct {
	Sender string `json:"sender"`
	Text   string `json:"text" binding:"required"`
}

func NewGuestbookHandler(svc *service.GuestbookService) *GuestbookHandler {
	return &GuestbookHandler{svc: svc}
}

func (h *GuestbookHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"list": h.svc.List()})
}

// Create 留言，署名为空时使用当前用户名
func (h *GuestbookHandler) Create(c *gin.Context) {
	var req MessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}
	me := actor(c)
	if req.Sender == "" {
		req.Sender = me.Name
	}
	msg, err := h.svc.Add(c.Request.Context(), me, req.Sender, req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *GuestbookHandler) Delete(c *gin.Context) {
	if _, err := h.svc.Remove(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}
