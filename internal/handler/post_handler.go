package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Share_Space/internal/model"
	"Share_Space/internal/service"
)

type PostHandler struct {
	svc *service.PostService
}

type CommentReq struct {
	Text string `json:"text" binding:"required"`
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// Timeline 时间线，section 为空时返回全部分区
func (h *PostHandler) Timeline(c *gin.Context) {
	section := model.Section(c.Query("section"))
	if section != "" && !section.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid section"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": h.svc.Timeline(section, c.Query("q"))})
}

// Get 查看帖子详情，待审核帖子仅作者和管理员可见
func (h *PostHandler) Get(c *gin.Context) {
	post, ok := h.svc.Get(actor(c), c.Param("id"))
	if !ok {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost 创建帖子接口，非管理员进入待审核
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req service.PostDraft
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}
	sub, err := h.svc.Publish(c.Request.Context(), actor(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *PostHandler) Comment(c *gin.Context) {
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

// DeletePost 删除帖子接口
func (h *PostHandler) DeletePost(c *gin.Context) {
	if _, err := h.svc.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

func (h *PostHandler) Mine(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"list": h.svc.Mine(actor(c).UID)})
}
