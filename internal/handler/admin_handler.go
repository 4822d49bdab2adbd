package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Share_Space/internal/model"
	"Share_Space/internal/service"
)

type AdminHandler struct {
	review *service.ReviewService
	users  *service.UserService
	space  *service.SpaceService
}

type BanReq struct {
	Days *int `json:"days" binding:"required"`
}

func NewAdminHandler(review *service.ReviewService, users *service.UserService, space *service.SpaceService) *AdminHandler {
	return &AdminHandler{review: review, users: users, space: space}
}

// Pending 待审核队列
func (h *AdminHandler) Pending(c *gin.Context) {
	q := h.space.PendingQueue()
	c.JSON(http.StatusOK, gin.H{"queue": q, "total": q.Len()})
}

func (h *AdminHandler) Approve(c *gin.Context) {
	changed, err := h.review.Approve(c.Request.Context(), actor(c), model.ContentKind(c.Param("kind")), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "changed": changed})
}

// Reject 驳回即删除
func (h *AdminHandler) Reject(c *gin.Context) {
	changed, err := h.review.Reject(c.Request.Context(), actor(c), model.ContentKind(c.Param("kind")), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "changed": changed})
}

func (h *AdminHandler) Users(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"list": h.users.Users()})
}

// Ban days 为 0 时解封
func (h *AdminHandler) Ban(c *gin.Context) {
	var req BanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}
	if err := h.users.Ban(c.Request.Context(), actor(c), c.Param("uid"), *req.Days); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	removed, err := h.users.DeleteUser(c.Request.Context(), actor(c), c.Param("uid"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "changed": removed})
}
