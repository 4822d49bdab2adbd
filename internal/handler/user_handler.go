package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Share_Space/internal/service"
)

type UserHandler struct {
	svc   *service.UserService
	prefs *service.PreferenceService
}

// RegisterReq 注册请求体
type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func NewUserHandler(svc *service.UserService, prefs *service.PreferenceService) *UserHandler {
	return &UserHandler{svc: svc, prefs: prefs}
}

// Register 注册接口，首个注册用户为管理员
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}
	sess, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Login 登录接口
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}
	sess, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), actor(c).UID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// TokenRefresh 利用refresh来更新access
func (h *UserHandler) TokenRefresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}
	tokens, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, actor(c))
}

// UpdateProfile 修改自己的资料
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var patch service.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badParams(c)
		return
	}
	me := actor(c)
	user, err := h.svc.UpdateProfile(c.Request.Context(), me, me.UID, patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Theme(c *gin.Context) {
	theme, err := h.prefs.Theme(c.Request.Context(), actor(c).UID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

func (h *UserHandler) SetTheme(c *gin.Context) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}
	if err := h.prefs.SetTheme(c.Request.Context(), actor(c).UID, req.Theme); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}
