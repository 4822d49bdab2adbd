package router

import (
	"github.com/gin-gonic/gin"

	"Share_Space/internal/bootstrap"
	"Share_Space/internal/handler"
	"Share_Space/internal/logger"
	"Share_Space/internal/middleware"
)

func InitRouter(app *bootstrap.App) *gin.Engine {
	r := gin.New()
	r.Use(logger.Gin(app.Log.Named("http")))

	user := handler.NewUserHandler(app.Users, app.Prefs)
	post := handler.NewPostHandler(app.Posts)
	media := handler.NewMediaHandler(app.Media)
	gallery := handler.NewGalleryHandler(app.Gallery)
	guestbook := handler.NewGuestbookHandler(app.Guestbook)
	space := handler.NewSpaceHandler(app.Space)
	admin := handler.NewAdminHandler(app.Review, app.Users, app.Space)

	auth := middleware.AuthMiddleware(app.Users)
	optional := middleware.OptionalAuth(app.Users)

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(auth)
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.GET("/me", user.Me)
		authGroup.PUT("/profile", user.UpdateProfile)
		authGroup.GET("/theme", user.Theme)
		authGroup.PUT("/theme", user.SetTheme)
	}

	// 帖子相关接口，浏览无需登录
	postGroup := r.Group("/api/post")
	{
		postGroup.GET("/timeline", post.Timeline)
		postGroup.GET("/mine", auth, post.Mine)
		postGroup.GET("/:id", optional, post.Get)
		postGroup.POST("/create", auth, post.CreatePost)
		postGroup.POST("/:id/comment", auth, post.Comment)
		postGroup.DELETE("/:id", auth, post.DeletePost)
	}

	// 影音记录
	mediaGroup := r.Group("/api/media")
	{
		mediaGroup.GET("/list", media.List)
		mediaGroup.GET("/:id", optional, media.Get)
		mediaGroup.POST("/create", auth, media.Create)
		mediaGroup.POST("/:id/comment", auth, media.Comment)
		mediaGroup.DELETE("/:id", auth, media.Delete)
	}

	// 画廊
	galleryGroup := r.Group("/api/gallery")
	{
		galleryGroup.GET("/list", gallery.List)
		galleryGroup.POST("/create", auth, gallery.Create)
		galleryGroup.DELETE("/:id", auth, gallery.Delete)
	}

	// 留言板
	guestbookGroup := r.Group("/api/guestbook")
	{
		guestbookGroup.GET("/list", guestbook.List)
		guestbookGroup.POST("/create", auth, guestbook.Create)
		guestbookGroup.DELETE("/:id", auth, guestbook.Delete)
	}

	r.GET("/api/space/:uid", space.Get)

	// 管理后台
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(auth, middleware.AdminOnly())
	{
		adminGroup.GET("/pending", admin.Pending)
		adminGroup.POST("/:kind/:id/approve", admin.Approve)
		adminGroup.POST("/:kind/:id/reject", admin.Reject)
		adminGroup.GET("/users", admin.Users)
		adminGroup.POST("/users/:uid/ban", admin.Ban)
		adminGroup.DELETE("/users/:uid", admin.DeleteUser)
	}

	return r
}
