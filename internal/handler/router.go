package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hamzahxou/api-x/pkg/middleware"
)

// RegisterRoutes wires all API routes onto the engine. Public reads go
// unguarded; every mutation requires an authenticated subject.
func RegisterRoutes(
	r *gin.Engine,
	auth *middleware.AuthMiddleware,
	users *UserHandler,
	posts *PostHandler,
	comments *CommentHandler,
	notifications *NotificationHandler,
) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := r.Group("/api")
	guard := auth.RequireAuth()

	u := api.Group("/users")
	{
		u.GET("/profile/:username", users.GetProfile)
		u.POST("/sync", guard, users.Sync)
		u.GET("/me", guard, users.GetMe)
		u.PUT("/profile", guard, users.UpdateProfile)
		u.POST("/follow/:targetUserId", guard, users.Follow)
	}

	p := api.Group("/posts")
	{
		p.GET("", posts.List)
		p.GET("/:postId", posts.Get)
		p.GET("/user/:username", posts.ListByUser)
		p.POST("", guard, posts.Create)
		p.POST("/:postId/like", guard, posts.ToggleLike)
		p.DELETE("/:postId", guard, posts.Delete)
	}

	c := api.Group("/comments")
	{
		c.GET("/post/:postId", comments.ListByPost)
		c.POST("/post/:postId", guard, comments.Create)
		c.DELETE("/:commentId", guard, comments.Delete)
	}

	n := api.Group("/notifications", guard)
	{
		n.GET("", notifications.List)
		n.DELETE("/:notificationId", notifications.Delete)
	}
}
