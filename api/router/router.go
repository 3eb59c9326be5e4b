package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"media-planner/api/handlers"
	"media-planner/api/middleware"
	"media-planner/assetstore"
	"media-planner/auth"
	"media-planner/db"
	"media-planner/services"
)

// Deps bundles everything the routes need; cmd/server wires it up once.
type Deps struct {
	AuthService *services.AuthService
	PostService *services.PostService
	Uploader    assetstore.Uploader
	JWTManager  *auth.JWTManager
	Users       services.UserStore
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := db.Client().Ping(ctx, readpref.Primary()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", handlers.RegisterHandler(deps.AuthService))
		authGroup.POST("/login", handlers.LoginHandler(deps.AuthService))
		authGroup.GET("/me", middleware.RequireUser(deps.JWTManager, deps.Users), handlers.MeHandler())
	}

	posts := r.Group("/posts", middleware.RequireUser(deps.JWTManager, deps.Users))
	{
		posts.GET("", handlers.ListPostsHandler(deps.PostService))
		posts.POST("", handlers.CreatePostHandler(deps.PostService))
		posts.POST("/upload", handlers.UploadImageHandler(deps.Uploader))
		posts.PUT("/:id", handlers.UpdatePostHandler(deps.PostService))
		posts.DELETE("/:id", handlers.DeletePostHandler(deps.PostService))
		posts.POST("/:id/send-now", handlers.SendNowHandler(deps.PostService))
		posts.POST("/check-pending-posts", handlers.CheckPendingHandler(deps.PostService))
	}

	return r
}
