package handler

import (
	"time"

	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/BloggingApp/forum-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	sessionCtxKey       = "session"
	defaultClientOrigin = "http://localhost:3000"
)

type Handler struct {
	services *service.Service
	logger   *zap.Logger
}

func New(services *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	origin := viper.GetString("client.origin")
	if origin == "" {
		origin = defaultClientOrigin
	}

	r.Use(gin.Recovery(), h.loggerMiddleware)
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.authRegister)
			auth.POST("/login", h.authLogin)
			auth.POST("/logout", h.authMiddleware, h.authLogout)
			auth.POST("/logoutAll", h.authMiddleware, h.authLogoutAll)
			auth.GET("/me", h.authMiddleware, h.authMe)
		}

		v1.GET("/feed", h.notRequiredAuthMiddleware, h.postsFeed)
		v1.GET("/users/:userID/posts", h.notRequiredAuthMiddleware, h.postsAuthorFeed)

		subs := v1.Group("/subs")
		{
			subs.GET("", h.subsGetAll)
			subs.POST("", h.authMiddleware, h.subsCreate)
			subs.GET("/my", h.authMiddleware, h.subsGetMy)

			sub := subs.Group("/:name")
			{
				sub.GET("", h.subsGetByName)
				sub.GET("/posts", h.notRequiredAuthMiddleware, h.postsSubFeed)
				sub.POST("/posts", h.authMiddleware, h.postsCreate)
				sub.POST("/subscribe", h.authMiddleware, h.subsSubscribe)
				sub.DELETE("/subscribe", h.authMiddleware, h.subsUnsubscribe)
			}
		}

		post := v1.Group("/posts/:postID")
		{
			post.GET("", h.notRequiredAuthMiddleware, h.postsGetByID)
			post.PATCH("", h.authMiddleware, h.postsEdit)
			post.DELETE("", h.authMiddleware, h.postsDelete)
			post.POST("/vote", h.authMiddleware, h.postsVote)
			post.GET("/comments", h.commentsGet)
			post.POST("/comments", h.authMiddleware, h.commentsCreate)
		}

		v1.DELETE("/comments/:commentID", h.authMiddleware, h.commentsDelete)
	}

	return r
}

func (h *Handler) loggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next()

	h.logger.Info("request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("latency", time.Since(start)),
	)
}

// getSessionFromRequest returns nil for anonymous callers.
func (h *Handler) getSessionFromRequest(c *gin.Context) *model.Session {
	sessReq, ok := c.Get(sessionCtxKey)
	if !ok {
		return nil
	}

	sess, ok := sessReq.(*model.Session)
	if !ok {
		return nil
	}

	return sess
}
