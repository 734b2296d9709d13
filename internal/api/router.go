package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dazeez1/blog-api/internal/auth"
	"github.com/dazeez1/blog-api/internal/cache"
	"github.com/dazeez1/blog-api/pkg/config"
	"github.com/dazeez1/blog-api/pkg/logging"
)

// Router sets up API routes
type Router struct {
	authAPI    *AuthAPI
	postAPI    *PostAPI
	commentAPI *CommentAPI
	issuer     *auth.TokenIssuer
	logger     *zap.Logger
}

// NewRouter creates a new API router over the given stores
func NewRouter(users UserStore, posts PostStore, comments CommentStore, redisCache *cache.Cache, cfg *config.Config) *Router {
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	return &Router{
		authAPI:    NewAuthAPI(users, issuer, cfg.Auth.BcryptCost),
		postAPI:    NewPostAPI(posts, users, redisCache, cfg.API),
		commentAPI: NewCommentAPI(comments, posts, cfg.API),
		issuer:     issuer,
		logger:     logging.WithComponent("api-router"),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(requestLogger(r.logger))

	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	api := engine.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/signup", r.authAPI.Signup)
		authRoutes.POST("/login", r.authAPI.Login)
		authRoutes.GET("/me", auth.RequireAuth(r.issuer), r.authAPI.Me)
		authRoutes.PUT("/me", auth.RequireAuth(r.issuer), r.authAPI.UpdateMe)
	}

	posts := api.Group("/posts")
	{
		posts.POST("", auth.RequireAuth(r.issuer), r.postAPI.Create)
		posts.GET("", auth.OptionalAuth(r.issuer), r.postAPI.List)
		posts.GET("/my-posts", auth.RequireAuth(r.issuer), r.postAPI.MyPosts)
		posts.GET("/:id", auth.OptionalAuth(r.issuer), r.postAPI.Get)
		posts.PUT("/:id", auth.RequireAuth(r.issuer), r.postAPI.Update)
		posts.DELETE("/:id", auth.RequireAuth(r.issuer), r.postAPI.Delete)

		posts.POST("/:id/comments", auth.RequireAuth(r.issuer), r.commentAPI.Add)
		posts.GET("/:id/comments", r.commentAPI.ListForPost)
	}

	comments := api.Group("/comments")
	{
		comments.GET("/my-comments", auth.RequireAuth(r.issuer), r.commentAPI.MyComments)
		comments.PUT("/:id", auth.RequireAuth(r.issuer), r.commentAPI.Update)
		comments.DELETE("/:id", auth.RequireAuth(r.issuer), r.commentAPI.Delete)
	}
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "OK",
		"service": "blog-api",
	})
}

// requestLogger logs each request with method, path, status and latency
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
