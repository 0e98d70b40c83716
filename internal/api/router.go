package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/inventra/internal/middleware"
	"github.com/lalith-99/inventra/internal/observ"
	"go.uber.org/zap"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type RouterConfig struct {
	Logger    *zap.Logger
	Metrics   *observ.Metrics
	JWTSecret string
	Health    HealthChecker

	Auth        *AuthHandler
	Users       *UserHandler
	Inventories *InventoryHandler
	Access      *AccessHandler
	Items       *ItemHandler
	Search      *SearchHandler
	Discussion  *DiscussionHandler

	// WebSocket upgrades GET /v1/ws.
	WebSocket gin.HandlerFunc
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	v1 := r.Group("/v1")

	// Public. Load balancers hit health without credentials.
	v1.GET("/health", healthHandler(cfg.Health))
	v1.POST("/auth/signup", cfg.Auth.Signup)
	v1.POST("/auth/login", cfg.Auth.Login)
	v1.GET("/search", cfg.Search.Search)
	v1.GET("/inventories", cfg.Inventories.List)
	v1.GET("/inventories/:id/posts", cfg.Discussion.History)

	// Guests allowed, but a token identifies the viewer.
	optional := middleware.OptionalAuth(cfg.JWTSecret)
	v1.GET("/inventories/:id", optional, cfg.Inventories.Get)
	v1.GET("/ws", optional, cfg.WebSocket)

	authed := v1.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
	authed.GET("/users/me", cfg.Users.GetMe)
	authed.POST("/inventories", cfg.Inventories.Create)
	authed.DELETE("/inventories/:id", cfg.Inventories.Delete)
	authed.GET("/inventories/:id/access", cfg.Access.List)
	authed.POST("/inventories/:id/access", cfg.Access.Grant)
	authed.DELETE("/inventories/:id/access/:userId", cfg.Access.Revoke)
	authed.POST("/inventories/:id/items", cfg.Items.Create)
	authed.DELETE("/items/:id", cfg.Items.Delete)
	authed.POST("/items/:id/like", cfg.Items.Like)

	return r
}

func healthHandler(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if checker != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := checker.Health(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
