package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"ledgerdash/internal/admin"
	"ledgerdash/internal/auth"
	"ledgerdash/internal/config"
	"ledgerdash/internal/gateway"
	"ledgerdash/internal/report"
	"ledgerdash/internal/wallet"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	config *config.Config
}

// New wires the dashboard routes. rdb may be nil, in which case mutations
// are not guarded against concurrent submission.
func New(cfg *config.Config, gw *gateway.Client, rdb redis.Cmdable) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), RequestIDMiddleware(), RequestLoggingMiddleware(), MetricsMiddleware(), corsMiddleware())

	walletHandler := wallet.NewHandler(wallet.NewService(wallet.NewRepository(gw)))
	reportHandler := report.NewHandler(report.NewService(gw))
	adminHandler := admin.NewHandler(admin.NewService(admin.NewRepository(gw)))

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())

	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware(cfg.JWTSecret), RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	{
		guard := InFlightGuard(rdb, cfg.InFlightTTL)

		protected.GET("/dashboard", walletHandler.Dashboard)
		protected.POST("/topup", guard, walletHandler.TopUp)
		protected.POST("/transactions", guard, walletHandler.CreateTransaction)
		protected.POST("/request-report", guard, reportHandler.RequestReport)
		protected.GET("/notifications", walletHandler.Notifications)

		protected.POST("/users", adminHandler.CreateUser)
		protected.PUT("/users/:id", adminHandler.UpdateUser)
		protected.DELETE("/users/:id", adminHandler.DeleteUser)
		protected.POST("/notifications", adminHandler.SendNotification)
		protected.POST("/sync/all", guard, adminHandler.SyncAll)
	}

	return &Server{
		router: router,
		config: cfg,
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, PUT, DELETE, OPTIONS, GET")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
