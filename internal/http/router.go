package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"travel-api/internal/db"
	"travel-api/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	pool *pgxpool.Pool,
	authSvc *service.AuthService,
	authH *AuthHandler,
	userH *UserHandler,
	provH *ProvinceHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
	})
	r.GET("/healthz", func(c *gin.Context) {
		if pool != nil {
			if err := db.Ping(c.Request.Context(), pool); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/token", authH.Token)
	r.POST("/token/refresh", authH.Refresh)

	users := r.Group("/users")
	users.POST("/register", userH.Register)
	users.POST("/login", userH.Login)
	users.POST("/reset-password", userH.ResetPassword)

	authed := users.Group("", AuthMiddleware(logger, authSvc))
	authed.GET("", RequireRoles("admin"), userH.List)
	authed.GET("/me", userH.Me)
	authed.GET("/:id", userH.GetByID)
	authed.PUT("/:id", userH.Update)
	authed.DELETE("/:id", userH.Delete)
	authed.PUT("/:id/change-password", userH.ChangePassword)
	authed.GET("/:id/tax-info", userH.TaxInfo)
	authed.PUT("/:id/select-province/:provinceID", userH.SelectProvince)

	provinces := r.Group("/provinces", AuthMiddleware(logger, authSvc))
	provinces.POST("", RequireRoles("admin"), provH.Create)
	provinces.GET("", provH.List)
	provinces.GET("/:id", provH.GetByID)
	provinces.PUT("/:id", RequireRoles("admin"), provH.Update)
	provinces.DELETE("/:id", RequireRoles("admin"), provH.Delete)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
