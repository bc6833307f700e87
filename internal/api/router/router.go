package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/marvinpacsands/Project-List-Designers/config"
	"github.com/marvinpacsands/Project-List-Designers/internal/api/handler"
	"github.com/marvinpacsands/Project-List-Designers/internal/api/middleware"
	"github.com/marvinpacsands/Project-List-Designers/pkg/redis"
	"github.com/marvinpacsands/Project-List-Designers/pkg/response"
)

// Setup builds the Gin engine. A nil rdb or a zero request budget disables
// rate limiting.
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := rdb
	if cfg.RateLimit.Requests <= 0 {
		limiter = nil
	}
	limit := middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)

	api := r.Group("/api")
	{
		api.GET("/bootstrap", h.Bootstrap.Bootstrap)

		api.GET("/projects", h.Project.ListProjects)
		api.POST("/update", limit, h.Project.UpdateProject)
		api.POST("/custom-order", limit, h.Project.SaveCustomOrder)

		api.GET("/raw-data", h.RawData.GetRawData)
		api.POST("/raw-data", limit, h.RawData.ReplaceRawData)

		api.GET("/notifications", h.Notification.ListNotifications)
		api.POST("/notifications/ack", limit, h.Notification.AcknowledgeNotification)

		api.GET("/export/projects", h.Export.ExportProjects)
	}

	r.NoRoute(notFound(cfg.Server.StaticDir))

	return r
}

// notFound serves the client bundle for non-API GETs when a static directory
// is configured, and the JSON 404 envelope otherwise.
func notFound(staticDir string) gin.HandlerFunc {
	var files http.Handler
	if staticDir != "" {
		files = http.FileServer(http.Dir(staticDir))
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if files != nil && c.Request.Method == http.MethodGet && !strings.HasPrefix(path, "/api/") {
			files.ServeHTTP(c.Writer, c.Request)
			return
		}
		response.NotFound(c, 10003, "route not found")
	}
}
