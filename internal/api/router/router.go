package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mikolajradlinski-prog/stand-dashboard/config"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/api/handler"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时不限流；ready 报告是否已加载快照
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, ready func() bool, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders(cfg.Server.FrameAncestors))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	// ── 健康检查与指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if ready != nil && !ready() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "waiting_for_snapshot"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	if cfg.RateLimit.Enabled && limiter != nil {
		v1.Use(middleware.RateLimit(limiter, cfg.RateLimit.Limit, cfg.RateLimit.Window, logger))
	}
	{
		v1.GET("/buildings", h.Calendar.ListBuildings)

		// 日历模块
		cal := v1.Group("/calendar")
		{
			cal.GET("/week", h.Calendar.GetWeek)
			cal.GET("/month", h.Calendar.GetMonth)
			cal.GET("/days/:date", h.Calendar.GetDay)
			cal.GET("/navigate", h.Calendar.Navigate)
		}

		// 导出模块
		export := v1.Group("/export")
		{
			export.GET("/month.csv", h.Export.ExportMonthCSV)
			export.GET("/month.xlsx", h.Export.ExportMonthXLSX)
			export.GET("/month.ics", h.Export.ExportMonthICS)
		}

		// 诊断模块（按功能开关暴露）
		if cfg.Feature.DebugPanel || cfg.Feature.SelfTest {
			diag := v1.Group("/diagnostics")
			if cfg.Feature.DebugPanel {
				diag.GET("/stats", h.Diagnostics.GetStats)
			}
			if cfg.Feature.SelfTest {
				diag.GET("/self-test", h.Diagnostics.RunSelfTest)
			}
		}

		v1.POST("/snapshot/refresh", h.Diagnostics.RefreshSnapshot)
	}

	return r
}
