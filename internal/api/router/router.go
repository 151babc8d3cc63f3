package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lmt-transport/LMT-Driver-App/config"
	"github.com/lmt-transport/LMT-Driver-App/internal/api/handler"
	"github.com/lmt-transport/LMT-Driver-App/internal/api/middleware"
	"github.com/lmt-transport/LMT-Driver-App/pkg/jwt"
	"github.com/lmt-transport/LMT-Driver-App/pkg/redis"
)

// Setup builds the Gin engine with the full route table.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", h.Auth.Login)

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			authorized.GET("/dashboard", h.Dashboard.Dashboard)

			summary := authorized.Group("/summary")
			{
				summary.GET("/shifts", h.Dashboard.Shifts)
				summary.GET("/late", h.Dashboard.Late)
				summary.GET("/idle", h.Dashboard.Idle)
			}

			jobs := authorized.Group("/jobs")
			{
				jobs.POST("", h.Job.CreateTrip)
				jobs.DELETE("", h.Job.CancelTrip)
				jobs.PUT("/driver", h.Job.ReassignDriver)
				jobs.POST("/status", h.Job.AdvanceStatus)
			}

			export := authorized.Group("/export")
			{
				export.GET("/jobs", h.Export.ExportJobs)
				export.GET("/calendar", h.Export.ExportCalendar)
			}
		}
	}

	return r
}
