package payroll

import (
	"github.com/chetanpayroll/India-Payroll-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	runs := r.Group("/payroll-runs")
	runs.Use(middleware.RequireCompany())
	runs.Use(middleware.ContextLogger(logger))
	{
		runHandlers := []gin.HandlerFunc{middleware.RateLimitByCompany(0.2, 2)}
		if rdb != nil {
			runHandlers = append(runHandlers, middleware.Idempotency(rdb))
		}
		runHandlers = append(runHandlers, handler.Run)
		runs.POST("", runHandlers...)

		runs.GET("",
			middleware.RateLimitByCompany(3, 10),
			handler.GetAll,
		)

		runs.GET("/:id",
			middleware.RateLimitByCompany(3, 10),
			handler.GetById,
		)

		runs.POST("/:id/finalize",
			middleware.RateLimitByCompany(0.2, 2),
			handler.Finalize,
		)

		runs.DELETE("/:id",
			middleware.RateLimitByCompany(0.1, 1),
			handler.Delete,
		)

		runs.GET("/:id/sif",
			middleware.RateLimitByCompany(1, 5),
			handler.DownloadSIF,
		)

		runs.GET("/:id/summary",
			middleware.RateLimitByCompany(1, 5),
			handler.DownloadSummary,
		)
	}
}
