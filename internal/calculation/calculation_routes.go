package calculation

import (
	"github.com/chetanpayroll/India-Payroll-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// The calculators are tenant-independent what-if tools, so the group
// skips the company guard and is rate limited by client IP instead.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	calcs := r.Group("/calculations")
	calcs.Use(middleware.ContextLogger(logger))
	calcs.Use(middleware.RateLimitByIP(10, 30))
	{
		calcs.POST("/gratuity", handler.Gratuity)
		calcs.POST("/structure", handler.Structure)
		calcs.POST("/tds", handler.Withholding)
	}
}
