package attendance

import (
	"github.com/chetanpayroll/India-Payroll-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.RequireCompany())
	{
		attendances.GET("", handler.GetByPeriod)
		attendances.PUT("", handler.Record)
	}
}
