package company

import (
	"github.com/chetanpayroll/India-Payroll-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	companies := r.Group("/companies")
	{
		companies.POST("", handler.Create)
	}

	profile := r.Group("/company")
	profile.Use(middleware.RequireCompany())
	{
		profile.GET("", handler.GetProfile)
		profile.PUT("/registrations", handler.UpsertRegistration)
	}
}
