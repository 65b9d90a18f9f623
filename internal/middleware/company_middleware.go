package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chetanpayroll/India-Payroll-sub000/internal/shared/response"
)

// RequireCompany resolves the acting tenant from the X-Company-ID
// header. Authentication happens upstream at the gateway; by the time a
// request reaches this service the header is trusted.
func RequireCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.GetHeader("X-Company-ID")
		if companyID == "" {
			response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "X-Company-ID header is required", nil)
			c.Abort()
			return
		}
		if _, err := uuid.Parse(companyID); err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "X-Company-ID must be a valid UUID", nil)
			c.Abort()
			return
		}

		c.Set("company_id", companyID)
		c.Next()
	}
}
