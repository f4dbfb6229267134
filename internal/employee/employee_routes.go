package employee

import (
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.POST("", rbac.Authorize(rbacService, "employee", "create"), handler.Create)
		employees.GET("", rbac.Authorize(rbacService, "employee", "read"), handler.GetAll)
		employees.GET("/options", rbac.Authorize(rbacService, "employee", "options"), handler.GetOptions)
		employees.GET("/me", rbac.Authorize(rbacService, "employee", "read"), handler.GetMe)
		employees.GET("/:id", rbac.Authorize(rbacService, "employee", "read"), handler.GetById)
		employees.PUT("/:id", rbac.Authorize(rbacService, "employee", "update"), handler.Update)
		employees.DELETE("/:id", rbac.Authorize(rbacService, "employee", "deactivate"), handler.Deactivate)
		employees.PUT("/:id/balance", rbac.Authorize(rbacService, "employee", "adjust_balance"), handler.AdjustBalance)
	}
}
