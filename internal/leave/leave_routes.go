package leave

import (
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", rbac.Authorize(rbacService, "leave", "create"), middleware.Idempotency(rdb), handler.Create)
		leaves.GET("", rbac.Authorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/me", rbac.Authorize(rbacService, "leave", "read"), handler.GetMine)
		leaves.GET("/balance/:employee_id", rbac.Authorize(rbacService, "leave", "read"), handler.GetBalance)
		leaves.GET("/:id", rbac.Authorize(rbacService, "leave", "read"), handler.GetById)
		leaves.POST("/:id/approve", rbac.Authorize(rbacService, "leave", "approve"), handler.Approve)
		leaves.POST("/:id/reject", rbac.Authorize(rbacService, "leave", "approve"), handler.Reject)
	}
}
