package ptobalance

import (
	"school-admin/internal/middleware"
	"school-admin/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	redisClient *redis.Client,
) {
	balances := r.Group("/pto-balance")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/:instructorId", middleware.RBACAuthorize(rbacService, "ptobalance", "read"), handler.GetByInstructor)
		balances.POST("/:instructorId/sync", middleware.RBACAuthorize(rbacService, "ptobalance", "sync"), handler.Sync)
		balances.POST("/sync-all",
			middleware.RBACAuthorize(rbacService, "ptobalance", "sync"),
			middleware.Idempotency(redisClient),
			handler.SyncAll,
		)
	}
}
