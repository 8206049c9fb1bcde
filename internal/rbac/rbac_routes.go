package rbac

import (
	"school-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/roles", middleware.RBACAuthorize(service, "rbac", "read"), handler.ListRoles)
		group.POST("/roles", middleware.RBACAuthorize(service, "rbac", "write"), handler.CreateRole)
		group.PUT("/roles/:roleId/permissions", middleware.RBACAuthorize(service, "rbac", "write"), handler.UpdateRolePermissions)
		group.GET("/permissions", middleware.RBACAuthorize(service, "rbac", "read"), handler.ListPermissions)
	}
}
