package course

import (
	"school-admin/internal/middleware"
	"school-admin/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	courses := r.Group("/courses")
	courses.Use(middleware.AuthMiddleware())
	{
		courses.GET("", middleware.RBACAuthorize(rbacService, "course", "read"), handler.GetAll)
		courses.GET("/:id", middleware.RBACAuthorize(rbacService, "course", "read"), handler.GetById)
		courses.POST("", middleware.RBACAuthorize(rbacService, "course", "create"), handler.Create)
		courses.PUT("/:id", middleware.RBACAuthorize(rbacService, "course", "update"), handler.Update)
		courses.DELETE("/:id", middleware.RBACAuthorize(rbacService, "course", "delete"), handler.Delete)
	}
}
