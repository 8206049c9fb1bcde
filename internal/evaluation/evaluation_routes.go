package evaluation

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
	evals := r.Group("/evaluations")
	evals.Use(middleware.AuthMiddleware())
	{
		evals.GET("", middleware.RBACAuthorize(rbacService, "evaluation", "read"), handler.GetAll)
		evals.GET("/:id", middleware.RBACAuthorize(rbacService, "evaluation", "read"), handler.GetById)
		evals.POST("", middleware.RBACAuthorize(rbacService, "evaluation", "create"), handler.Create)
		evals.PUT("/:id", middleware.RBACAuthorize(rbacService, "evaluation", "update"), handler.Update)
		evals.DELETE("/:id", middleware.RBACAuthorize(rbacService, "evaluation", "delete"), handler.Delete)
	}
}
