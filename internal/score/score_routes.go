package score

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
	scores := r.Group("/test-scores")
	scores.Use(middleware.AuthMiddleware())
	{
		// summary before :id so gin does not treat it as a path param
		scores.GET("/summary", middleware.RBACAuthorize(rbacService, "score", "read"), handler.GetSummary)
		scores.GET("", middleware.RBACAuthorize(rbacService, "score", "read"), handler.GetAll)
		scores.GET("/:id", middleware.RBACAuthorize(rbacService, "score", "read"), handler.GetById)
		scores.POST("", middleware.RBACAuthorize(rbacService, "score", "create"), handler.Create)
		scores.PUT("/:id", middleware.RBACAuthorize(rbacService, "score", "update"), handler.Update)
		scores.DELETE("/:id", middleware.RBACAuthorize(rbacService, "score", "delete"), handler.Delete)
	}
}
