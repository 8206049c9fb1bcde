package recruitment

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
	candidates := r.Group("/candidates")
	candidates.Use(middleware.AuthMiddleware())
	{
		candidates.GET("", middleware.RBACAuthorize(rbacService, "recruitment", "read"), handler.GetAll)
		candidates.GET("/:id", middleware.RBACAuthorize(rbacService, "recruitment", "read"), handler.GetById)
		candidates.POST("", middleware.RBACAuthorize(rbacService, "recruitment", "create"), handler.Create)
		candidates.PUT("/:id", middleware.RBACAuthorize(rbacService, "recruitment", "update"), handler.Update)
		candidates.POST("/:id/stage", middleware.RBACAuthorize(rbacService, "recruitment", "update"), handler.TransitionStage)
		candidates.POST("/:id/resume", middleware.RBACAuthorize(rbacService, "recruitment", "update"), handler.UploadResume)
		candidates.GET("/:id/resume", middleware.RBACAuthorize(rbacService, "recruitment", "read"), handler.DownloadResume)
		candidates.DELETE("/:id", middleware.RBACAuthorize(rbacService, "recruitment", "delete"), handler.Delete)
	}
}
