package instructor

import (
	"school-admin/internal/middleware"
	"school-admin/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	instructors := r.Group("/instructors")
	instructors.Use(middleware.AuthMiddleware())
	instructors.Use(middleware.ContextLogger(logger))
	{
		instructors.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "instructor", "read"),
			handler.GetAll,
		)

		instructors.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "instructor", "read"),
			handler.GetOptions,
		)

		instructors.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "instructor", "read"),
			handler.GetById,
		)

		instructors.POST("",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "instructor", "create"),
			handler.Create,
		)

		instructors.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "instructor", "update"),
			handler.Update,
		)

		instructors.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "instructor", "delete"),
			handler.Delete,
		)
	}
}
