package app

import (
	"database/sql"
	"path/filepath"

	"school-admin/internal/auth"
	"school-admin/internal/course"
	"school-admin/internal/evaluation"
	"school-admin/internal/instructor"
	"school-admin/internal/leave"
	"school-admin/internal/messaging/kafka"
	"school-admin/internal/ptobalance"
	"school-admin/internal/rbac"
	"school-admin/internal/rbac/infra"
	"school-admin/internal/recruitment"
	"school-admin/internal/score"
	"school-admin/internal/shared/counter"
	"school-admin/internal/shared/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	storageClient storage.Client,
	storageBucket string,
) error {
	logger := zap.L()

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	instructorRepo := instructor.NewRepository(gormDB)
	courseRepo := course.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	balanceRepo := ptobalance.NewRepository(gormDB)
	scoreRepo := score.NewRepository(gormDB)
	evaluationRepo := evaluation.NewRepository(gormDB)
	recruitmentRepo := recruitment.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	authService := auth.NewService(authRepo, rbacService, instructorRepo)
	instructorService := instructor.NewServiceWithOutbox(db, instructorRepo, counterRepo, outboxRepo, rdb)
	courseService := course.NewService(db, courseRepo)
	balanceService := ptobalance.NewService(balanceRepo)
	leaveService := leave.NewService(db, leaveRepo, balanceService)
	scoreService := score.NewService(db, scoreRepo)
	evaluationService := evaluation.NewService(db, evaluationRepo)
	recruitmentService := recruitment.NewService(db, recruitmentRepo, storageClient, storageBucket)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	instructorHandler := instructor.NewHandler(instructorService)
	courseHandler := course.NewHandler(courseService)
	leaveHandler := leave.NewHandler(leaveService)
	balanceHandler := ptobalance.NewHandler(balanceService)
	scoreHandler := score.NewHandler(scoreService)
	evaluationHandler := evaluation.NewHandler(evaluationService)
	recruitmentHandler := recruitment.NewHandler(recruitmentService)
	rbacHandler := rbac.NewHandler(rbacService, rbacRepo)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		instructor.RegisterRoutes(api, instructorHandler, rbacService, logger)
		course.RegisterRoutes(api, courseHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		ptobalance.RegisterRoutes(api, balanceHandler, rbacService, rdb)
		score.RegisterRoutes(api, scoreHandler, rbacService)
		evaluation.RegisterRoutes(api, evaluationHandler, rbacService)
		recruitment.RegisterRoutes(api, recruitmentHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
