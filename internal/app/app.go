package app

import (
	"school-admin/internal/shared/config"
	"school-admin/internal/shared/connection"
	"school-admin/internal/shared/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp wires infrastructure and registers every module's routes on
// the given router.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, 5)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	storageClient, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return err
	}
	logger.Info("object storage client ready")

	return registerModules(router, sqlDB, gormDB, rdb, storageClient, cfg.Storage.Bucket)
}
