package app

import (
	"log"
	"os"

	"go-attendgate/internal/rbac"
	"go-attendgate/internal/shared/connection"

	"github.com/gin-gonic/gin"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	log.Println("✅ Database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	log.Println("✅ Redis connection established")

	enforcer, err := rbac.NewEnforcer(
		envOrDefault("RBAC_MODEL_PATH", "configs/rbac_model.conf"),
		envOrDefault("RBAC_POLICY_PATH", "configs/rbac_policy.csv"),
	)
	if err != nil {
		return err
	}

	return registerModules(router, sqlDB, gormDB, redisClient, enforcer)
}
