package app

import (
	"database/sql"
	"os"
	"strconv"
	"time"

	"go-attendgate/internal/attendance"
	"go-attendgate/internal/audit"
	"go-attendgate/internal/auth"
	"go-attendgate/internal/device"
	"go-attendgate/internal/employee"
	"go-attendgate/internal/health"
	"go-attendgate/internal/messaging/kafka"
	"go-attendgate/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	enforcer *casbin.Enforcer,
) error {
	cfg := loadGatingConfig()

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(db)
	auditRepo := audit.NewRepository(gormDB)
	deviceRepo := device.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	auditRecorder := audit.NewRecorder(auditRepo)
	devicePolicy := device.NewPolicy(deviceRepo, attendanceRepo, cfg.DeviceExclusivity)
	authService := auth.NewService(employeeRepo)
	attendanceService := attendance.NewService(
		db, attendanceRepo, employeeRepo, devicePolicy, outboxRepo, auditRecorder, authService, cfg,
	)
	employeeService := employee.NewService(employeeRepo, rdb)
	healthService := health.NewService(attendanceRepo, rdb, cfg.Timezone)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	authHandler := auth.NewHandler(authService)
	deviceHandler := device.NewHandler(deviceRepo)
	employeeHandler := employee.NewHandler(employeeService)
	healthHandler := health.NewHandler(healthService)

	// --- Global middleware ---
	router.Use(middleware.RequestID())

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, middleware.AuthMiddleware(), middleware.Idempotency(rdb))
		auth.RegisterRoutes(api, authHandler, middleware.RateLimitByIP(rate.Limit(1), 5))
		device.RegisterRoutes(api, deviceHandler, enforcer)
		employee.RegisterRoutes(api, employeeHandler, enforcer)
	}

	health.RegisterRoutes(router, healthHandler)

	return nil
}

func loadGatingConfig() attendance.GatingConfig {
	cfg := attendance.DefaultGatingConfig()

	cfg.SiteLatitude = envFloat("SITE_LATITUDE", cfg.SiteLatitude)
	cfg.SiteLongitude = envFloat("SITE_LONGITUDE", cfg.SiteLongitude)
	cfg.AllowedRadiusMeters = envFloat("ALLOWED_RADIUS_METERS", cfg.AllowedRadiusMeters)
	cfg.FaceConfidenceThreshold = envFloat("FACE_CONFIDENCE_THRESHOLD", cfg.FaceConfidenceThreshold)
	cfg.DeviceExclusivity = envBool("DEVICE_EXCLUSIVITY", cfg.DeviceExclusivity)
	cfg.SyncEnabled = envBool("SYNC_ENABLED", cfg.SyncEnabled)

	if tz := os.Getenv("ATTENDANCE_TIMEZONE"); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			cfg.Timezone = loc
		}
	}

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
