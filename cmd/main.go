package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"rentflow/internal/caching"
	"rentflow/internal/config"
	"rentflow/internal/dashboard"
	"rentflow/internal/handlers"
	"rentflow/internal/jobs"
	"rentflow/internal/jobs/background"
	"rentflow/internal/middleware"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
	"rentflow/internal/services"
	"rentflow/pkg/database"
)

const version = "1.0.0"

func main() {
	ctx := context.Background()

	// Storage driver selection: the in-memory store is the default so the
	// server runs without any infrastructure; postgres is opt-in.
	var (
		pool             *pgxpool.Pool
		userRepo         repositories.UserRepository
		propertyRepo     repositories.PropertyRepository
		unitRepo         repositories.UnitRepository
		tenantRepo       repositories.TenantRepository
		paymentRepo      repositories.PaymentRepository
		notificationRepo repositories.NotificationRepository
	)

	storageDriver := os.Getenv("STORAGE_DRIVER")
	if storageDriver == "" {
		storageDriver = "memory" // Default storage driver
	}

	switch storageDriver {
	case "postgres":
		databaseURL := os.Getenv("DATABASE_URL")
		if databaseURL == "" {
			log.Fatal("DATABASE_URL environment variable is required when STORAGE_DRIVER=postgres")
		}

		var err error
		pool, err = database.NewPool(ctx, databaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		if err := repositories.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("Failed to ensure database schema: %v", err)
		}

		userRepo = repositories.NewUserRepo(pool)
		propertyRepo = repositories.NewPropertyRepo(pool)
		unitRepo = repositories.NewUnitRepo(pool)
		tenantRepo = repositories.NewTenantRepo(pool)
		paymentRepo = repositories.NewPaymentRepo(pool)
		notificationRepo = repositories.NewNotificationRepo(pool)

	case "memory":
		store := repositories.NewMemoryStore()
		userRepo = repositories.NewMemoryUserRepo(store)
		propertyRepo = repositories.NewMemoryPropertyRepo(store)
		unitRepo = repositories.NewMemoryUnitRepo(store)
		tenantRepo = repositories.NewMemoryTenantRepo(store)
		paymentRepo = repositories.NewMemoryPaymentRepo(store)
		notificationRepo = repositories.NewMemoryNotificationRepo(store)

	default:
		log.Fatalf("Unknown STORAGE_DRIVER %q (expected memory or postgres)", storageDriver)
	}

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret: %s", jwtSecret)
	}
	tokenTTL := envIntOr("TOKEN_TTL_SECONDS", 900)
	refreshTTL := envIntOr("REFRESH_TTL_SECONDS", 86400)

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379" // Default Redis address
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := envIntOr("REDIS_DB", 0)

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000" // Default MinIO endpoint
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	// Initialize MinIO service
	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// A fresh empty store invalidates anything cached by a previous run.
	if storageDriver == "memory" {
		if err := cacheSvc.InvalidateAllCache(ctx); err != nil {
			log.Printf("Failed to flush cache: %v", err)
		}
	}

	// Create services
	authService := services.NewAuthService(cacheSvc, jwtSecret, tokenTTL, refreshTTL)
	notificationSvc := services.NewNotificationService(notificationRepo, userRepo)
	propertySvc := services.NewPropertyService(propertyRepo, cacheSvc)
	unitSvc := services.NewUnitService(unitRepo, propertyRepo, cacheSvc)
	tenantSvc := services.NewTenantService(tenantRepo, unitRepo, propertyRepo, userRepo, cacheSvc)
	paymentSvc := services.NewPaymentService(paymentRepo, tenantRepo, unitRepo, propertyRepo, userRepo, notificationSvc, cacheSvc)

	dashboardTTL := time.Duration(envIntOr("DASHBOARD_CACHE_TTL_SECONDS", 300)) * time.Second
	dashboardSvc := dashboard.NewService(propertyRepo, unitRepo, tenantRepo, paymentRepo, cacheSvc, dashboardTTL)

	// Background jobs: overdue sweep and rent reminders
	schedulerCfg := config.DefaultSchedulerConfig()
	if cfgPath := os.Getenv("SCHEDULER_CONFIG"); cfgPath != "" {
		schedulerCfg, err = config.LoadSchedulerConfig(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load scheduler config: %v", err)
		}
	}

	paymentJobs := jobs.NewPaymentJobs(paymentRepo, tenantRepo, unitRepo, propertyRepo, notificationSvc, cacheSvc)
	scheduler, err := background.NewJobScheduler(paymentJobs, schedulerCfg)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authService, userRepo)
	propertyHandlers := handlers.NewPropertyHandlers(propertySvc)
	unitHandlers := handlers.NewUnitHandlers(unitSvc)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc)
	paymentHandlers := handlers.NewPaymentHandlers(paymentSvc, minioSvc)
	notificationHandlers := handlers.NewNotificationHandlers(notificationSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(dashboardSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, minioSvc)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/ready", healthHandlers.ReadinessCheck)
	e.GET("/metrics", healthHandlers.GetMetrics)

	// API routes
	versionMiddleware := middleware.NewVersionMiddleware()
	v1 := versionMiddleware.VersionRoute(e, "v1")

	// Authentication routes (no JWT required for signup/login/refresh)
	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(cacheSvc, 10, time.Minute))
	auth.POST("/signup", authHandlers.Signup)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)

	// Protected routes (require a valid, unrevoked access token)
	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(middleware.JWTConfig(jwtSecret)))
	protected.Use(middleware.Identity(authService))

	protected.POST("/auth/logout", authHandlers.Logout)
	protected.GET("/auth/me", authHandlers.Me)

	// Routes for either role
	protected.POST("/payments/:id/process", paymentHandlers.ProcessPayment)
	protected.GET("/payments/:id/receipt", paymentHandlers.GenerateReceiptPDF)
	protected.GET("/notifications", notificationHandlers.GetNotifications)
	protected.PUT("/notifications/:id/read", notificationHandlers.MarkNotificationRead)
	protected.PUT("/notifications/read-all", notificationHandlers.MarkAllNotificationsRead)

	// Landlord routes
	landlord := protected.Group("")
	landlord.Use(middleware.RequireRole(models.RoleLandlord))

	landlord.GET("/properties", propertyHandlers.GetProperties)
	landlord.POST("/properties", propertyHandlers.CreateProperty)
	landlord.GET("/properties/:id", propertyHandlers.GetPropertyByID)
	landlord.PUT("/properties/:id", propertyHandlers.UpdateProperty)
	landlord.DELETE("/properties/:id", propertyHandlers.DeleteProperty)
	landlord.GET("/properties/:id/units", unitHandlers.GetUnitsByProperty)

	landlord.POST("/units", unitHandlers.CreateUnit)
	landlord.GET("/units/:id", unitHandlers.GetUnitByID)
	landlord.PUT("/units/:id", unitHandlers.UpdateUnit)
	landlord.DELETE("/units/:id", unitHandlers.DeleteUnit)

	landlord.GET("/tenants", tenantHandlers.GetTenants)
	landlord.POST("/tenants", tenantHandlers.CreateTenant)
	landlord.GET("/tenants/:id", tenantHandlers.GetTenantByID)
	landlord.PUT("/tenants/:id", tenantHandlers.UpdateTenant)
	landlord.DELETE("/tenants/:id", tenantHandlers.DeactivateTenant)

	landlord.GET("/payments", paymentHandlers.GetPayments)
	landlord.POST("/payments", paymentHandlers.CreatePayment)
	landlord.GET("/payments/:id", paymentHandlers.GetPaymentByID)
	landlord.PUT("/payments/:id", paymentHandlers.UpdatePayment)
	landlord.DELETE("/payments/:id", paymentHandlers.DeletePayment)

	landlord.GET("/dashboard/summary", dashboardHandlers.GetSummary)
	landlord.POST("/notifications", notificationHandlers.CreateNotification)

	// Tenant routes
	my := protected.Group("/my")
	my.Use(middleware.RequireRole(models.RoleTenant))
	my.GET("/tenancy", tenantHandlers.GetMyTenancy)
	my.GET("/payments", paymentHandlers.GetMyPayments)

	// Start server
	port := envIntOr("PORT", 8080)

	go func() {
		log.Printf("🚀 Rentflow server v%s starting on port %d (storage: %s)", version, port, storageDriver)
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	if err := scheduler.Stop(); err != nil {
		log.Printf("Scheduler shutdown error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

func envIntOr(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
		log.Fatalf("Invalid %s %q: expected an integer", key, s)
	}
	return fallback
}
