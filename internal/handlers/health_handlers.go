package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"rentflow/internal/caching"
	"rentflow/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

const appVersion = "1.0.0"

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	db        *pgxpool.Pool // nil when running on the in-memory store
	cacheSvc  caching.CacheService
	minioSvc  services.MinioService
	startTime time.Time
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db *pgxpool.Pool, cacheSvc caching.CacheService, minioSvc services.MinioService) *HealthHandlers {
	return &HealthHandlers{
		db:        db,
		cacheSvc:  cacheSvc,
		minioSvc:  minioSvc,
		startTime: time.Now().UTC(),
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
}

// HealthCheck performs health checks against the backing services
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   appVersion,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	if h.db == nil {
		health.Services["database"] = "in-memory"
	} else if err := h.checkDatabase(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	if err := h.checkRedis(ctx); err != nil {
		health.Services["redis"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["redis"] = "healthy"
	}

	if err := h.checkStorage(ctx); err != nil {
		health.Services["storage"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["storage"] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, health)
}

func (h *HealthHandlers) checkDatabase(ctx context.Context) error {
	return h.db.Ping(ctx)
}

// checkRedis reads a probe key; a miss is fine, only transport errors count.
func (h *HealthHandlers) checkRedis(ctx context.Context) error {
	_, err := h.cacheSvc.GetString(ctx, "rentflow:healthcheck")
	return err
}

// checkStorage also guarantees the receipts bucket exists before the
// first receipt is requested.
func (h *HealthHandlers) checkStorage(ctx context.Context) error {
	if h.minioSvc == nil {
		return nil
	}
	return h.minioSvc.EnsureBucketExists(ctx, receiptsBucket)
}

// ReadinessCheck determines if the application is ready to serve traffic
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx := c.Request().Context()

	if h.db != nil {
		if err := h.checkDatabase(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status":  "not_ready",
				"message": "Database unavailable",
			})
		}
	}

	if err := h.checkRedis(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Cache unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

// MetricsResponse represents application metrics
type MetricsResponse struct {
	Timestamp  time.Time              `json:"timestamp"`
	Metrics    map[string]interface{} `json:"metrics"`
	Version    string                 `json:"version"`
	Goroutines int                    `json:"goroutines"`
}

// GetMetrics provides application performance metrics
func (h *HealthHandlers) GetMetrics(c echo.Context) error {
	metrics := &MetricsResponse{
		Timestamp:  time.Now().UTC(),
		Version:    appVersion,
		Goroutines: runtime.NumGoroutine(),
		Metrics: map[string]interface{}{
			"application": map[string]interface{}{
				"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
				"start_time":     h.startTime.Format(time.RFC3339),
			},
		},
	}

	if h.db != nil {
		stat := h.db.Stat()
		metrics.Metrics["database_connections"] = map[string]interface{}{
			"total":    stat.TotalConns(),
			"idle":     stat.IdleConns(),
			"acquired": stat.AcquiredConns(),
			"max":      stat.MaxConns(),
		}
	}

	return c.JSON(http.StatusOK, metrics)
}
