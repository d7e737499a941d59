package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Checker struct {
	db    *pgxpool.Pool
	cache *redis.Client
}

type Status struct {
	Status   string          `json:"status"`
	Database DependencyCheck `json:"database"`
	Cache    DependencyCheck `json:"cache"`
}

type DependencyCheck struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

func NewChecker(db *pgxpool.Pool, cache *redis.Client) *Checker {
	return &Checker{db: db, cache: cache}
}

// Check reports overall service health. The cache is optional, so a degraded
// cache never flips the overall status to unhealthy.
func (h *Checker) Check() Status {
	dbCheck := h.checkDatabase()
	cacheCheck := h.checkCache()

	status := "healthy"
	if dbCheck.Status != "healthy" {
		status = "unhealthy"
	}

	return Status{
		Status:   status,
		Database: dbCheck,
		Cache:    cacheCheck,
	}
}

func (h *Checker) checkDatabase() DependencyCheck {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DependencyCheck{Status: "unhealthy", ResponseTime: responseTime}
	}
	return DependencyCheck{Status: "healthy", ResponseTime: responseTime}
}

func (h *Checker) checkCache() DependencyCheck {
	if h.cache == nil {
		return DependencyCheck{Status: "disabled"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.cache.Ping(ctx).Err()
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DependencyCheck{Status: "unhealthy", ResponseTime: responseTime}
	}
	return DependencyCheck{Status: "healthy", ResponseTime: responseTime}
}
