package preflight

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"tasktracker/internal/config"
)

// Pinger is anything whose connectivity can be probed
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckResult represents the result of a preflight check
type CheckResult struct {
	Name    string
	Status  string // "pass", "fail", "warning"
	Message string
	Error   error
}

// Checker performs pre-flight checks before server starts
type Checker struct {
	cfg     *config.Config
	db      Pinger
	cache   Pinger // nil when Redis is disabled
	timeout time.Duration
}

// NewChecker creates a new preflight checker. cache may be nil.
func NewChecker(cfg *config.Config, db, cache Pinger) *Checker {
	return &Checker{
		cfg:     cfg,
		db:      db,
		cache:   cache,
		timeout: 5 * time.Second,
	}
}

// RunAll runs all preflight checks and returns results
func (c *Checker) RunAll(ctx context.Context) []CheckResult {
	log.Println("🔍 Running pre-flight checks...")

	results := []CheckResult{
		c.checkDatabaseConnection(ctx),
		c.checkCacheConnection(ctx),
		c.checkSecrets(),
		c.checkFrontend(),
	}

	passed, failed, warnings := 0, 0, 0
	for _, result := range results {
		switch result.Status {
		case "pass":
			log.Printf("   ✅ %s: %s", result.Name, result.Message)
			passed++
		case "fail":
			log.Printf("   ❌ %s: %s", result.Name, result.Message)
			if result.Error != nil {
				log.Printf("      Error: %v", result.Error)
			}
			failed++
		case "warning":
			log.Printf("   ⚠️  %s: %s", result.Name, result.Message)
			warnings++
		}
	}

	log.Printf("📊 Pre-flight summary: %d passed, %d failed, %d warnings", passed, failed, warnings)
	return results
}

// HasFailures returns true if any check failed
func HasFailures(results []CheckResult) bool {
	for _, result := range results {
		if result.Status == "fail" {
			return true
		}
	}
	return false
}

func (c *Checker) ping(ctx context.Context, p Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return p.Ping(ctx)
}

// checkDatabaseConnection verifies database connectivity
func (c *Checker) checkDatabaseConnection(ctx context.Context) CheckResult {
	if err := c.ping(ctx, c.db); err != nil {
		return CheckResult{
			Name:    "Database Connection",
			Status:  "fail",
			Message: "Cannot connect to MongoDB",
			Error:   err,
		}
	}

	return CheckResult{
		Name:    "Database Connection",
		Status:  "pass",
		Message: "MongoDB connection successful",
	}
}

// checkCacheConnection verifies Redis when it is configured. The rate
// limiter falls back to memory, so an unreachable Redis is only a warning.
func (c *Checker) checkCacheConnection(ctx context.Context) CheckResult {
	if c.cache == nil {
		return CheckResult{
			Name:    "Redis",
			Status:  "pass",
			Message: "Not configured (rate limits kept in memory)",
		}
	}
	if err := c.ping(ctx, c.cache); err != nil {
		return CheckResult{
			Name:    "Redis",
			Status:  "warning",
			Message: "Redis unreachable",
			Error:   err,
		}
	}
	return CheckResult{
		Name:    "Redis",
		Status:  "pass",
		Message: "Redis connection successful",
	}
}

// checkSecrets warns when the development signing secret is in use
func (c *Checker) checkSecrets() CheckResult {
	if c.cfg.UsesDevSecret() {
		return CheckResult{
			Name:    "JWT Secret",
			Status:  "warning",
			Message: "JWT_SECRET not set, using the development secret",
		}
	}
	return CheckResult{
		Name:    "JWT Secret",
		Status:  "pass",
		Message: "JWT_SECRET configured",
	}
}

// checkFrontend verifies the SPA build exists when it is to be served
func (c *Checker) checkFrontend() CheckResult {
	if !c.cfg.ServeFrontend {
		return CheckResult{
			Name:    "Frontend",
			Status:  "pass",
			Message: "Not served by this process",
		}
	}

	index := filepath.Join(c.cfg.FrontendDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		return CheckResult{
			Name:    "Frontend",
			Status:  "fail",
			Message: fmt.Sprintf("%s not found", index),
			Error:   err,
		}
	}
	return CheckResult{
		Name:    "Frontend",
		Status:  "pass",
		Message: fmt.Sprintf("Serving %s", c.cfg.FrontendDir),
	}
}
