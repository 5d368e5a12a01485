package preflight

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tasktracker/internal/config"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error { return s.err }

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "prod-secret"}
}

func TestCheckDatabaseConnection_Success(t *testing.T) {
	checker := NewChecker(testConfig(), stubPinger{}, nil)
	result := checker.checkDatabaseConnection(context.Background())

	if result.Status != "pass" {
		t.Errorf("Expected status 'pass', got '%s'", result.Status)
	}
	if result.Name != "Database Connection" {
		t.Errorf("Expected name 'Database Connection', got '%s'", result.Name)
	}
}

func TestCheckDatabaseConnection_Failure(t *testing.T) {
	checker := NewChecker(testConfig(), stubPinger{err: errors.New("connection refused")}, nil)
	result := checker.checkDatabaseConnection(context.Background())

	if result.Status != "fail" {
		t.Errorf("Expected status 'fail', got '%s'", result.Status)
	}
	if result.Error == nil {
		t.Error("Expected error to be set")
	}
}

func TestCheckCacheConnection(t *testing.T) {
	tests := []struct {
		name   string
		cache  Pinger
		status string
	}{
		{"disabled", nil, "pass"},
		{"reachable", stubPinger{}, "pass"},
		{"unreachable", stubPinger{err: errors.New("dial tcp")}, "warning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker(testConfig(), stubPinger{}, tt.cache)
			result := checker.checkCacheConnection(context.Background())
			if result.Status != tt.status {
				t.Errorf("Expected status '%s', got '%s'", tt.status, result.Status)
			}
		})
	}
}

func TestCheckSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ENVIRONMENT", "")
	dev := config.Load()

	if got := NewChecker(dev, stubPinger{}, nil).checkSecrets().Status; got != "warning" {
		t.Errorf("Expected 'warning' for the development secret, got '%s'", got)
	}
	if got := NewChecker(testConfig(), stubPinger{}, nil).checkSecrets().Status; got != "pass" {
		t.Errorf("Expected 'pass' for a configured secret, got '%s'", got)
	}
}

func TestCheckFrontend(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.ServeFrontend = true
	cfg.FrontendDir = dir

	checker := NewChecker(cfg, stubPinger{}, nil)
	if got := checker.checkFrontend().Status; got != "fail" {
		t.Errorf("Expected 'fail' without index.html, got '%s'", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("Failed to write index.html: %v", err)
	}
	if got := checker.checkFrontend().Status; got != "pass" {
		t.Errorf("Expected 'pass' with index.html, got '%s'", got)
	}

	cfg.ServeFrontend = false
	if got := checker.checkFrontend().Status; got != "pass" {
		t.Errorf("Expected 'pass' when not serving, got '%s'", got)
	}
}

func TestRunAllAndHasFailures(t *testing.T) {
	ok := NewChecker(testConfig(), stubPinger{}, nil).RunAll(context.Background())
	if len(ok) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(ok))
	}
	if HasFailures(ok) {
		t.Error("Expected no failures")
	}

	bad := NewChecker(testConfig(), stubPinger{err: errors.New("down")}, stubPinger{err: errors.New("down")}).RunAll(context.Background())
	if !HasFailures(bad) {
		t.Error("Expected failures when the database is down")
	}
}
