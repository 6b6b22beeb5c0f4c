// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/vegdata/vegmat/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "vegmat_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// It starts from defaults, applies VEGMAT_DATABASE_* environment
// overrides, and forces the database name to TestDatabaseName for safety.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	cfg := config.New()

	var opts []config.Option
	if v := os.Getenv("VEGMAT_DATABASE_HOST"); v != "" {
		opts = append(opts, config.OptDatabaseHost(v))
	}
	if v := os.Getenv("VEGMAT_DATABASE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if v := os.Getenv("VEGMAT_DATABASE_USER"); v != "" {
		opts = append(opts, config.OptDatabaseUser(v))
	}
	if v := os.Getenv("VEGMAT_DATABASE_PASSWORD"); v != "" {
		opts = append(opts, config.OptDatabasePassword(v))
	}
	cfg.Update(opts)

	// Always use test database for safety
	cfg.Database.Database = TestDatabaseName

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
// This is useful when you only need database config without the full
// Config struct.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// TempHome creates a temporary home directory for a test. Every vegmat
// path (config dir, cache dir, data dir) derives from the home
// directory, so tests that write files should route paths through a
// TempHome instead of the real home. Cleanup happens automatically.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    home := iotesting.TempHome(t)
//	    cfg := config.New()
//	    cfg.Update([]config.Option{config.OptHomeDir(home)})
//	    // config.ConfigDir(home), config.DataDir(home) etc. now point
//	    // into the temp dir
//	}
func TempHome(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

// WriteTempDatasetsYAML writes a datasets.yaml into the config directory
// under the given home, creating the directory if needed. Returns the
// path of the written file.
//
// Usage:
//
//	home := iotesting.TempHome(t)
//	path := iotesting.WriteTempDatasetsYAML(t, home, `
//	datasets:
//	  - name: demo
//	    path: /path/to/demo.csv
//	`)
func WriteTempDatasetsYAML(t *testing.T, homeDir, content string) string {
	t.Helper()

	dir := config.ConfigDir(homeDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create temp config dir: %v", err)
	}
	path := filepath.Join(dir, "datasets.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp datasets.yaml: %v", err)
	}
	return path
}
