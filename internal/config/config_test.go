package config

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
		validate    func(*testing.T, *Config)
	}{
		{
			name:        "defaults",
			envVars:     map[string]string{},
			expectError: false,
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Port != "8080" {
					t.Errorf("Expected default Port to be '8080', got '%s'", cfg.Port)
				}
				if cfg.DashboardHost != "localhost" {
					t.Errorf("Expected default DashboardHost to be 'localhost', got '%s'", cfg.DashboardHost)
				}
				if cfg.APIBaseURL != "" {
					t.Errorf("Expected no APIBaseURL override by default, got '%s'", cfg.APIBaseURL)
				}
				if cfg.LocalAPIBaseURL != "http://127.0.0.1:5000" {
					t.Errorf("Unexpected default LocalAPIBaseURL '%s'", cfg.LocalAPIBaseURL)
				}
				if cfg.RemoteAPIBaseURL != "https://tmdb-backend-sdqh.onrender.com" {
					t.Errorf("Unexpected default RemoteAPIBaseURL '%s'", cfg.RemoteAPIBaseURL)
				}
				if cfg.RequestTimeout != 30*time.Second {
					t.Errorf("Expected default RequestTimeout 30s, got %v", cfg.RequestTimeout)
				}
				if cfg.DefaultGenreLimit != 10 || cfg.DefaultDirectorLimit != 10 {
					t.Errorf("Expected default limits of 10, got %d/%d", cfg.DefaultGenreLimit, cfg.DefaultDirectorLimit)
				}
				if cfg.MaxLimit != 50 {
					t.Errorf("Expected default MaxLimit 50, got %d", cfg.MaxLimit)
				}
				if cfg.DefaultChartKind != "bar" {
					t.Errorf("Expected default chart kind 'bar', got '%s'", cfg.DefaultChartKind)
				}
				if cfg.ExportStorage != ExportStorageLocal {
					t.Errorf("Expected default ExportStorage 'local', got '%s'", cfg.ExportStorage)
				}
				if cfg.ExportDir != "./exports" {
					t.Errorf("Expected default ExportDir './exports', got '%s'", cfg.ExportDir)
				}
				if cfg.MockFixtures != "./fixtures/reports.yaml" {
					t.Errorf("Unexpected default MockFixtures '%s'", cfg.MockFixtures)
				}
				if cfg.MockPort != "5000" {
					t.Errorf("Expected default MockPort '5000', got '%s'", cfg.MockPort)
				}
				if cfg.LogLevel != "info" {
					t.Errorf("Expected default LogLevel to be 'info', got '%s'", cfg.LogLevel)
				}
				if cfg.LogFormat != "auto" {
					t.Errorf("Expected default LogFormat to be 'auto', got '%s'", cfg.LogFormat)
				}
			},
		},
		{
			name: "custom configuration values",
			envVars: map[string]string{
				"PORT":                   "9000",
				"DASHBOARD_HOST":         "movies.example.com",
				"API_BASE_URL":           "http://backend:5000",
				"REQUEST_TIMEOUT":        "5s",
				"DEFAULT_GENRE_LIMIT":    "5",
				"DEFAULT_DIRECTOR_LIMIT": "15",
				"MAX_LIMIT":              "25",
				"DEFAULT_CHART_KIND":     "pie",
				"EXPORT_STORAGE":         "gcs",
				"GCS_BUCKET":             "test-bucket",
				"ENVIRONMENT":            "production",
				"LOG_LEVEL":              "debug",
				"LOG_FORMAT":             "json",
			},
			expectError: false,
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Port != "9000" {
					t.Errorf("Expected Port '9000', got '%s'", cfg.Port)
				}
				if cfg.DashboardHost != "movies.example.com" {
					t.Errorf("Expected DashboardHost 'movies.example.com', got '%s'", cfg.DashboardHost)
				}
				if cfg.APIBaseURL != "http://backend:5000" {
					t.Errorf("Expected APIBaseURL override, got '%s'", cfg.APIBaseURL)
				}
				if cfg.RequestTimeout != 5*time.Second {
					t.Errorf("Expected RequestTimeout 5s, got %v", cfg.RequestTimeout)
				}
				if cfg.DefaultGenreLimit != 5 || cfg.DefaultDirectorLimit != 15 {
					t.Errorf("Unexpected limits %d/%d", cfg.DefaultGenreLimit, cfg.DefaultDirectorLimit)
				}
				if cfg.MaxLimit != 25 {
					t.Errorf("Expected MaxLimit 25, got %d", cfg.MaxLimit)
				}
				if cfg.DefaultChartKind != "pie" {
					t.Errorf("Expected chart kind 'pie', got '%s'", cfg.DefaultChartKind)
				}
				if cfg.ExportStorage != ExportStorageGCS || cfg.GCSBucket != "test-bucket" {
					t.Errorf("Unexpected export storage %s/%s", cfg.ExportStorage, cfg.GCSBucket)
				}
				if cfg.Environment != "production" {
					t.Errorf("Expected Environment 'production', got '%s'", cfg.Environment)
				}
				if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
					t.Errorf("Unexpected log settings %s/%s", cfg.LogLevel, cfg.LogFormat)
				}
			},
		},
		{
			name:        "gcs export without bucket",
			envVars:     map[string]string{"EXPORT_STORAGE": "gcs"},
			expectError: true,
		},
		{
			name:        "unknown export storage",
			envVars:     map[string]string{"EXPORT_STORAGE": "s3"},
			expectError: true,
		},
		{
			name:        "non-positive max limit",
			envVars:     map[string]string{"MAX_LIMIT": "0"},
			expectError: true,
		},
		{
			name:        "invalid duration",
			envVars:     map[string]string{"REQUEST_TIMEOUT": "soon"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv()
			defer clearEnv()

			for key, value := range tt.envVars {
				os.Setenv(key, value)
			}

			cfg, err := Load(context.Background())

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadWithContext(t *testing.T) {
	clearEnv()
	defer clearEnv()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// envconfig does not use the context for cancellation
	cfg, err := Load(ctx)
	if err != nil {
		t.Errorf("Expected no error with cancelled context, got: %v", err)
	}
	if cfg == nil {
		t.Error("Expected config to be loaded even with cancelled context")
	}
}

// clearEnv unsets every variable the config reads
func clearEnv() {
	envVars := []string{
		"PORT", "DASHBOARD_HOST", "API_BASE_URL", "LOCAL_API_BASE_URL", "REMOTE_API_BASE_URL",
		"REQUEST_TIMEOUT", "DEFAULT_GENRE_LIMIT", "DEFAULT_DIRECTOR_LIMIT", "MAX_LIMIT",
		"DEFAULT_CHART_KIND", "EXPORT_STORAGE", "EXPORT_DIR", "GCS_BUCKET", "MOCK_FIXTURES",
		"MOCK_PORT", "ENVIRONMENT", "LOG_LEVEL", "LOG_FORMAT",
	}
	for _, env := range envVars {
		os.Unsetenv(env)
	}
}
