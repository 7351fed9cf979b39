package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Export storage modes
const (
	ExportStorageLocal = "local"
	ExportStorageGCS   = "gcs"
	ExportStorageNone  = "none"
)

// Config holds all configuration for the movie report dashboard
type Config struct {
	// Server configuration
	Port          string `env:"PORT,default=8080"`
	DashboardHost string `env:"DASHBOARD_HOST,default=localhost"`

	// Report backend configuration
	APIBaseURL       string        `env:"API_BASE_URL"`
	LocalAPIBaseURL  string        `env:"LOCAL_API_BASE_URL,default=http://127.0.0.1:5000"`
	RemoteAPIBaseURL string        `env:"REMOTE_API_BASE_URL,default=https://tmdb-backend-sdqh.onrender.com"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT,default=30s"`

	// Initial view selections
	DefaultGenreLimit    int    `env:"DEFAULT_GENRE_LIMIT,default=10"`
	DefaultDirectorLimit int    `env:"DEFAULT_DIRECTOR_LIMIT,default=10"`
	MaxLimit             int    `env:"MAX_LIMIT,default=50"`
	DefaultChartKind     string `env:"DEFAULT_CHART_KIND,default=bar"`

	// Chart export configuration
	ExportStorage string `env:"EXPORT_STORAGE,default=local"`
	ExportDir     string `env:"EXPORT_DIR,default=./exports"`
	GCSBucket     string `env:"GCS_BUCKET"`

	// Mock backend configuration
	MockFixtures string `env:"MOCK_FIXTURES,default=./fixtures/reports.yaml"`
	MockPort     string `env:"MOCK_PORT,default=5000"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=auto"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express
func (c *Config) Validate() error {
	switch c.ExportStorage {
	case ExportStorageLocal, ExportStorageNone:
	case ExportStorageGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when EXPORT_STORAGE=gcs")
		}
	default:
		return fmt.Errorf("unsupported EXPORT_STORAGE %q", c.ExportStorage)
	}

	if c.MaxLimit < 1 {
		return fmt.Errorf("MAX_LIMIT must be positive, got %d", c.MaxLimit)
	}
	if c.DefaultGenreLimit < 0 || c.DefaultDirectorLimit < 0 {
		return fmt.Errorf("default limits must not be negative")
	}
	return nil
}
