package config

import (
	"os"
	"strings"
)

// Version is overridden at build time with -ldflags "-X moviedash/internal/config.Version=..."
var Version = ""

// GetVersion returns the version from the environment, the build, or the VERSION file
func GetVersion() string {
	// CI/CD sets APP_VERSION on deployed images
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}

	if Version != "" {
		return Version
	}

	if content, err := os.ReadFile("VERSION"); err == nil {
		if v := strings.TrimSpace(string(content)); v != "" {
			return v
		}
	}

	return "0.1.0"
}
