// Package cli contains the moviedash commands.
package cli

import (
	"github.com/spf13/cobra"

	"moviedash/internal/config"
)

var (
	// Global flags
	logLevel  string
	logFormat string
	apiURL    string
)

var rootCmd = &cobra.Command{
	Use:   "moviedash",
	Short: "Movie report dashboard",
	Long: `moviedash shows the top genres by film count and the top directors by
revenue from the movie report backend.

Commands:
  serve         run the web dashboard
  tui           run the dashboard in the terminal
  export        export the current charts as PNG and exit
  mock-backend  serve fixture data on the backend report paths
  version       print the version

Configuration comes from the environment (PORT, API_BASE_URL, EXPORT_STORAGE,
...). Flags override it for a single run.`,
	SilenceUsage: true,
	Version:      config.GetVersion(),
}

// Execute runs the root command. It is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: json, text, auto (overrides LOG_FORMAT)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "report backend base URL (overrides API_BASE_URL)")

	rootCmd.AddCommand(serveCmd, tuiCmd, exportCmd, mockBackendCmd, versionCmd)
}
