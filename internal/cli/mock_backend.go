package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"moviedash/internal/logger"
	"moviedash/internal/mocks"
)

var (
	mockFixtures string
	mockPort     string
	mockWatch    bool
)

var mockBackendCmd = &cobra.Command{
	Use:   "mock-backend",
	Short: "Serve fixture data on the backend report paths",
	Long: `Run a stand-in for the movie report backend. It serves
/api/reports/top-genres and /api/reports/top-directors-by-revenue from a YAML
fixture file and reloads the file when it changes.`,
	RunE: runMockBackend,
}

func init() {
	mockBackendCmd.Flags().StringVarP(&mockFixtures, "fixtures", "f", "", "fixture file (overrides MOCK_FIXTURES)")
	mockBackendCmd.Flags().StringVarP(&mockPort, "port", "p", "", "listen port (overrides MOCK_PORT)")
	mockBackendCmd.Flags().BoolVar(&mockWatch, "watch", true, "reload fixtures when the file changes")
}

func runMockBackend(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if mockFixtures != "" {
		cfg.MockFixtures = mockFixtures
	}
	if mockPort != "" {
		cfg.MockPort = mockPort
	}

	backend, err := mocks.NewBackendFromFile(cfg.MockFixtures)
	if err != nil {
		return err
	}

	if mockWatch {
		if err := backend.Watch(ctx, 0); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- backend.Start(":" + cfg.MockPort)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down mock backend...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return backend.Shutdown(shutdownCtx)
}
