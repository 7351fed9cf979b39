package mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"moviedash/internal/fetchers"
	"moviedash/internal/logger"
	"moviedash/internal/models"
)

// Backend serves fixture data on the report backend paths
type Backend struct {
	mu       sync.RWMutex
	fixtures *Fixtures
	path     string
	echo     *echo.Echo
	log      *logger.Logger
}

// NewBackend creates a backend serving fixtures
func NewBackend(fixtures *Fixtures) *Backend {
	if fixtures == nil {
		fixtures = &Fixtures{}
	}
	b := &Backend{
		fixtures: fixtures,
		log:      logger.Component("mock-backend"),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(b.requestLogger)
	b.RegisterRoutes(e)
	b.echo = e

	return b
}

// NewBackendFromFile loads fixtures from path and remembers the path for Reload and Watch
func NewBackendFromFile(path string) (*Backend, error) {
	fixtures, err := LoadFixtures(path)
	if err != nil {
		return nil, err
	}
	b := NewBackend(fixtures)
	b.path = path
	return b, nil
}

// RegisterRoutes binds the report endpoints to e
func (b *Backend) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", b.handleHealth)

	api := e.Group("/api/reports")
	api.GET("/top-genres", b.handleGenres)
	api.GET("/top-directors-by-revenue", b.handleDirectors)
}

// ServeHTTP lets the backend be mounted on any http server or httptest
func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown is called
func (b *Backend) Start(addr string) error {
	b.log.Info("Mock backend listening", logger.Fields{"addr": addr, "fixtures": b.path})
	if err := b.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mock backend failed: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully
func (b *Backend) Shutdown(ctx context.Context) error {
	return b.echo.Shutdown(ctx)
}

// Fixtures returns the fixtures currently served
func (b *Backend) Fixtures() *Fixtures {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fixtures
}

// SetFixtures swaps the served data
func (b *Backend) SetFixtures(f *Fixtures) {
	b.mu.Lock()
	b.fixtures = f
	b.mu.Unlock()
}

// Reload re-reads the fixture file. On error the previous data stays in place.
func (b *Backend) Reload() error {
	if b.path == "" {
		return fmt.Errorf("backend has no fixture file")
	}
	f, err := LoadFixtures(b.path)
	if err != nil {
		return err
	}
	b.SetFixtures(f)
	b.log.Info("Fixtures reloaded", logger.Fields{
		"genres":    len(f.Genres),
		"directors": len(f.Directors),
	})
	return nil
}

func (b *Backend) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "moviedash-mock-backend",
		"timestamp": time.Now().UTC(),
	})
}

func (b *Backend) handleGenres(c echo.Context) error {
	return b.serve(c, models.SectionGenres, func(f *Fixtures) interface{} {
		return nonNil(f.Genres)
	})
}

func (b *Backend) handleDirectors(c echo.Context) error {
	return b.serve(c, models.SectionDirectors, func(f *Fixtures) interface{} {
		return nonNil(f.Directors)
	})
}

func (b *Backend) serve(c echo.Context, section models.Section, rows func(*Fixtures) interface{}) error {
	f := b.Fixtures()

	if f.Latency > 0 {
		select {
		case <-time.After(f.Latency):
		case <-c.Request().Context().Done():
			return c.Request().Context().Err()
		}
	}

	if status := f.failureFor(section); status != 0 {
		return c.JSON(status, map[string]string{
			"error": fmt.Sprintf("injected failure for %s", fetchers.PathFor(section)),
		})
	}
	return c.JSON(http.StatusOK, rows(f))
}

func (b *Backend) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		b.log.Debug("Request served", logger.Fields{
			"method":   c.Request().Method,
			"path":     c.Request().URL.Path,
			"status":   c.Response().Status,
			"duration": time.Since(start).String(),
		})
		return nil
	}
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
