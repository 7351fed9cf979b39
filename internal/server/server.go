package server

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"moviedash/internal/config"
	"moviedash/internal/dashboard"
	"moviedash/internal/logger"
	"moviedash/internal/reports"
	"moviedash/internal/transform"
)

//go:embed templates/*.html
var templateFS embed.FS

// EChartsAssetURL is where the page loads the echarts runtime from
const EChartsAssetURL = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

// Server is the dashboard web front end
type Server struct {
	Config   *config.Config
	Orch     *dashboard.Orchestrator
	Exporter *dashboard.Exporter
	Version  string

	// ctx outlives requests and bounds background refreshes
	ctx   context.Context
	pages *template.Template
	about template.HTML
	log   *logger.Logger
}

// NewServer creates the web front end. Refreshes triggered through it run
// under ctx.
func NewServer(ctx context.Context, cfg *config.Config, orch *dashboard.Orchestrator, exporter *dashboard.Exporter, version string) (*Server, error) {
	pages, err := template.New("pages").Funcs(template.FuncMap{
		"millions": func(revenue float64) string { return transform.FormatMillions(revenue, 1) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	about, err := renderMarkdown(reports.AboutMarkdown())
	if err != nil {
		return nil, fmt.Errorf("failed to render about text: %w", err)
	}

	if exporter == nil {
		exporter = dashboard.NewExporter(orch, nil)
	}

	return &Server{
		Config:   cfg,
		Orch:     orch,
		Exporter: exporter,
		Version:  version,
		ctx:      ctx,
		pages:    pages,
		about:    about,
		log:      logger.Component("server"),
	}, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.HandleHealth)
	mux.HandleFunc("GET /api/view", s.HandleView)
	mux.HandleFunc("GET /api/search", s.HandleSearch)
	mux.HandleFunc("GET /exports", s.HandleListExports)
	mux.HandleFunc("GET /files/{path...}", s.HandleFileProxy)
	mux.HandleFunc("GET /export/{file}", s.HandleExport)

	mux.HandleFunc("POST /actions/filter", s.HandleFilter)
	mux.HandleFunc("POST /actions/sort", s.HandleSort)
	mux.HandleFunc("POST /actions/chart-type", s.HandleChartType)
	mux.HandleFunc("POST /actions/table", s.HandleTable)
	mux.HandleFunc("POST /actions/refresh/{section}", s.HandleRefresh)
	mux.HandleFunc("POST /actions/reload", s.HandleReload)

	mux.HandleFunc("GET /{$}", s.HandleRoot)

	return mux
}

// Close releases the export store
func (s *Server) Close() error {
	if store := s.Exporter.Store(); store != nil {
		return store.Close()
	}
	return nil
}

func renderMarkdown(src string) (template.HTML, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
