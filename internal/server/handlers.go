package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"moviedash/internal/charts"
	"moviedash/internal/dashboard"
	"moviedash/internal/logger"
	"moviedash/internal/models"
	"moviedash/internal/reports"
	"moviedash/internal/storage"
)

// HandleRoot serves the dashboard page, or the loading view while the
// initial fetch is in flight
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if s.Orch.State().Phase() == dashboard.PhaseLoading {
		s.renderTemplate(w, "loading.html", map[string]interface{}{"RefreshSeconds": refreshSeconds})
		return
	}

	var search *reports.SearchResult
	if r.URL.Query().Has("q") {
		res := s.Orch.Search(r.URL.Query().Get("q"))
		search = &res
	}

	data, err := s.buildPage(search)
	if err != nil {
		s.log.Error("Failed to build dashboard page", err)
		http.Error(w, "Failed to render charts", http.StatusInternalServerError)
		return
	}
	s.renderTemplate(w, "dashboard.html", data)
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	storageCheck := "disabled"
	if s.Exporter.Store() != nil {
		storageCheck = "ok"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"version":   s.Version,
		"phase":     s.Orch.State().Phase(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": map[string]string{
			"storage": storageCheck,
			"config":  "ok",
		},
	})
}

// HandleView returns the current snapshot as JSON
func (s *Server) HandleView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Orch.View())
}

// HandleSearch returns search matches for ?q= as JSON
func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Orch.Search(r.URL.Query().Get("q")))
}

// HandleFilter applies the limit sliders
func (s *Server) HandleFilter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	limits := []struct {
		field string
		set   func(int) int
	}{
		{"genreLimit", s.Orch.SetGenreLimit},
		{"directorLimit", s.Orch.SetDirectorLimit},
	}
	for _, l := range limits {
		v := r.PostForm.Get(l.field)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid %s", l.field), http.StatusBadRequest)
			return
		}
		l.set(n)
	}
	redirectHome(w, r)
}

// HandleSort applies the sort selector
func (s *Server) HandleSort(w http.ResponseWriter, r *http.Request) {
	s.Orch.SetSortOrder(models.ParseSortOrder(r.FormValue("order")))
	redirectHome(w, r)
}

// HandleChartType applies the chart-type selector
func (s *Server) HandleChartType(w http.ResponseWriter, r *http.Request) {
	kind, err := models.ParseChartKind(r.FormValue("kind"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.Orch.SetChartKind(kind)
	redirectHome(w, r)
}

// HandleTable switches the table tab
func (s *Server) HandleTable(w http.ResponseWriter, r *http.Request) {
	tab, err := models.ParseSection(r.FormValue("tab"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.Orch.ShowTable(tab)
	redirectHome(w, r)
}

// HandleRefresh re-fetches one section in the background. The section is
// already marked loading when the redirect is sent.
func (s *Server) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	section, err := models.ParseSection(r.PathValue("section"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.Orch.Refresh(s.ctx, section)
	redirectHome(w, r)
}

// HandleReload restarts the full initial load
func (s *Server) HandleReload(w http.ResponseWriter, r *http.Request) {
	s.log.Info("Full reload requested")
	s.Orch.Start(s.ctx)
	redirectHome(w, r)
}

// HandleExport downloads a chart as PNG and persists it to the export store
func (s *Server) HandleExport(w http.ResponseWriter, r *http.Request) {
	target, ok := strings.CutSuffix(r.PathValue("file"), ".png")
	if !ok {
		http.NotFound(w, r)
		return
	}

	exp, err := s.Exporter.Export(r.Context(), target)
	switch {
	case errors.Is(err, dashboard.ErrUnknownTarget), errors.Is(err, charts.ErrEmptyState):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		s.log.Error("Chart export failed", err, logger.Fields{"target": target})
		http.Error(w, "Chart export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(exp.Name))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exp.Name))
	if exp.Location != "" {
		w.Header().Set("X-Export-Location", exp.Location)
	}
	w.Write(exp.Data)
}

// HandleListExports lists recent exports from the export store
func (s *Server) HandleListExports(w http.ResponseWriter, r *http.Request) {
	store := s.Exporter.Store()
	if store == nil {
		http.Error(w, "Export storage is disabled", http.StatusNotFound)
		return
	}

	exports, err := store.ListExports(r.Context(), parseListLimit(r, 10))
	if err != nil {
		s.log.Error("Failed to list exports", err)
		http.Error(w, "Failed to list exports", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"exports":   exports,
		"count":     len(exports),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleFileProxy serves a stored export by its object path
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	store := s.Exporter.Store()
	if store == nil {
		http.Error(w, "Export storage is disabled", http.StatusNotFound)
		return
	}

	filePath := r.PathValue("path")
	if !strings.HasPrefix(filePath, "exports/") || !strings.HasSuffix(filePath, ".png") || strings.Contains(filePath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	data, err := store.GetFile(r.Context(), filePath)
	if err != nil {
		s.log.Warn("Stored export not found", logger.Fields{"path": filePath, "error": err.Error()})
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Write(data)
}
