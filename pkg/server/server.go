// Package server exposes table views and generated forms over HTTP.
package server

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-compositor/internal/logging"
	"github.com/goliatone/go-compositor/pkg/generate"
	"github.com/goliatone/go-compositor/pkg/markup"
	"github.com/goliatone/go-compositor/pkg/render"
	"github.com/goliatone/go-compositor/pkg/renderers/fragment"
	"github.com/goliatone/go-compositor/pkg/renderers/jsonnode"
	"github.com/goliatone/go-compositor/pkg/renderers/page"
	"github.com/goliatone/go-compositor/pkg/schema"
)

// Option configures a Server.
type Option func(*Server)

// WithRegistry replaces the default renderer registry (html, page, json).
func WithRegistry(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.renderers = registry
		}
	}
}

// WithDefaultRenderer selects the renderer used when a request has no
// format query parameter.
func WithDefaultRenderer(name string) Option {
	return func(s *Server) {
		if name = strings.TrimSpace(name); name != "" {
			s.defaultRenderer = name
		}
	}
}

// WithLogger receives request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithGenerateOptions applies generator options (classes, theme, blank
// nulls) to every view.
func WithGenerateOptions(options ...generate.Option) Option {
	return func(s *Server) {
		s.generateOptions = append(s.generateOptions, options...)
	}
}

// WithMetricsRegistry records metrics into reg and serves it on /metrics.
// A private registry is used by default.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.metricsRegistry = reg
		}
	}
}

// WithAssets serves fsys under /assets/. The page renderer stylesheet is
// served by default.
func WithAssets(fsys fs.FS) Option {
	return func(s *Server) {
		s.assets = fsys
	}
}

// Server renders the tables of a schema.Store.
type Server struct {
	store           *schema.Store
	renderers       *render.Registry
	defaultRenderer string
	logger          *slog.Logger
	generateOptions []generate.Option
	metricsRegistry *prometheus.Registry
	metrics         *Metrics
	assets          fs.FS
}

// New constructs a Server over store.
func New(store *schema.Store, options ...Option) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("server: store is required")
	}
	s := &Server{
		store:           store,
		defaultRenderer: "page",
		logger:          logging.NewNop(),
		assets:          page.AssetsFS(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.renderers == nil {
		pageRenderer, err := page.New()
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		s.renderers = render.NewRegistry(fragment.New(), jsonnode.New(), pageRenderer)
	}
	if !s.renderers.Has(s.defaultRenderer) {
		return nil, fmt.Errorf("server: default renderer %q not registered", s.defaultRenderer)
	}
	if s.metricsRegistry == nil {
		s.metricsRegistry = prometheus.NewRegistry()
	}
	metrics, err := NewMetrics(s.metricsRegistry)
	if err != nil {
		return nil, fmt.Errorf("server: register metrics: %w", err)
	}
	s.metrics = metrics
	return s, nil
}

// Handler returns the HTTP routes:
//
//	GET  /health
//	GET  /tables
//	GET  /tables/{table}          table view of the stored rows
//	GET  /tables/{table}/form     empty form, or ?row=<id> to edit a row
//	POST /tables/{table}/form     normalised submission as JSON
//	GET  /metrics
//	GET  /assets/*
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/tables", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]any{"tables": s.store.Names()})
	})
	r.Route("/tables/{table}", func(r chi.Router) {
		r.Get("/", s.tableView)
		r.Get("/form", s.formView)
		r.Post("/form", s.submitForm)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.metricsRegistry, promhttp.HandlerOpts{}))
	if s.assets != nil {
		r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(s.assets))))
	}

	return r
}

func (s *Server) tableView(w http.ResponseWriter, r *http.Request) {
	table, ok := s.lookup(w, r)
	if !ok {
		return
	}
	started := time.Now()

	rows := make([]generate.Row, 0, len(table.Rows))
	for _, row := range table.Rows {
		rows = append(rows, generate.Row(row))
	}
	root := generate.Table(rows, table.Columns, table.DisplayLabels(), s.options()...)
	s.respond(w, r, table.Name, "table", http.StatusOK, root, render.RenderOptions{Title: table.Name})
	s.metrics.duration.WithLabelValues("table").Observe(time.Since(started).Seconds())
}

func (s *Server) formView(w http.ResponseWriter, r *http.Request) {
	table, ok := s.lookup(w, r)
	if !ok {
		return
	}
	started := time.Now()

	var values map[string]any
	if id := r.URL.Query().Get("row"); id != "" {
		values = findRow(table.Rows, id)
		if values == nil {
			http.Error(w, fmt.Sprintf("row %q not found", id), http.StatusNotFound)
			return
		}
	}

	root := generate.Form(table.Columns, s.formOptions(table, values)...)
	s.respond(w, r, table.Name, "form", http.StatusOK, root, render.RenderOptions{Title: table.Name})
	s.metrics.duration.WithLabelValues("form").Observe(time.Since(started).Seconds())
}

func (s *Server) submitForm(w http.ResponseWriter, r *http.Request) {
	table, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	submitted := make(map[string]any, len(r.PostForm))
	for key, values := range r.PostForm {
		submitted[key] = values
	}

	values, err := generate.FormValues(table.Columns, submitted)
	if err != nil {
		s.metrics.submissions.WithLabelValues(table.Name, "invalid").Inc()
		s.logger.Info("server: rejected submission", "table", table.Name, "error", err)

		mapping := render.MapErrorPayload(table.Columns, render.ErrorPayload(err))
		root := generate.Form(table.Columns, s.formOptions(table, submitted)...)
		s.respond(w, r, table.Name, "form", http.StatusUnprocessableEntity, root, render.RenderOptions{
			Title:    table.Name,
			Messages: mapping.Messages(table.Columns, table.Labels),
		})
		return
	}

	s.metrics.submissions.WithLabelValues(table.Name, "accepted").Inc()
	s.writeJSON(w, http.StatusOK, map[string]any{"table": table.Name, "values": values})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (schema.Table, bool) {
	name := chi.URLParam(r, "table")
	table, ok := s.store.Table(name)
	if !ok {
		http.Error(w, fmt.Sprintf("table %q not found", name), http.StatusNotFound)
	}
	return table, ok
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, table, view string, status int, root markup.Node, options render.RenderOptions) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = s.defaultRenderer
	}

	out, contentType, err := s.renderers.Render(r.Context(), format, root, options)
	if err != nil {
		s.logger.Error("server: render failed", "table", table, "view", view, "renderer", format, "error", err)
		if !s.renderers.Has(format) {
			http.Error(w, fmt.Sprintf("unknown format %q", format), http.StatusBadRequest)
			return
		}
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	s.metrics.renders.WithLabelValues(table, view, format).Inc()
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		s.logger.Warn("server: write response", "error", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("server: encode response", "error", err)
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.logger.Warn("server: write response", "error", err)
	}
}

func (s *Server) options() []generate.Option {
	options := []generate.Option{generate.WithLogger(s.logger)}
	return append(options, s.generateOptions...)
}

func (s *Server) formOptions(table schema.Table, values map[string]any) []generate.Option {
	options := s.options()
	if len(table.Labels) > 0 {
		options = append(options, generate.WithLabels(table.Labels))
	}
	if values != nil {
		options = append(options, generate.WithValues(flattenValues(values)))
	}
	return options
}

// flattenValues reduces url.Values style slices to their first entry so
// rejected submissions can repopulate the form.
func flattenValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		if list, ok := value.([]string); ok {
			if len(list) == 0 {
				continue
			}
			out[key] = list[0]
			continue
		}
		out[key] = value
	}
	return out
}

func findRow(rows []map[string]any, id string) map[string]any {
	for _, row := range rows {
		if markup.Stringify(row["id"]) == id {
			return row
		}
	}
	return nil
}
