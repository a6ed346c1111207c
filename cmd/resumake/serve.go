package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	resumake "github.com/resumake/go-resumake"
	"github.com/resumake/go-resumake/internal/config"
)

// Request body limits.
const (
	maxRenderBodyBytes = 2 << 20 // 2 MiB of JSON
	maxCSSBodyBytes    = 1 << 20 // 1 MiB of CSS
	shutdownGrace      = 10 * time.Second
)

// renderRequest is the JSON body for render and export endpoints.
type renderRequest struct {
	Markdown  string `json:"markdown"`
	HTML      string `json:"html"`
	TwoColumn bool   `json:"twoColumn"`
	TwoPage   bool   `json:"twoPage"`
	Template  string `json:"template"`
	PaperSize string `json:"paperSize"`
	FileURL   string `json:"fileUrl"`
	FileName  string `json:"fileName"`
}

// server holds the preview server state.
type server struct {
	svc      Renderer
	registry *resumake.StyleRegistry
	sink     *resumake.MemorySink
	cfg      *config.Config
	log      *zap.Logger
}

// runServe starts the preview server and blocks until the context is
// canceled or the listener fails.
func runServe(ctx context.Context, flags *serveFlags, env *Environment) error {
	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.style.template != "" {
		cfg.Template.Name = flags.style.template
	}
	if flags.style.paperSize != "" {
		cfg.Page.Size = flags.style.paperSize
	}

	svc := resumake.New()
	defer func() { _ = svc.Close() }()

	registry := resumake.NewStyleRegistry(resumake.WithRegistryLogger(log))
	sink := &resumake.MemorySink{}
	registry.Init(sink)
	defer registry.Dispose()

	for name, css := range cfg.Template.CustomCSS {
		registry.AddTemplateCSS(name, css)
	}

	s := &server{svc: svc, registry: registry, sink: sink, cfg: cfg, log: log}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("preview server listening", zap.String("addr", cfg.Server.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// routes builds the HTTP router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Post("/render", s.handleRender)
	r.Post("/export", s.handleExport)
	r.Get("/styles.css", s.handleStyles)
	r.Get("/templates", s.handleListTemplates)
	r.Route("/templates/{template}/css", func(r chi.Router) {
		r.Get("/", s.handleGetTemplateCSS)
		r.Put("/", s.handlePutTemplateCSS)
		r.Delete("/", s.handleDeleteTemplateCSS)
	})
	r.Post("/styles/clear", s.handleClearStyles)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}

// logRequests logs method, path, and duration for every request.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// decodeRenderRequest parses and bounds the render/export body.
func decodeRenderRequest(r *http.Request) (*renderRequest, error) {
	var req renderRequest
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRenderBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// contentFromRequest maps a render request onto layout-aware content,
// falling back to the server's configured layout knobs where the request
// leaves them unset.
func (s *server) contentFromRequest(req *renderRequest) (resumake.ResumeContent, resumake.DisplayOptions) {
	template := req.Template
	if template == "" {
		template = s.cfg.Template.Name
	}
	paperSize := req.PaperSize
	if paperSize == "" {
		paperSize = s.cfg.Page.Size
	}

	content := buildContent(req.Markdown, layoutFlags{
		twoColumn: req.TwoColumn,
		twoPage:   req.TwoPage,
	}, uploadFlags{
		fileURL:  req.FileURL,
		fileName: req.FileName,
	})
	content.HTML = req.HTML

	opts := resumake.DisplayOptions{
		PaperSize:   paperSize,
		Template:    template,
		TemplateCSS: s.registry.ComposedCSS(),
	}
	return content, opts
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRenderRequest(r)
	if err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	content, opts := s.contentFromRequest(req)
	doc, err := s.svc.RenderDocument(r.Context(), content, opts)
	if err != nil {
		s.log.Warn("render failed", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, doc)
}

func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRenderRequest(r)
	if err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	content, opts := s.contentFromRequest(req)
	pdfBytes, err := s.svc.ExportPDF(r.Context(), content, opts)
	if err != nil {
		s.log.Warn("export failed", zap.Error(err))
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	_, _ = w.Write(pdfBytes)
}

func (s *server) handleStyles(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = io.WriteString(w, s.sink.CSS())
}

func (s *server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"templates": resumake.Templates(),
		"default":   resumake.DefaultTemplate,
	})
}

func (s *server) handleGetTemplateCSS(w http.ResponseWriter, r *http.Request) {
	template := chi.URLParam(r, "template")
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = io.WriteString(w, s.registry.GetTemplateCSS(template))
}

func (s *server) handlePutTemplateCSS(w http.ResponseWriter, r *http.Request) {
	template := chi.URLParam(r, "template")
	css, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCSSBodyBytes))
	if err != nil {
		http.Error(w, "reading body: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.registry.AddTemplateCSS(template, string(css))
	s.log.Info("template override updated",
		zap.String("template", resumake.ResolveTemplate(template)),
		zap.Int("bytes", len(css)),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleDeleteTemplateCSS(w http.ResponseWriter, r *http.Request) {
	template := chi.URLParam(r, "template")
	s.registry.RemoveTemplateCSS(template)
	s.log.Info("template override removed", zap.String("template", resumake.ResolveTemplate(template)))
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleClearStyles(w http.ResponseWriter, _ *http.Request) {
	s.registry.ClearCSS()
	s.log.Info("styles cleared")
	w.WriteHeader(http.StatusNoContent)
}
