package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	resumake "github.com/resumake/go-resumake"
	"github.com/resumake/go-resumake/internal/config"
)

// fakeRenderer returns canned output and records the last request.
type fakeRenderer struct {
	lastContent resumake.ResumeContent
	lastOpts    resumake.DisplayOptions
	renderErr   error
	exportErr   error
}

func (f *fakeRenderer) RenderDocument(_ context.Context, content resumake.ResumeContent, opts resumake.DisplayOptions) (string, error) {
	f.lastContent, f.lastOpts = content, opts
	if f.renderErr != nil {
		return "", f.renderErr
	}
	return "<!DOCTYPE html><html><body>doc</body></html>", nil
}

func (f *fakeRenderer) ExportPDF(_ context.Context, content resumake.ResumeContent, opts resumake.DisplayOptions) ([]byte, error) {
	f.lastContent, f.lastOpts = content, opts
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	return []byte("%PDF-fake"), nil
}

func (f *fakeRenderer) Close() error { return nil }

func newTestServer(t *testing.T) (*server, *fakeRenderer) {
	t.Helper()

	fake := &fakeRenderer{}
	registry := resumake.NewStyleRegistry()
	sink := &resumake.MemorySink{}
	registry.Init(sink)
	t.Cleanup(registry.Dispose)

	return &server{
		svc:      fake,
		registry: registry,
		sink:     sink,
		cfg:      config.DefaultConfig(),
		log:      zap.NewNop(),
	}, fake
}

func TestHandleRender(t *testing.T) {
	t.Parallel()

	srv, fake := newTestServer(t)
	handler := srv.routes()

	body := `{"markdown":"# Jane","twoColumn":true,"template":"modern","paperSize":"letter"}`
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "doc") {
		t.Errorf("body = %q", rec.Body.String())
	}

	if !fake.lastContent.TwoColumn {
		t.Error("two-column flag not forwarded")
	}
	if fake.lastOpts.Template != "modern" || fake.lastOpts.PaperSize != "letter" {
		t.Errorf("opts = %+v", fake.lastOpts)
	}
	if fake.lastOpts.TemplateCSS == "" {
		t.Error("composed stylesheet should be inlined")
	}
}

func TestHandleRenderDefaultsFromConfig(t *testing.T) {
	t.Parallel()

	srv, fake := newTestServer(t)
	srv.cfg.Template.Name = "executive"
	srv.cfg.Page.Size = "letter"
	handler := srv.routes()

	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(`{"markdown":"# x"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if fake.lastOpts.Template != "executive" || fake.lastOpts.PaperSize != "letter" {
		t.Errorf("opts = %+v, want config defaults", fake.lastOpts)
	}
}

func TestHandleRenderBadJSON(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	handler := srv.routes()

	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(`{"bogus":`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleRenderUnknownField(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	handler := srv.routes()

	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(`{"surprise":true}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleRenderFailure(t *testing.T) {
	t.Parallel()

	srv, fake := newTestServer(t)
	fake.renderErr = errors.New("boom")
	handler := srv.routes()

	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(`{"markdown":"# x"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestHandleExport(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	handler := srv.routes()

	req := httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(`{"markdown":"# x"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.String() != "%PDF-fake" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestStylesEndpointServesComposedSheet(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	handler := srv.routes()

	req := httptest.NewRequest(http.MethodGet, "/styles.css", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), ".resume-container") {
		t.Error("stylesheet should contain base styles")
	}
}

func TestTemplateCSSLifecycle(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	handler := srv.routes()

	put := httptest.NewRequest(http.MethodPut, "/templates/modern/css", strings.NewReader(".template-modern a { color: pink; }"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, put)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PUT status = %d", rec.Code)
	}

	get := httptest.NewRequest(http.MethodGet, "/templates/modern/css", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, get)
	if rec.Body.String() != ".template-modern a { color: pink; }" {
		t.Errorf("GET body = %q", rec.Body.String())
	}

	styles := httptest.NewRequest(http.MethodGet, "/styles.css", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, styles)
	if !strings.Contains(rec.Body.String(), "pink") {
		t.Error("override should flow into the composed stylesheet")
	}

	del := httptest.NewRequest(http.MethodDelete, "/templates/modern/css", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, del)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/styles.css", nil))
	if strings.Contains(rec.Body.String(), "pink") {
		t.Error("removed override should disappear from the stylesheet")
	}
}

func TestClearStylesEndpoint(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	handler := srv.routes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/styles/clear", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/styles.css", nil))
	if rec.Body.String() != "" {
		t.Errorf("stylesheet should be blank after clear, got %q", rec.Body.String())
	}
}

func TestListTemplatesEndpoint(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	handler := srv.routes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	for _, want := range []string{"professional", "modern", "minimalist", "creative", "executive"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("template list missing %q", want)
		}
	}
}

func TestHealthzEndpoint(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	handler := srv.routes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
