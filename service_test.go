package resumake

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// fakePDFConverter records the document it receives and returns canned bytes.
type fakePDFConverter struct {
	gotHTML string
	gotOpts *pdfOptions
	result  []byte
	err     error
	closed  bool
}

func (f *fakePDFConverter) ToPDF(_ context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	f.gotHTML = htmlContent
	f.gotOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakePDFConverter) Close() error {
	f.closed = true
	return nil
}

func newTestService(pdf pdfConverter) *Service {
	return &Service{
		cfg:       serviceConfig{timeout: defaultTimeout},
		assembler: newResumeAssembler(),
		resolver:  newAssetResolver(),
		display:   newDocumentBuilder(),
		pdf:       pdf,
	}
}

func TestServiceRenderDocument(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakePDFConverter{})

	doc, err := svc.RenderDocument(context.Background(), ResumeContent{Markdown: "# Jane"}, DisplayOptions{})
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		displayStyleMarker,
		"Jane",
		`class="resume-heading-1"`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestServiceRenderDocumentResolvesUploads(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakePDFConverter{})

	content := ResumeContent{
		Markdown:         "![cv](report.pdf)",
		UploadedFileURL:  "blob:xyz",
		UploadedFileName: "report.pdf",
	}
	doc, err := svc.RenderDocument(context.Background(), content, DisplayOptions{})
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	if !strings.Contains(doc, `src="blob:xyz"`) {
		t.Errorf("uploaded reference not substituted:\n%s", doc)
	}
}

func TestServiceRenderDocumentOptsOverrideContentUpload(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakePDFConverter{})

	content := ResumeContent{
		Markdown:         "![cv](report.pdf)",
		UploadedFileURL:  "blob:old",
		UploadedFileName: "report.pdf",
	}
	opts := DisplayOptions{UploadedFileURL: "blob:new", UploadedFileName: "report.pdf"}

	doc, err := svc.RenderDocument(context.Background(), content, opts)
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	if !strings.Contains(doc, `src="blob:new"`) || strings.Contains(doc, "blob:old") {
		t.Errorf("options upload should win over content upload:\n%s", doc)
	}
}

func TestServiceRenderDocumentCanceledContext(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakePDFConverter{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.RenderDocument(ctx, ResumeContent{Markdown: "# x"}, DisplayOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestServiceExportPDF(t *testing.T) {
	t.Parallel()

	fake := &fakePDFConverter{result: []byte("%PDF-fake")}
	svc := newTestService(fake)

	got, err := svc.ExportPDF(context.Background(), ResumeContent{Markdown: "# Jane"}, DisplayOptions{PaperSize: "letter"})
	if err != nil {
		t.Fatalf("ExportPDF() error = %v", err)
	}
	if string(got) != "%PDF-fake" {
		t.Errorf("got %q, want converter result", got)
	}

	if fake.gotOpts == nil || fake.gotOpts.PaperSize != "letter" {
		t.Errorf("paper size not forwarded: %+v", fake.gotOpts)
	}
	if !strings.Contains(fake.gotHTML, "<!DOCTYPE html>") {
		t.Error("converter should receive a complete display document")
	}
	if !strings.Contains(fake.gotHTML, "size: 8.50in 11.00in") {
		t.Error("print styles should carry the requested paper size")
	}
}

func TestServiceExportPDFMatchesRenderedDocument(t *testing.T) {
	t.Parallel()

	fake := &fakePDFConverter{result: []byte("ok")}
	svc := newTestService(fake)

	content := ResumeContent{Markdown: "# Jane"}
	opts := DisplayOptions{PaperSize: "a4"}

	doc, err := svc.RenderDocument(context.Background(), content, opts)
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	if _, err := svc.ExportPDF(context.Background(), content, opts); err != nil {
		t.Fatalf("ExportPDF() error = %v", err)
	}

	// Markdown content takes no extra print pass; the converter prints the
	// same document the caller could render directly.
	if fake.gotHTML != doc {
		t.Error("exported document should match the rendered document")
	}
}

func TestServiceExportPDFForcesBackgroundsForRawHTML(t *testing.T) {
	t.Parallel()

	fake := &fakePDFConverter{result: []byte("ok")}
	svc := newTestService(fake)

	content := ResumeContent{HTML: `<div style="background: #eee;">x</div>`}
	if _, err := svc.ExportPDF(context.Background(), content, DisplayOptions{}); err != nil {
		t.Fatalf("ExportPDF() error = %v", err)
	}

	if !strings.Contains(fake.gotHTML, "background: #eee;"+colorAdjustSuffix) {
		t.Errorf("raw-HTML export should force background colors:\n%s", fake.gotHTML)
	}
}

func TestServiceExportPDFWrapsConverterError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("browser gone")
	svc := newTestService(&fakePDFConverter{err: wantErr})

	_, err := svc.ExportPDF(context.Background(), ResumeContent{Markdown: "# x"}, DisplayOptions{})
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want wrapped %v", err, wantErr)
	}
	if !strings.Contains(err.Error(), "converting to PDF") {
		t.Errorf("error should carry context: %v", err)
	}
}

func TestServiceClose(t *testing.T) {
	t.Parallel()

	fake := &fakePDFConverter{}
	svc := newTestService(fake)

	if err := svc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !fake.closed {
		t.Error("Close() should close the PDF converter")
	}
}

func TestNewAppliesOptions(t *testing.T) {
	t.Parallel()

	svc := New(WithTimeout(5 * time.Second))
	defer func() { _ = svc.Close() }()

	if svc.cfg.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", svc.cfg.timeout)
	}
}
