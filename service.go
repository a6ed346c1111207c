package resumake

import (
	"context"
	"fmt"
)

// Service orchestrates the content-to-layout pipeline: assembly, reference
// resolution, display-document construction, and PDF capture. Within one
// build cycle the stages always complete in that order, never interleaved;
// the Service holds no mutable content state, so unrelated renders may run
// concurrently.
type Service struct {
	cfg       serviceConfig
	assembler contentAssembler
	resolver  referenceResolver
	display   displayBuilder
	pdf       pdfConverter
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout).
func New(opts ...Option) *Service {
	s := &Service{
		cfg:       serviceConfig{timeout: defaultTimeout},
		assembler: newResumeAssembler(),
		resolver:  newAssetResolver(),
		display:   newDocumentBuilder(),
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create PDF converter if not injected (e.g., by tests)
	if s.pdf == nil {
		s.pdf = newRodConverter(s.cfg.timeout)
	}

	return s
}

// RenderDocument runs assembly, reference resolution, and display wrapping,
// returning a complete standalone HTML document. Malformed content degrades
// to best-effort output; only context cancellation produces an error.
func (s *Service) RenderDocument(ctx context.Context, content ResumeContent, opts DisplayOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fragment := s.assembler.Assemble(ctx, content)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	uploadedURL, uploadedName := opts.UploadedFileURL, opts.UploadedFileName
	if uploadedURL == "" {
		uploadedURL, uploadedName = content.UploadedFileURL, content.UploadedFileName
	}
	resolved := s.resolver.Resolve(fragment, uploadedURL, uploadedName)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return s.display.Build(resolved, opts), nil
}

// ExportPDF renders the display document and captures it as a PDF through
// the browser's print path. Raw-HTML content additionally gets the forced
// background-color pass, since such content carries its own stylesheets.
func (s *Service) ExportPDF(ctx context.Context, content ResumeContent, opts DisplayOptions) ([]byte, error) {
	doc, err := s.RenderDocument(ctx, content, opts)
	if err != nil {
		return nil, err
	}

	if content.HTML != "" {
		doc = ForcePrintBackgroundColors(doc)
	}

	pdfBytes, err := s.pdf.ToPDF(ctx, doc, &pdfOptions{PaperSize: opts.PaperSize})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	return pdfBytes, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.pdf != nil {
		return s.pdf.Close()
	}
	return nil
}
