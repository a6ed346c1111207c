package resumake

import (
	"strings"
	"time"

	"github.com/resumake/go-resumake/internal/assets"
)

// Template identifiers. The set is closed; anything unrecognized resolves to
// TemplateProfessional rather than erroring.
const (
	TemplateProfessional = "professional"
	TemplateModern       = "modern"
	TemplateMinimalist   = "minimalist"
	TemplateCreative     = "creative"
	TemplateExecutive    = "executive"
)

// DefaultTemplate is the fallback for unrecognized template identifiers.
const DefaultTemplate = TemplateProfessional

// Templates returns all template identifiers in cascade order.
// The order is fixed: StyleRegistry composition depends on it.
func Templates() []string {
	return assets.TemplateNames()
}

// ResolveTemplate maps a template identifier to a known template,
// falling back to DefaultTemplate (case-insensitive).
func ResolveTemplate(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case TemplateProfessional, TemplateModern, TemplateMinimalist, TemplateCreative, TemplateExecutive:
		return strings.ToLower(strings.TrimSpace(name))
	}
	return DefaultTemplate
}

// Paper size constants.
const (
	PaperA4     = "a4"
	PaperLetter = "letter"
)

// DefaultPaperSize is the fallback for unrecognized paper sizes.
const DefaultPaperSize = PaperA4

// Physical page dimensions in inches.
const (
	a4WidthInches      = 8.27
	a4HeightInches     = 11.69
	letterWidthInches  = 8.5
	letterHeightInches = 11.0
)

// ResolvePaperSize maps a paper size identifier to a known size,
// falling back to DefaultPaperSize. Accepts "us_letter" and "us-letter"
// as aliases for "letter" (case-insensitive).
func ResolvePaperSize(size string) string {
	switch strings.ToLower(strings.TrimSpace(size)) {
	case PaperLetter, "us_letter", "us-letter":
		return PaperLetter
	case PaperA4:
		return PaperA4
	}
	return DefaultPaperSize
}

// PaperDimensions returns the physical page size in inches for a paper size
// identifier. Unknown sizes resolve to A4.
func PaperDimensions(size string) (width, height float64) {
	if ResolvePaperSize(size) == PaperLetter {
		return letterWidthInches, letterHeightInches
	}
	return a4WidthInches, a4HeightInches
}

// Section is one classified unit of Markdown content: a level-2 heading block
// together with any nested sub-headings.
type Section struct {
	SectionType string // lowercase heading text, used as the classification key
	Content     string // raw Markdown including the heading line
	Level       int    // heading depth, 2 for every emitted section
}

// SplitContent is the resolved two-column decomposition of one Markdown
// document. Header, Summary, LeftColumn, and RightColumn partition the
// document's sections: every non-title, non-summary section appears in
// exactly one column.
type SplitContent struct {
	Header      string
	Summary     string
	LeftColumn  string
	RightColumn string
}

// ResumeContent is a read-only snapshot of the document's logical content,
// independent of layout mode. The uploaded-file fields reference an
// attachment owned by the caller; this package never creates or revokes the
// underlying object URL.
type ResumeContent struct {
	Markdown string // single-column Markdown
	HTML     string // raw HTML authored directly; bypasses Markdown conversion

	// Two-column mode fields, typically filled from SplitMarkdownForTwoColumn.
	Header      string
	Summary     string
	LeftColumn  string
	RightColumn string

	// Two-page mode fields.
	FirstPage  string
	SecondPage string

	TwoColumn bool
	TwoPage   bool

	UploadedFileURL  string
	UploadedFileName string
}

// DisplayOptions parameterizes display-document construction. It selects
// CSS branches only; it never mutates content.
type DisplayOptions struct {
	PaperSize        string
	UploadedFileURL  string
	UploadedFileName string
	ForPrintWindow   bool

	// Template scopes the built document to one visual template by tagging
	// the body with its class. Empty leaves the body untagged so the caller's
	// own wrapper (if any) controls template selection.
	Template string

	// TemplateCSS is inlined into the built document after the structural
	// styles, so print windows and PDF capture carry the active template
	// without access to the live stylesheet.
	TemplateCSS string
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF generation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("resumake: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}
