package resumake

import (
	"fmt"
	"strings"
)

// displayBuilder abstracts display-document construction.
type displayBuilder interface {
	Build(htmlContent string, opts DisplayOptions) string
}

// displayStyleMarker identifies the injected display style block so repeated
// builds never accumulate duplicate styles.
const displayStyleMarker = `data-resume-display="styles"`

// fontLinks loads the font families the templates reference. Remote font
// loading is best-effort and never awaited.
const fontLinks = `<link rel="preconnect" href="https://fonts.googleapis.com" />
<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin />
<link href="https://fonts.googleapis.com/css2?family=Inter:wght@400;600;700&family=Merriweather:wght@400;700&family=Source+Sans+3:wght@400;600&display=swap" rel="stylesheet" />`

// documentBuilder wraps resolved fragments into complete standalone
// documents for the preview iframe, print window, and PDF capture targets.
type documentBuilder struct{}

func newDocumentBuilder() *documentBuilder { return &documentBuilder{} }

func (b *documentBuilder) Build(htmlContent string, opts DisplayOptions) string {
	return ProcessHTMLForDisplay(htmlContent, opts)
}

// ProcessHTMLForDisplay wraps a content fragment into a complete standalone
// document. Idempotent: input that is already a full document (leading
// doctype, case-insensitive) passes through with at most one style-block
// injection, so re-running on its own output is a no-op. The same content
// may flow through multiple render paths without double-wrapping.
func ProcessHTMLForDisplay(htmlContent string, opts DisplayOptions) string {
	styles := buildDisplayStyles(opts)

	if isCompleteDocument(htmlContent) {
		if strings.Contains(htmlContent, displayStyleMarker) {
			return htmlContent
		}
		return injectIntoDocument(htmlContent, styles)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString(`<meta charset="utf-8" />` + "\n")
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1" />` + "\n")
	b.WriteString(fontLinks)
	b.WriteString("\n")
	b.WriteString(styles)
	if opts.Template != "" {
		fmt.Fprintf(&b, "\n</head>\n<body class=\"template-%s\">\n", ResolveTemplate(opts.Template))
	} else {
		b.WriteString("\n</head>\n<body>\n")
	}
	b.WriteString(htmlContent)
	b.WriteString("\n</body>\n</html>")
	return b.String()
}

// isCompleteDocument detects a full HTML document by its leading doctype
// declaration, case-insensitive.
func isCompleteDocument(htmlContent string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(htmlContent)), "<!doctype")
}

// injectIntoDocument inserts the style block into an existing document.
// Tries </head> first, then after <body>, then prepends.
func injectIntoDocument(htmlContent, styles string) string {
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styles + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styles + htmlContent[insertPos:]
		}
	}

	return styles + htmlContent
}

// buildDisplayStyles emits the display style block. Section order is fixed
// and load-bearing for cascade precedence: box reset, print-color-adjust
// forcing, link rules, guarded layout fallbacks, responsive scaling, then
// the @media print block parameterized by paper size.
func buildDisplayStyles(opts DisplayOptions) string {
	width, height := PaperDimensions(opts.PaperSize)

	var b strings.Builder
	b.WriteString(`<style ` + displayStyleMarker + `>`)

	// Box-model reset.
	b.WriteString(`
* { margin: 0; padding: 0; box-sizing: border-box; }
`)

	// Browsers suppress background colors in print unless forced per rule.
	b.WriteString(`
* { -webkit-print-color-adjust: exact !important; print-color-adjust: exact !important; }
`)

	// Links stay clickable in every target.
	b.WriteString(`
a.resume-link { cursor: pointer; pointer-events: auto; color: inherit; }
`)

	// Layout fallbacks apply only to elements without explicit inline layout
	// choices; a user's own display/grid/flex/width always wins.
	b.WriteString(`
.resume-columns:not([style*="display"]):not([style*="grid"]):not([style*="flex"]):not([style*="width"]) {
  display: grid;
  grid-template-columns: 1fr 2fr;
  gap: 0.4in;
}
.resume-page:not([style*="display"]):not([style*="width"]) {
  width: 100%;
}
`)

	// On-screen shrinking at two breakpoints.
	b.WriteString(`
@media screen and (max-width: 900px) {
  body { transform: scale(0.8); transform-origin: top left; width: 125%; }
}
@media screen and (max-width: 600px) {
  body { transform: scale(0.6); transform-origin: top left; width: 166%; }
}
`)

	// Print block, parameterized by physical paper size.
	fmt.Fprintf(&b, `
@media print {
  @page { size: %.2fin %.2fin; margin: 0; }
  html, body { width: %.2fin; transform: none; }
  .resume-page { page-break-after: always; }
  .resume-page:last-child { page-break-after: auto; }
}
`, width, height, width)

	if opts.ForPrintWindow {
		b.WriteString(`
@media print {
  * { animation-duration: 0s !important; transition-duration: 0s !important; }
  .no-print, .resume-toolbar { display: none !important; }
  body { background-color: #ffffff; -webkit-print-color-adjust: exact; print-color-adjust: exact; }
}
`)
	}

	if opts.TemplateCSS != "" {
		b.WriteString("\n")
		b.WriteString(sanitizeCSS(opts.TemplateCSS))
		b.WriteString("\n")
	}

	b.WriteString(`</style>`)
	return b.String()
}
