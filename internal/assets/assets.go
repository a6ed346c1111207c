// Package assets provides the static CSS data for resume templates: the
// per-template style blobs, the base structural styles, the print styles,
// and the preview/print consistency rules. The style text is opaque to the
// rest of the system; only its ordering matters.
package assets

// templateNames lists every template identifier in cascade order. The order
// is fixed: StyleRegistry composes all templates in this order so switching
// templates needs no reload.
var templateNames = []string{
	"professional",
	"modern",
	"minimalist",
	"creative",
	"executive",
}

// defaultTemplate is the fallback for unknown template identifiers.
const defaultTemplate = "professional"

// TemplateNames returns the template identifiers in cascade order.
// The returned slice must not be mutated.
func TemplateNames() []string {
	return templateNames
}

// TemplateStyles returns the CSS blob for a template. Unknown identifiers
// fall back to the professional template rather than erroring.
func TemplateStyles(name string) string {
	css, err := loadStyle("template-" + name)
	if err != nil {
		css, _ = loadStyle("template-" + defaultTemplate)
	}
	return css
}

// BaseCSS returns the base structural styles shared by every template.
func BaseCSS() string {
	css, _ := loadStyle("base")
	return css
}

// PrintCSS returns the print styles, wrapped in @media print.
func PrintCSS() string {
	css, _ := loadStyle("print")
	return css
}

// ConsistencyCSS returns the rules forcing identical margin and font-size
// behavior between preview and print.
func ConsistencyCSS() string {
	css, _ := loadStyle("consistency")
	return css
}
