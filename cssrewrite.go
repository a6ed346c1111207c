package resumake

import (
	"regexp"
	"strings"
)

// Text-level CSS transforms. These operate on stylesheet text, not a parsed
// rule tree; they are a best-effort layer whose observable cascade order is
// the contract, matching how the rendering targets consume the output.

// templateSelectorPattern matches .template-X selectors at a rule boundary.
var templateSelectorPattern = regexp.MustCompile(`(^|[\s,{}])\.template-([a-z]+)`)

// chromeHidingRulePattern matches whole rules that hide print chrome
// (toolbars, no-print wrappers). Those rules must not leak into the live
// preview when print styles are unwrapped.
var chromeHidingRulePattern = regexp.MustCompile(`(?s)[^{}]*(?:\.no-print|\.resume-toolbar|\.print-hide)[^{}]*\{[^{}]*\}`)

// backgroundDeclPattern matches background declarations inside CSS rules or
// inline style attributes.
var backgroundDeclPattern = regexp.MustCompile(`(?i)(background[a-z-]*\s*:\s*[^;"'}]+;?)`)

// colorAdjustSuffix is appended adjacent to each background declaration so
// browsers keep the color when printing.
const colorAdjustSuffix = " -webkit-print-color-adjust: exact !important; print-color-adjust: exact !important;"

// rewriteGuard is a placeholder token protecting already-rewritten selectors
// from a second specificity pass.
const rewriteGuard = "\x00resume-tpl\x00"

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// raiseTemplateSpecificity prefixes .template-X selectors with
// .resume-template so user override CSS outranks template defaults without
// !important. Already-raised selectors are left alone, keeping the
// transform idempotent.
func raiseTemplateSpecificity(css string) string {
	css = strings.ReplaceAll(css, ".resume-template.template-", rewriteGuard)
	css = templateSelectorPattern.ReplaceAllString(css, "${1}.resume-template.template-${2}")
	return strings.ReplaceAll(css, rewriteGuard, ".resume-template.template-")
}

// stripPrintMediaWrapper removes @media print wrappers, splicing the inner
// rules into the surrounding sheet so print spacing applies live.
func stripPrintMediaWrapper(css string) string {
	var out strings.Builder
	for {
		idx := strings.Index(css, "@media print")
		if idx < 0 {
			out.WriteString(css)
			break
		}
		out.WriteString(css[:idx])

		open := strings.Index(css[idx:], "{")
		if open < 0 {
			out.WriteString(css[idx:])
			break
		}

		depth := 1
		i := idx + open + 1
		for i < len(css) && depth > 0 {
			switch css[i] {
			case '{':
				depth++
			case '}':
				depth--
			}
			i++
		}

		end := i
		if depth == 0 {
			end = i - 1
		}
		out.WriteString(css[idx+open+1 : end])
		css = css[i:]
	}
	return out.String()
}

// removeChromeHidingRules drops rules that hide print chrome, so unwrapped
// print styles do not blank out preview controls.
func removeChromeHidingRules(css string) string {
	return chromeHidingRulePattern.ReplaceAllString(css, "")
}

// ForcePrintBackgroundColors appends forced color-adjust declarations
// adjacent to every background declaration found in the HTML's stylesheet
// text and inline styles. Best-effort pattern matching; used by the raw-HTML
// print path where content carries its own styling. Declarations without a
// trailing semicolon (the last declaration of an inline style, typically)
// get one first, so the suffix never fuses into the declaration's value.
func ForcePrintBackgroundColors(htmlContent string) string {
	return backgroundDeclPattern.ReplaceAllStringFunc(htmlContent, func(decl string) string {
		if !strings.HasSuffix(decl, ";") {
			decl += ";"
		}
		return decl + colorAdjustSuffix
	})
}
