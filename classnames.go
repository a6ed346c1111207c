package resumake

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// structuralClasses maps every element type the converter emits to its
// stable class. This class layer is the only style hook downstream CSS
// relies on: template and print styles select via these classes, never via
// raw tag names alone.
var structuralClasses = map[string]string{
	"h1":     "resume-heading-1",
	"h2":     "resume-heading-2",
	"h3":     "resume-heading-3",
	"h4":     "resume-heading-4",
	"h5":     "resume-heading-5",
	"h6":     "resume-heading-6",
	"p":      "resume-paragraph",
	"ul":     "resume-list",
	"ol":     "resume-list",
	"li":     "resume-list-item",
	"table":  "resume-table",
	"thead":  "resume-table-head",
	"tbody":  "resume-table-body",
	"tr":     "resume-table-row",
	"th":     "resume-table-header",
	"td":     "resume-table-cell",
	"hr":     "resume-hr",
	"strong": "resume-strong",
	"em":     "resume-emphasis",
	"a":      "resume-link",
	"code":   "resume-code",
	"pre":    "resume-code-block",
	"br":     "resume-br",
}

// tagStructuralClasses appends the stable resume-* class to every element in
// the fragment. Elements keep any classes they already carry. Returns the
// input unchanged when it cannot be parsed.
func tagStructuralClasses(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		if class, ok := structuralClasses[goquery.NodeName(s)]; ok {
			s.AddClass(class)
		}
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return fragment
	}
	return out
}
