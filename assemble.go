package resumake

import (
	"context"
	"strings"
)

// parseErrorPlaceholder replaces content whose Markdown conversion failed.
// The preview must always render something; conversion errors never
// propagate out of assembly.
const parseErrorPlaceholder = `<p class="resume-paragraph">Error parsing markdown content</p>`

// contentAssembler abstracts content-to-fragment assembly.
type contentAssembler interface {
	Assemble(ctx context.Context, content ResumeContent) string
}

// resumeAssembler converts a ResumeContent snapshot into one sanitized,
// class-tagged HTML fragment. Pure with respect to its input: identical
// content always produces the identical fragment string.
type resumeAssembler struct {
	converter htmlConverter
}

func newResumeAssembler() *resumeAssembler {
	return &resumeAssembler{converter: newGoldmarkConverter()}
}

// defaultAssembler backs the package-level GenerateCompleteResumeHTML.
var defaultAssembler = newResumeAssembler()

// GenerateCompleteResumeHTML converts a content snapshot into one HTML
// fragment string, dispatching on the layout flags. The result is a
// fragment, not a full document; ProcessHTMLForDisplay wraps it.
func GenerateCompleteResumeHTML(data ResumeContent) string {
	return defaultAssembler.Assemble(context.Background(), data)
}

// Assemble dispatches on (TwoPage, TwoColumn):
//   - both: two stacked page containers, page 1 a two-column layout from
//     Header/Summary/LeftColumn/RightColumn, page 2 a column pair from
//     FirstPage/SecondPage
//   - TwoPage only: two stacked page containers, no column split
//   - TwoColumn only: one container with header, summary, and column grid
//   - neither: the converted single Markdown (or raw HTML) unwrapped
func (a *resumeAssembler) Assemble(ctx context.Context, c ResumeContent) string {
	switch {
	case c.TwoPage && c.TwoColumn:
		page1 := a.twoColumnBlock(ctx, c.Header, c.Summary, c.LeftColumn, c.RightColumn)
		page2 := a.columnsBlock(ctx, c.FirstPage, c.SecondPage)
		return pageBlock("first", page1) + pageBlock("second", page2)

	case c.TwoPage:
		page1 := a.toFragment(ctx, c.FirstPage)
		page2 := a.toFragment(ctx, c.SecondPage)
		return pageBlock("first", page1) + pageBlock("second", page2)

	case c.TwoColumn:
		return a.twoColumnBlock(ctx, c.Header, c.Summary, c.LeftColumn, c.RightColumn)

	default:
		if c.HTML != "" {
			return sanitizeHTML(tagStructuralClasses(c.HTML))
		}
		return a.toFragment(ctx, c.Markdown)
	}
}

// toFragment converts Markdown, tags the structural class layer, and
// sanitizes. Conversion failure degrades to the visible placeholder.
func (a *resumeAssembler) toFragment(ctx context.Context, markdown string) string {
	fragment, err := a.converter.ToHTML(ctx, normalizeMarkdown(markdown))
	if err != nil {
		return parseErrorPlaceholder
	}
	return sanitizeHTML(tagStructuralClasses(fragment))
}

// toInline converts a single line of Markdown and unwraps the enclosing
// paragraph, for contact items and titles that live inside spans.
func (a *resumeAssembler) toInline(ctx context.Context, markdown string) string {
	fragment := strings.TrimSpace(a.toFragment(ctx, markdown))
	const open = `<p class="resume-paragraph">`
	const close = `</p>`
	if strings.HasPrefix(fragment, open) && strings.HasSuffix(fragment, close) {
		inner := fragment[len(open) : len(fragment)-len(close)]
		if !strings.Contains(inner, "<p") {
			return inner
		}
	}
	return fragment
}

func pageBlock(which, inner string) string {
	return `<div class="resume-page resume-page-` + which + `">` + inner + `</div>`
}

// twoColumnBlock builds one container holding an optional header block,
// optional summary block, and the two-column grid.
func (a *resumeAssembler) twoColumnBlock(ctx context.Context, header, summary, left, right string) string {
	var b strings.Builder
	b.WriteString(`<div class="resume-container resume-two-column">`)

	if strings.TrimSpace(header) != "" {
		b.WriteString(a.headerBlock(ctx, header))
	}
	if strings.TrimSpace(summary) != "" {
		b.WriteString(`<div class="resume-summary">`)
		b.WriteString(a.toFragment(ctx, summary))
		b.WriteString(`</div>`)
	}
	b.WriteString(a.columnsBlock(ctx, left, right))

	b.WriteString(`</div>`)
	return b.String()
}

// columnsBlock builds the left/right grid from two Markdown blocks.
func (a *resumeAssembler) columnsBlock(ctx context.Context, left, right string) string {
	var b strings.Builder
	b.WriteString(`<div class="resume-columns">`)
	b.WriteString(`<div class="resume-column resume-column-left">`)
	b.WriteString(a.toFragment(ctx, left))
	b.WriteString(`</div>`)
	b.WriteString(`<div class="resume-column resume-column-right">`)
	b.WriteString(a.toFragment(ctx, right))
	b.WriteString(`</div>`)
	b.WriteString(`</div>`)
	return b.String()
}

// headerBlock renders the header Markdown: the first line is the title,
// converted alone; the remaining lines are joined, split on "|", and
// rendered as contact items with separator spans between them.
func (a *resumeAssembler) headerBlock(ctx context.Context, header string) string {
	lines := strings.Split(strings.TrimSpace(header), "\n")

	var b strings.Builder
	b.WriteString(`<div class="resume-header">`)
	b.WriteString(`<div class="resume-title">`)
	b.WriteString(a.toFragment(ctx, lines[0]))
	b.WriteString(`</div>`)

	if len(lines) > 1 {
		joined := strings.Join(lines[1:], " ")
		items := make([]string, 0, 4)
		for _, part := range strings.Split(joined, "|") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		if len(items) > 0 {
			b.WriteString(`<div class="resume-contact">`)
			for i, item := range items {
				if i > 0 {
					b.WriteString(`<span class="resume-contact-separator">|</span>`)
				}
				b.WriteString(`<span class="resume-contact-item">`)
				b.WriteString(a.toInline(ctx, item))
				b.WriteString(`</span>`)
			}
			b.WriteString(`</div>`)
		}
	}

	b.WriteString(`</div>`)
	return b.String()
}
