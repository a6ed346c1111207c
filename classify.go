package resumake

import (
	"regexp"
	"strings"
)

// Heading and header-content patterns, precompiled.
var (
	// ATX heading: captures marker run and heading text.
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

	// Summary-like heading at level 1-2, optionally wrapped in emphasis
	// markers immediately after the # run.
	summaryHeadingPattern = regexp.MustCompile(`(?i)^#{1,2}\s+[*_]*\s*(summary|professional summary|about|profile|objective|overview|bio|introduction)\s*[*_]*\s*$`)

	// Contact-line patterns used by the implicit-summary fallback.
	phoneParenPattern = regexp.MustCompile(`\(\d{3}\)`)
	phoneDashPattern  = regexp.MustCompile(`\d{3}-\d{3}-\d{4}`)
	phonePlusPattern  = regexp.MustCompile(`\+\d+`)
	urlPattern        = regexp.MustCompile(`https?://`)
)

// Column keyword lists. Classification is list-ordered first-match: the left
// list is consulted before the right list, so ties cannot occur. These lists
// are product behavior; matching is substring containment in either
// direction against the section's lowercase heading text.
var (
	leftColumnKeywords = []string{
		"contact", "skills", "technical skills", "technologies", "tools",
		"languages", "education", "certifications", "certificates", "awards",
		"achievements", "interests", "hobbies", "references", "personal",
		"additional information", "core competencies", "expertise",
		"qualifications",
	}

	rightColumnKeywords = []string{
		"experience", "work experience", "professional experience",
		"employment", "career", "projects", "portfolio", "publications",
		"research", "presentations", "speaking", "volunteering",
		"volunteer experience", "leadership", "activities",
		"accomplishments", "professional summary", "career highlights",
	}
)

// imbalanceRatio is the threshold for the single corrective balance move:
// a column must exceed the other's joined text length by more than this
// factor before one section moves.
const imbalanceRatio = 2

// SplitMarkdownForTwoColumn splits a Markdown resume into header, summary,
// and left/right column content. Pure function: it never errors, and the
// same input always yields the same split. Empty input yields all-empty
// fields.
func SplitMarkdownForTwoColumn(markdown string) SplitContent {
	markdown = normalizeMarkdown(markdown)
	if strings.TrimSpace(markdown) == "" {
		return SplitContent{}
	}

	header := extractHeader(markdown)
	summary := extractSummary(markdown)
	sections := parseMarkdownSections(markdown)
	left, right := classifyColumns(sections)
	left, right = balanceColumns(left, right)

	return SplitContent{
		Header:      header,
		Summary:     summary,
		LeftColumn:  strings.TrimSpace(joinSections(left)),
		RightColumn: strings.TrimSpace(joinSections(right)),
	}
}

// extractHeader returns the contiguous block starting at the title line
// ("# ..."), stopping before the first H2 heading or at the first blank line
// after the title. Returns "" when no title line exists.
func extractHeader(markdown string) string {
	lines := strings.Split(markdown, "\n")
	var header []string
	started := false

	for _, line := range lines {
		if !started {
			if strings.HasPrefix(line, "# ") {
				started = true
				header = append(header, line)
			}
			continue
		}
		if strings.HasPrefix(line, "##") {
			break
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		header = append(header, line)
	}

	// Trim trailing blank lines.
	for len(header) > 0 && strings.TrimSpace(header[len(header)-1]) == "" {
		header = header[:len(header)-1]
	}

	return strings.Join(header, "\n")
}

// extractSummary returns the document's summary block. An explicitly headed
// summary-like section wins; otherwise the free text between the header
// lines and the first H2 heading is the implicit summary. Returns "" when
// neither rule yields content.
func extractSummary(markdown string) string {
	lines := strings.Split(markdown, "\n")

	// Primary rule: explicit summary-like heading, collected up to the next
	// H2 boundary.
	for i, line := range lines {
		if !summaryHeadingPattern.MatchString(strings.TrimSpace(line)) {
			continue
		}
		collected := []string{line}
		for _, next := range lines[i+1:] {
			if strings.HasPrefix(next, "##") {
				break
			}
			collected = append(collected, next)
		}
		return strings.TrimSpace(strings.Join(collected, "\n"))
	}

	// Fallback rule: after the title, skip contact-style header lines; the
	// first line that fails the header-content test opens the implicit
	// summary, which runs to the first H2 heading.
	start := 0
	for i, line := range lines {
		if strings.HasPrefix(line, "# ") {
			start = i + 1
			break
		}
	}

	var collected []string
	inSummary := false
	for _, line := range lines[start:] {
		if strings.HasPrefix(line, "##") {
			break
		}
		if !inSummary {
			if isHeaderContent(line) {
				continue
			}
			inSummary = true
		}
		collected = append(collected, line)
	}

	return strings.TrimSpace(strings.Join(collected, "\n"))
}

// isHeaderContent reports whether a line looks like resume contact/header
// material rather than summary prose. The pipe-plus-symbol check overlaps
// with the explicit email/phone checks; both are kept as written because
// their interaction fixes the header/summary boundary on edge-case input.
func isHeaderContent(line string) bool {
	lower := strings.ToLower(line)

	if strings.Contains(line, "@") {
		return true
	}
	if strings.Contains(lower, "phone") || strings.Contains(lower, "linkedin") {
		return true
	}
	if strings.HasPrefix(strings.TrimSpace(line), "**") {
		return true
	}
	if phoneParenPattern.MatchString(line) || phoneDashPattern.MatchString(line) || phonePlusPattern.MatchString(line) {
		return true
	}
	if urlPattern.MatchString(line) {
		return true
	}
	if strings.Contains(line, "|") &&
		(strings.Contains(line, "@") || strings.Contains(line, "(") || strings.Contains(line, "+")) {
		return true
	}
	return false
}

// parseMarkdownSections scans the document once and emits one Section per H2
// heading. Level-1 headings are consumed and skipped. Headings deeper than
// level 2 nest inside the open section instead of starting a new one. A
// summary-like H2 section is dropped entirely: extractSummary already
// captured it, and its content is discarded rather than reassigned.
func parseMarkdownSections(markdown string) []Section {
	lines := strings.Split(markdown, "\n")

	var sections []Section
	var current *Section
	inSummarySection := false

	closeCurrent := func() {
		if current != nil {
			current.Content = strings.TrimRight(current.Content, "\n ")
			sections = append(sections, *current)
			current = nil
		}
	}

	for _, line := range lines {
		m := headingPattern.FindStringSubmatch(line)
		if m != nil && len(m[1]) == 1 {
			// Document title: never a section.
			continue
		}
		if m != nil && len(m[1]) == 2 {
			closeCurrent()
			if summaryHeadingPattern.MatchString(strings.TrimSpace(line)) {
				inSummarySection = true
				continue
			}
			inSummarySection = false
			current = &Section{
				SectionType: strings.ToLower(strings.TrimSpace(m[2])),
				Content:     line,
				Level:       2,
			}
			continue
		}

		// Sub-headings and body lines belong to the open section; anything
		// before the first H2, or under a dropped summary heading, belongs
		// to no section.
		if inSummarySection || current == nil {
			continue
		}
		current.Content += "\n" + line
	}
	closeCurrent()

	return sections
}

// classifyColumns assigns each section to the left or right column by keyword
// match, then falls back to a greedy balance heuristic for unclassified
// sections: short sections (at most 3 lines) go left while the left column
// trails, everything else goes right.
func classifyColumns(sections []Section) (left, right []Section) {
	for _, s := range sections {
		switch {
		case matchesKeyword(s.SectionType, leftColumnKeywords):
			left = append(left, s)
		case matchesKeyword(s.SectionType, rightColumnKeywords):
			right = append(right, s)
		case lineCount(s.Content) <= 3 && len(left) < len(right):
			left = append(left, s)
		default:
			right = append(right, s)
		}
	}
	return left, right
}

// matchesKeyword tests substring containment in either direction against an
// ordered keyword list.
func matchesKeyword(sectionType string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(sectionType, kw) || strings.Contains(kw, sectionType) {
			return true
		}
	}
	return false
}

// balanceColumns performs at most one corrective move: when one column's
// joined text length exceeds twice the other's and the longer column holds
// more than one section, its last section moves to the other column.
// Overflow from the left moves to the front of the right column; overflow
// from the right appends to the left. The ratio is not re-checked after the
// move. A heuristic, not a global optimum.
func balanceColumns(left, right []Section) ([]Section, []Section) {
	leftLen := len(joinSections(left))
	rightLen := len(joinSections(right))

	switch {
	case leftLen > imbalanceRatio*rightLen && len(left) > 1:
		moved := left[len(left)-1]
		left = left[:len(left)-1]
		right = append([]Section{moved}, right...)
	case rightLen > imbalanceRatio*leftLen && len(right) > 1:
		moved := right[len(right)-1]
		right = right[:len(right)-1]
		left = append(left, moved)
	}

	return left, right
}

// joinSections concatenates section Markdown with blank-line separators.
func joinSections(sections []Section) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, s.Content)
	}
	return strings.Join(parts, "\n\n")
}

// lineCount counts lines of content, ignoring leading/trailing blanks.
func lineCount(content string) int {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return 0
	}
	return strings.Count(trimmed, "\n") + 1
}
