package resumake

import (
	"path"
	"regexp"
	"strings"
)

// referenceResolver abstracts asset-reference rewriting.
type referenceResolver interface {
	Resolve(htmlContent, uploadedURL, uploadedName string) string
}

// Patterns for reference resolution, precompiled.
var (
	imageExtPattern        = regexp.MustCompile(`(?i)\.(jpe?g|png|gif|webp)(\?.*)?$`)
	imgSrcPattern          = regexp.MustCompile(`(?i)(<img[^>]*?\ssrc=)(["'])([^"']+)(["'])`)
	backgroundImagePattern = regexp.MustCompile(`(?i)(background-image\s*:\s*url\()(['"]?)([^)'"]+)(['"]?)(\))`)
)

// assetResolver rewrites asset references so uploaded content and relative
// paths resolve in every rendering context. It is a best-effort text
// transform over the HTML string, not a structural rewrite.
type assetResolver struct{}

func newAssetResolver() *assetResolver { return &assetResolver{} }

// ResolveReferences rewrites asset references in an HTML string:
//
//  1. A non-image uploaded file not yet referenced in the content is
//     appended as a centered image block before </body>.
//  2. Every src attribute containing the uploaded filename is rewritten to
//     the uploaded URL (full filename first, then basename).
//  3. Relative <img> src values are rooted at /.
//  4. Relative background-image URLs are rooted at /.
//
// The order is load-bearing: the injected block from step 1 participates in
// step 2's substitution check, and steps 3-4 must not re-prefix URLs that
// steps 1-2 already made absolute.
func ResolveReferences(htmlContent, uploadedURL, uploadedName string) string {
	htmlContent = injectAttachment(htmlContent, uploadedURL, uploadedName)
	htmlContent = substituteUploadedFile(htmlContent, uploadedURL, uploadedName)
	htmlContent = rootRelativeImageSources(htmlContent)
	htmlContent = rootRelativeBackgroundImages(htmlContent)
	return htmlContent
}

func (r *assetResolver) Resolve(htmlContent, uploadedURL, uploadedName string) string {
	return ResolveReferences(htmlContent, uploadedURL, uploadedName)
}

// injectAttachment appends a centered image block for a non-image uploaded
// file that the content does not reference yet. Inserted just before
// </body> when a body exists, otherwise appended.
func injectAttachment(htmlContent, uploadedURL, uploadedName string) string {
	if uploadedURL == "" {
		return htmlContent
	}
	if imageExtPattern.MatchString(uploadedURL) || imageExtPattern.MatchString(uploadedName) {
		return htmlContent
	}
	if strings.Contains(htmlContent, uploadedURL) {
		return htmlContent
	}
	if uploadedName != "" && strings.Contains(htmlContent, uploadedName) {
		return htmlContent
	}

	block := `<div class="resume-attachment" style="text-align: center;"><img src="` +
		uploadedURL + `" alt="` + uploadedName + `" style="max-width: 100%;" /></div>`

	lowerHTML := strings.ToLower(htmlContent)
	if idx := strings.Index(lowerHTML, "</body>"); idx != -1 {
		return htmlContent[:idx] + block + htmlContent[idx:]
	}
	return htmlContent + block
}

// substituteUploadedFile rewrites src attributes whose value contains the
// uploaded filename to use the uploaded URL. The full filename is tried
// first; when it contains a path separator and matched nothing, the
// basename alone is tried.
func substituteUploadedFile(htmlContent, uploadedURL, uploadedName string) string {
	if uploadedURL == "" || uploadedName == "" {
		return htmlContent
	}

	rewritten, replaced := substituteSrcByName(htmlContent, uploadedURL, uploadedName)
	if replaced {
		return rewritten
	}

	if strings.ContainsAny(uploadedName, "/\\") {
		base := path.Base(strings.ReplaceAll(uploadedName, "\\", "/"))
		rewritten, _ = substituteSrcByName(htmlContent, uploadedURL, base)
		return rewritten
	}

	return htmlContent
}

// substituteSrcByName replaces every src="..." or src='...' whose value
// contains name (regex-escaped) with the uploaded URL.
func substituteSrcByName(htmlContent, uploadedURL, name string) (string, bool) {
	pattern := regexp.MustCompile(`(?i)(src=)(["'])([^"']*` + regexp.QuoteMeta(name) + `[^"']*)(["'])`)
	if !pattern.MatchString(htmlContent) {
		return htmlContent, false
	}
	return pattern.ReplaceAllString(htmlContent, `${1}${2}`+uploadedURL+`${4}`), true
}

// isAbsoluteRef reports whether a reference needs no rooting: http(s), data,
// blob, or already rooted at /.
func isAbsoluteRef(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http:") ||
		strings.HasPrefix(lower, "https:") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(lower, "blob:") ||
		strings.HasPrefix(ref, "/")
}

// rootRelativeImageSources rewrites every <img> src that is not absolute to
// be rooted at /.
func rootRelativeImageSources(htmlContent string) string {
	return imgSrcPattern.ReplaceAllStringFunc(htmlContent, func(m string) string {
		parts := imgSrcPattern.FindStringSubmatch(m)
		if isAbsoluteRef(parts[3]) {
			return m
		}
		return parts[1] + parts[2] + "/" + parts[3] + parts[4]
	})
}

// rootRelativeBackgroundImages rewrites every background-image url() that is
// not absolute to be rooted at /.
func rootRelativeBackgroundImages(htmlContent string) string {
	return backgroundImagePattern.ReplaceAllStringFunc(htmlContent, func(m string) string {
		parts := backgroundImagePattern.FindStringSubmatch(m)
		if isAbsoluteRef(parts[3]) {
			return m
		}
		return parts[1] + parts[2] + "/" + parts[3] + parts[4] + parts[5]
	})
}
