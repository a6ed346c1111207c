package resumake

import "github.com/microcosm-cc/bluemonday"

// resumePolicy is the sanitizer applied to every assembled fragment. It
// extends the UGC policy with the structural class hooks and inline style
// attributes: users rely on inline styles for spacing and sizing overrides,
// so those pass through while script vectors are stripped.
var resumePolicy = newResumePolicy()

func newResumePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("style").Globally()
	p.AllowDataURIImages()
	// blob: keeps uploaded-file object URLs intact across sanitize passes.
	p.AllowURLSchemes("mailto", "http", "https", "data", "blob")
	return p
}

// sanitizeHTML returns a script-safe version of the fragment.
func sanitizeHTML(fragment string) string {
	return resumePolicy.Sanitize(fragment)
}
