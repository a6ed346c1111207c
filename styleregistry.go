package resumake

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/resumake/go-resumake/internal/assets"
)

// StyleSink receives the composed stylesheet text. The browser analog is a
// single reserved <style> element; here it is any target the preview layer
// exposes (an HTTP endpoint, a file, a test buffer). At most one sink is
// attached at a time and the registry is its only writer.
type StyleSink interface {
	Apply(css string)
}

// MemorySink is the default StyleSink: an in-memory stylesheet that servers
// and tests read back.
type MemorySink struct {
	mu  sync.RWMutex
	css string
}

func (s *MemorySink) Apply(css string) {
	s.mu.Lock()
	s.css = css
	s.mu.Unlock()
}

// CSS returns the last applied stylesheet text.
func (s *MemorySink) CSS() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.css
}

// RegistryOption configures a StyleRegistry.
type RegistryOption func(*StyleRegistry)

// WithRegistryLogger sets the logger used for lifecycle warnings.
func WithRegistryLogger(log *zap.Logger) RegistryOption {
	return func(r *StyleRegistry) {
		r.log = log
	}
}

// StyleRegistry owns the template stylesheet: one sink, an in-memory map of
// per-template user CSS overrides, and a rebuild procedure with fixed
// cascade order. All mutation is last-write-wins; a rebuild always replaces
// the full stylesheet text rather than patching it.
type StyleRegistry struct {
	mu        sync.Mutex
	sink      StyleSink
	overrides map[string]string
	log       *zap.Logger
}

// NewStyleRegistry creates an unattached registry. Call Init before any
// rebuild-triggering operation takes effect.
func NewStyleRegistry(opts ...RegistryOption) *StyleRegistry {
	r := &StyleRegistry{
		overrides: make(map[string]string),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init attaches the sink and performs the first rebuild. Idempotent: a
// previously attached sink is blanked and replaced first, so repeated mounts
// never accumulate stale stylesheets.
func (r *StyleRegistry) Init(sink StyleSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sink != nil && r.sink != sink {
		r.sink.Apply("")
	}
	r.sink = sink
	r.rebuildLocked()
}

// Dispose blanks and detaches the sink. Further rebuild-triggering calls
// are no-ops until the next Init.
func (r *StyleRegistry) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sink != nil {
		r.sink.Apply("")
		r.sink = nil
	}
}

// AddTemplateCSS stores the user override for a template and rebuilds.
// Unrecognized template identifiers resolve to the default template.
func (r *StyleRegistry) AddTemplateCSS(template, css string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.overrides[ResolveTemplate(template)] = css
	r.rebuildLocked()
}

// RemoveTemplateCSS deletes the override for a template and rebuilds.
func (r *StyleRegistry) RemoveTemplateCSS(template string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.overrides, ResolveTemplate(template))
	r.rebuildLocked()
}

// GetTemplateCSS returns the stored override for a template, or "".
func (r *StyleRegistry) GetTemplateCSS(template string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.overrides[ResolveTemplate(template)]
}

// ClearCSS empties the override map and blanks the stylesheet without a
// full rebuild.
func (r *StyleRegistry) ClearCSS() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.overrides = make(map[string]string)
	if r.sink != nil {
		r.sink.Apply("")
	}
}

// Rebuild recomposes and reapplies the full stylesheet.
func (r *StyleRegistry) Rebuild() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rebuildLocked()
}

// ComposedCSS returns the stylesheet text the registry would apply, without
// touching the sink. Print windows and PDF capture inline this so separate
// documents carry the active template styles.
func (r *StyleRegistry) ComposedCSS() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.composeLocked()
}

// rebuildLocked applies the composed stylesheet to the sink. A rebuild
// before Init is a precondition violation for this call: logged, then a
// no-op; the next Init self-heals.
func (r *StyleRegistry) rebuildLocked() {
	if r.sink == nil {
		r.log.Warn("style registry rebuild before init",
			zap.Error(ErrRegistryNotInitialized))
		return
	}
	r.sink.Apply(r.composeLocked())
}

// composeLocked builds the stylesheet in fixed cascade order: base
// structural styles, every template's defaults (all templates, so switching
// needs no reload), print styles unwrapped for live use with chrome-hiding
// rules removed, consistency-enforcement rules, then user overrides with
// raised specificity, last so they win.
func (r *StyleRegistry) composeLocked() string {
	var b strings.Builder

	b.WriteString(assets.BaseCSS())
	for _, t := range assets.TemplateNames() {
		b.WriteString("\n")
		b.WriteString(assets.TemplateStyles(t))
	}
	b.WriteString("\n")
	b.WriteString(removeChromeHidingRules(stripPrintMediaWrapper(assets.PrintCSS())))
	b.WriteString("\n")
	b.WriteString(assets.ConsistencyCSS())
	for _, t := range assets.TemplateNames() {
		if css := r.overrides[t]; css != "" {
			b.WriteString("\n")
			b.WriteString(raiseTemplateSpecificity(css))
		}
	}

	return b.String()
}
