package render

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// glamour.TermRenderer is not safe for concurrent Render calls, so renderers
// are pooled per configuration instead of shared.
type rendererPool struct {
	mu    sync.RWMutex
	pools map[string]*sync.Pool
}

var pool = &rendererPool{pools: make(map[string]*sync.Pool)}

func (p *rendererPool) poolFor(opts Options) *sync.Pool {
	key := opts.key()

	p.mu.RLock()
	sp, ok := p.pools[key]
	p.mu.RUnlock()
	if ok {
		return sp
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if sp, ok := p.pools[key]; ok {
		return sp
	}
	sp = &sync.Pool{
		New: func() any {
			r, err := newRenderer(opts)
			if err != nil {
				return nil
			}
			return r
		},
	}
	p.pools[key] = sp
	return sp
}

func (p *rendererPool) get(opts Options) (*glamour.TermRenderer, error) {
	if r, ok := p.poolFor(opts).Get().(*glamour.TermRenderer); ok && r != nil {
		return r, nil
	}
	// New failed; build directly so the caller sees the error
	return newRenderer(opts)
}

func (p *rendererPool) put(opts Options, r *glamour.TermRenderer) {
	if r == nil {
		return
	}
	p.poolFor(opts).Put(r)
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	ropts := []glamour.TermRendererOption{
		glamour.WithStylePath(opts.Style),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		ropts = append(ropts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		ropts = append(ropts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(ropts...)
}

// Markdown renders content for the terminal using a pooled renderer
func Markdown(content string, opts Options) (string, error) {
	r, err := pool.get(opts)
	if err != nil {
		return "", err
	}
	defer pool.put(opts, r)
	return r.Render(content)
}

// Reply renders a bot reply and trims the blank margin glamour adds around
// the document. If rendering fails the plain text is returned with the error.
func Reply(text string, opts Options) (string, error) {
	out, err := Markdown(text, opts)
	if err != nil {
		return text, err
	}
	return strings.Trim(out, "\n"), nil
}

// resetPool drops every pooled renderer
func resetPool() {
	pool.mu.Lock()
	pool.pools = make(map[string]*sync.Pool)
	pool.mu.Unlock()
}

// poolSize returns the number of distinct renderer configurations seen
func poolSize() int {
	pool.mu.RLock()
	defer pool.mu.RUnlock()
	return len(pool.pools)
}
