package catalog

import "sync"

// Provider hands out the current catalog and lets the watcher swap in a
// reloaded one. Readers always see a complete catalog, never a partial one.
type Provider struct {
	mu  sync.RWMutex
	cat *Catalog
}

// NewProvider creates a provider serving the given catalog.
func NewProvider(cat *Catalog) *Provider {
	return &Provider{cat: cat}
}

// Current returns the catalog in effect.
func (p *Provider) Current() *Catalog {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cat
}

// Swap replaces the catalog in effect.
func (p *Provider) Swap(cat *Catalog) {
	p.mu.Lock()
	p.cat = cat
	p.mu.Unlock()
}
