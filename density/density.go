// Package density supplies the network sharing-density lookups used by the
// feature engine: how many distinct customers share an IP address or a
// device. The maps are produced offline by the batch profiler and refreshed
// periodically; a missing key means the artifact has never seen the value,
// which the engine treats as a density of 1 (unshared).
package density

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Maps holds one snapshot of the sharing-density artifacts.
type Maps struct {
	IP     map[string]float64 `json:"ip_density"`
	Device map[string]float64 `json:"device_density"`
}

// Source loads a density snapshot from wherever the batch profiler
// publishes it. Implementations: FileSource.
type Source interface {
	Load(ctx context.Context) (*Maps, error)
}

// FileSource reads the snapshot from a JSON artifact on disk.
type FileSource struct {
	Path string
}

// Load reads and decodes the artifact.
func (s FileSource) Load(ctx context.Context) (*Maps, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read density artifact: %w", err)
	}
	var m Maps
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode density artifact %s: %w", s.Path, err)
	}
	return &m, nil
}

const (
	cacheKey   = "density-snapshot"
	defaultTTL = 15 * time.Minute
)

// Provider serves density snapshots with a TTL cache in front of the
// source, so per-decision lookups never hit disk or the network. A load
// failure while a cached snapshot is still live is invisible to callers;
// with no snapshot at all the error propagates.
type Provider struct {
	source Source
	ttl    time.Duration
	cache  *ristretto.Cache

	mu sync.Mutex // serializes cache-miss reloads
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithTTL overrides how long a snapshot is served before reloading.
func WithTTL(ttl time.Duration) ProviderOption {
	return func(p *Provider) {
		if ttl > 0 {
			p.ttl = ttl
		}
	}
}

// NewProvider builds a Provider over a source.
func NewProvider(source Source, opts ...ProviderOption) (*Provider, error) {
	// IgnoreInternalCost matters here: with it off, ristretto adds its
	// per-item bookkeeping bytes to the declared cost of 1, which exceeds
	// the tiny MaxCost and silently rejects every Set.
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        64,
		MaxCost:            8,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("density cache: %w", err)
	}
	p := &Provider{
		source: source,
		ttl:    defaultTTL,
		cache:  cache,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Snapshot returns the current density maps, reloading from the source
// when the cached copy has expired.
func (p *Provider) Snapshot(ctx context.Context) (*Maps, error) {
	if v, ok := p.cache.Get(cacheKey); ok {
		return v.(*Maps), nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Another caller may have reloaded while we waited on the lock.
	if v, ok := p.cache.Get(cacheKey); ok {
		return v.(*Maps), nil
	}

	m, err := p.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	p.cache.SetWithTTL(cacheKey, m, 1, p.ttl)
	p.cache.Wait()
	return m, nil
}

// Close releases the cache.
func (p *Provider) Close() {
	p.cache.Close()
}
