// Package cache provides pluggable byte caches and the key scheme used
// by the layout pipeline.
//
// Three backends are provided:
//   - FileCache: directory-backed, for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: disables caching
//
// Keys are generated by a Keyer so every consumer derives identical keys
// for identical inputs. Layout keys are derived from the gallery content
// hash plus all partitioning options; artifact keys from the layout hash
// plus render options.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry class. Layouts are pure functions of their
// inputs so they could live forever; the TTLs bound disk and Redis
// growth rather than staleness.
const (
	LayoutTTL   = 30 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented cache with TTL support.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a
// miss. Errors are reserved for backend failures, never for misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts captures every option that changes a computed layout.
// Any field change must produce a different key.
type LayoutKeyOpts struct {
	Width     int     `json:"width"`
	Border    int     `json:"border"`
	BandMin   float64 `json:"band_min"`
	BandMax   float64 `json:"band_max"`
	MaxCombos int     `json:"max_combos"`
	MaxRows   int     `json:"max_rows"`
	Randomize bool    `json:"randomize"`
	Seed      uint64  `json:"seed"`
}

// ArtifactKeyOpts captures every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Title   string `json:"title,omitempty"`
	Images  bool   `json:"images,omitempty"`
	Shading bool   `json:"shading,omitempty"`
}

// Keyer generates cache keys for the pipeline's stages.
type Keyer interface {
	// LayoutKey generates a key for a computed layout.
	LayoutKey(galleryHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generation strategy.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a computed layout.
// Format: layout:hash(galleryHash, opts)
func (k *DefaultKeyer) LayoutKey(galleryHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", galleryHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
// Format: artifact:hash(layoutHash, opts)
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
