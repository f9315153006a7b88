// Package cache provides a byte-oriented cache for conversion artifacts.
//
// Converting the same image with the same options always yields the same
// text, so rendered grids are cached keyed by the source image's content
// hash plus the conversion options. The CLI uses a file-backed cache in the
// XDG cache directory; --no-cache swaps in the null implementation.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered ASCII artifacts stay cached. Conversion
// is deterministic, so the TTL only bounds disk usage, not staleness.
const TTLArtifact = 7 * 24 * time.Hour

// Cache stores and retrieves byte values by key.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKeyOpts are the conversion options that distinguish one cached
// artifact from another for the same source image.
type ArtifactKeyOpts struct {
	Width int    `json:"width"`
	Ramp  string `json:"ramp"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ArtifactKey generates a key for a rendered artifact from the source
	// image's content hash and the conversion options.
	ArtifactKey(imageHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey generates an artifact cache key.
func (k *DefaultKeyer) ArtifactKey(imageHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", imageHash, opts)
}
