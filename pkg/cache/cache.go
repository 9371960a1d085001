// Package cache stores rendered artifacts keyed by content hash.
//
// The pipeline hashes the loaded dataset together with every option that
// affects the output, so an unchanged input renders once and is served from
// the cache afterwards. Three backends implement [Cache]:
//
//   - [NullCache]: never stores anything (--no-cache)
//   - [FileCache]: one JSON file per entry under the XDG cache directory
//   - [RedisCache]: a shared Redis instance, for teams rendering the same
//     dashboards from CI
//
// # Keys
//
// A [Keyer] builds keys from hashes and options. [NewScopedKeyer] prefixes
// every key, which separates projects that share one Redis database.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
	Close() error
}

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Kind       string `json:"kind"`
	Format     string `json:"format"`
	ConfigHash string `json:"config"`
}

// Keyer builds cache keys.
type Keyer interface {
	// DatasetKey identifies a loaded dataset by its source path and content hash.
	DatasetKey(path, contentHash string) string
	// ArtifactKey identifies one rendered output of a dataset.
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DatasetKey returns "dataset:<hash>" over the path and content hash.
func (DefaultKeyer) DatasetKey(path, contentHash string) string {
	return hashKey("dataset", path, contentHash)
}

// ArtifactKey returns "artifact:<format>:<hash>" over the dataset hash and options.
func (DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, datasetHash, opts)
}

var _ Keyer = DefaultKeyer{}
