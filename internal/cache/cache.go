// Package cache provides the explicit key-value read cache sitting in front
// of the lead store. Every successful mutation invalidates the affected keys,
// so a client's next read reflects its own write. Entries also carry a TTL;
// no cross-client coherence is attempted.
package cache

import "context"

// Store is an explicit key-value cache with explicit invalidation.
type Store interface {
	// Get unmarshals the cached value for key into dest and reports whether
	// the key was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores value under key.
	Set(ctx context.Context, key string, value any) error
	// Invalidate drops the given keys. Missing keys are not an error.
	Invalidate(ctx context.Context, keys ...string) error
}

// Cache keys for lead reads.
const (
	KeyAllLeads = "leads:all"
)

// LeadKey is the cache key for a single lead.
func LeadKey(id string) string {
	return "leads:" + id
}

// NotesKey is the cache key for a lead's note list.
func NotesKey(leadID string) string {
	return "lead_notes:" + leadID
}
