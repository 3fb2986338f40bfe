package profile

import "context"

// Store is the persistence boundary for profile documents. The engines only
// ever read profiles; writes come from the profile service. Merge semantics:
// new keys overwrite, existing keys are retained.
type Store interface {
	Get(ctx context.Context, userID string) (Profile, error)
	Upsert(ctx context.Context, userID string, updates Profile) (Profile, error)
}
