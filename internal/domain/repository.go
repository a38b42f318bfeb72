package domain

import "context"

// MenuRepository defines the persistent menu cache keyed by (source URL, date).
// At most one record exists per pair; Upsert replaces wholesale.
type MenuRepository interface {
	// Get returns the cached record for the exact (url, date) pair, or
	// ErrCacheMiss when none exists.
	Get(ctx context.Context, url, date string) (*MenuRecord, error)
	// Upsert inserts or replaces the record stored under
	// (record.SourceURL, record.Date). Last write wins.
	Upsert(ctx context.Context, record *MenuRecord) error
	// ListSources returns the distinct source URLs ever cached.
	ListSources(ctx context.Context) ([]string, error)
}

// SubscriptionRepository defines the registry of notification targets per source.
// The (url, target) pair is unique.
type SubscriptionRepository interface {
	// Register stores a new (url, target) pair, returning
	// ErrDuplicateSubscription when it already exists.
	Register(ctx context.Context, url, target string) error
	// Unregister removes the pair; removing an absent pair is a no-op.
	Unregister(ctx context.Context, url, target string) error
	// Subscribers returns all targets registered for the source.
	Subscribers(ctx context.Context, url string) ([]string, error)
	// SubscribedSources returns the distinct sources with at least one subscriber.
	SubscribedSources(ctx context.Context) ([]string, error)
}

// Fetcher retrieves the raw markup of a source page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ModelClient sends an extraction prompt to a language model and returns
// its raw textual reply.
type ModelClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NotificationSink delivers a change notification to a single target.
type NotificationSink interface {
	Notify(ctx context.Context, target string, payload ChangeNotification) error
}
