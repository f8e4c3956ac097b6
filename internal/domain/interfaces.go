package domain

import "context"

// CatalogClient is the remote catalog surface. Implementations are
// opaque request/response wrappers; all caching, aggregation, and
// pagination bookkeeping lives above this interface.
type CatalogClient interface {
	// Categories returns raw category records for a content type,
	// duplicates included.
	Categories(ctx context.Context, contentType ContentType) ([]RawCategory, error)

	// CategoryGroups returns the subcategory groups of a category.
	CategoryGroups(ctx context.Context, categoryID int) ([]Group, error)

	// CategoryItems returns one page of items directly under a category.
	CategoryItems(ctx context.Context, categoryID, page, size int) (Page, error)

	// CategoryGroupItems returns one page of items for a group within a category.
	CategoryGroupItems(ctx context.Context, categoryID int, group string, page, size int) (Page, error)

	// Prefixes returns the top-level prefix nodes for a content type.
	Prefixes(ctx context.Context, contentType ContentType) ([]Prefix, error)

	// PrefixGroups returns the groups under a prefix.
	PrefixGroups(ctx context.Context, prefix string, contentType ContentType) ([]Group, error)

	// GroupItems returns one page of items for a group in the prefix scheme.
	GroupItems(ctx context.Context, group string, contentType ContentType, page, size int) (Page, error)

	// TriggerRefresh asks the backend to start a catalog import. It
	// returns immediately; completion is reported via the push channel.
	TriggerRefresh(ctx context.Context) error

	// VodDetail returns extended metadata for a VOD entry.
	VodDetail(ctx context.Context, id int) (VodDetail, error)

	// SeriesDetail returns extended metadata for a series.
	SeriesDetail(ctx context.Context, id int) (Series, error)

	// Episodes returns the episodes of a series, optionally limited to
	// one season (seasonNumber > 0).
	Episodes(ctx context.Context, seriesID, seasonNumber int) ([]Episode, error)
}

// SessionStore persists lightweight UI session state between runs.
// Catalog pages themselves are never persisted.
type SessionStore interface {
	SaveSession(s UISession) error
	LoadSession() (UISession, bool)
	AddRecent(item MediaItem) error
	Recents() []MediaItem
	Close() error
}

// UISession is the slice of UI state worth restoring on the next run.
type UISession struct {
	ContentType ContentType `json:"contentType"`
	Scheme      string      `json:"scheme"`
}
