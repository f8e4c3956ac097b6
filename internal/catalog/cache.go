// Package catalog owns the in-memory catalog state: one page set per
// hierarchy level, pagination cursors, the breadcrumb navigator that
// drives fetches, and the coordinator that ties catalog refreshes to
// sync completion.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/oweller/ipteav/internal/domain"
)

// Scheme selects how the top level of the hierarchy is organized.
type Scheme string

const (
	// SchemeCategories browses aggregated categories, then their groups.
	SchemeCategories Scheme = "categories"

	// SchemePrefixes browses provider prefixes, then their groups.
	SchemePrefixes Scheme = "prefixes"
)

// IsValid checks whether the scheme is one of the defined constants.
func (s Scheme) IsValid() bool {
	return s == SchemeCategories || s == SchemePrefixes
}

// ParentRef identifies an intermediate node whose children (groups)
// can be listed. Exactly one of CategoryID or Prefix is set.
type ParentRef struct {
	CategoryID int
	Prefix     string
	Type       domain.ContentType
}

// Key returns the cache key for this parent's children.
func (p ParentRef) Key() string {
	if p.CategoryID > 0 {
		return fmt.Sprintf("cat:%d", p.CategoryID)
	}
	return fmt.Sprintf("prefix:%s:%s", p.Prefix, p.Type)
}

// LeafRef identifies a leaf node whose items are paginated.
// CategoryID > 0 with an empty Group means the category itself is the
// leaf; an empty CategoryID means the prefix-scheme group endpoint.
type LeafRef struct {
	CategoryID int
	Group      string
	Type       domain.ContentType
}

// Key returns the identity of the accumulated item sequence.
func (l LeafRef) Key() string {
	return fmt.Sprintf("cat:%d/grp:%s/%s", l.CategoryID, l.Group, l.Type)
}

// Cache holds the fetched catalog nodes for the current session. It is
// the only mutator of its own collections; fetch failures leave prior
// contents untouched and propagate to the caller.
type Cache struct {
	client   domain.CatalogClient
	logger   *slog.Logger
	scheme   Scheme
	pageSize int

	mu         sync.Mutex
	categories []domain.CategoryAggregate
	prefixes   []domain.Prefix
	children   map[string][]domain.Group

	// Accumulated item pages for the active leaf.
	items      []domain.MediaItem
	activeLeaf string
	pageIndex  int
	totalItems int
	lastPage   bool

	// itemsGen tags in-flight page fetches; completions with a stale
	// generation are discarded instead of corrupting the sequence.
	itemsGen uint64

	loading bool
	phase   string
}

// NewCache creates an empty cache for the given browsing scheme.
func NewCache(client domain.CatalogClient, scheme Scheme, pageSize int, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	if !scheme.IsValid() {
		scheme = SchemeCategories
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Cache{
		client:   client,
		logger:   logger,
		scheme:   scheme,
		pageSize: pageSize,
		children: make(map[string][]domain.Group),
	}
}

// Scheme returns the active browsing scheme.
func (c *Cache) Scheme() Scheme {
	return c.scheme
}

// PageSize returns the configured items-per-page.
func (c *Cache) PageSize() int {
	return c.pageSize
}

// Loading reports whether a fetch is in flight and its phase message.
func (c *Cache) Loading() (bool, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading, c.phase
}

// ListTopLevel fetches and replaces the top-level collection for the
// content type: aggregated categories or prefixes, per the scheme.
func (c *Cache) ListTopLevel(ctx context.Context, contentType domain.ContentType) error {
	switch c.scheme {
	case SchemePrefixes:
		c.setLoading("Loading prefixes…")
		prefixes, err := c.client.Prefixes(ctx, contentType)
		c.clearLoading()
		if err != nil {
			c.logger.Error("failed to load prefixes", "error", err, "type", contentType)
			return err
		}

		c.mu.Lock()
		c.prefixes = prefixes
		c.mu.Unlock()

		c.logger.Debug("loaded prefixes", "count", len(prefixes), "type", contentType)
		return nil

	default:
		c.setLoading("Loading categories…")
		raw, err := c.client.Categories(ctx, contentType)
		c.clearLoading()
		if err != nil {
			c.logger.Error("failed to load categories", "error", err, "type", contentType)
			return err
		}

		aggregated := AggregateCategories(raw)

		c.mu.Lock()
		c.categories = aggregated
		c.mu.Unlock()

		c.logger.Debug("loaded categories",
			"raw", len(raw),
			"aggregated", len(aggregated),
			"type", contentType,
		)
		return nil
	}
}

// TopLevelCategories returns the cached aggregated categories.
func (c *Cache) TopLevelCategories() []domain.CategoryAggregate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.categories
}

// TopLevelPrefixes returns the cached prefixes.
func (c *Cache) TopLevelPrefixes() []domain.Prefix {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prefixes
}

// HasTopLevel reports whether a top-level collection has been fetched.
func (c *Cache) HasTopLevel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.categories != nil || c.prefixes != nil
}

// ListChildren fetches the groups under a parent and caches them per
// parent key, so back-navigation re-displays without refetching.
func (c *Cache) ListChildren(ctx context.Context, parent ParentRef) ([]domain.Group, error) {
	c.setLoading("Loading groups…")

	var (
		groups []domain.Group
		err    error
	)
	if parent.CategoryID > 0 {
		groups, err = c.client.CategoryGroups(ctx, parent.CategoryID)
	} else {
		groups, err = c.client.PrefixGroups(ctx, parent.Prefix, parent.Type)
	}
	c.clearLoading()

	if err != nil {
		c.logger.Error("failed to load groups", "error", err, "parent", parent.Key())
		return nil, err
	}

	c.mu.Lock()
	c.children[parent.Key()] = groups
	c.mu.Unlock()

	c.logger.Debug("loaded groups", "count", len(groups), "parent", parent.Key())
	return groups, nil
}

// Children returns the cached groups for a parent, if present.
func (c *Cache) Children(parentKey string) ([]domain.Group, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	groups, ok := c.children[parentKey]
	return groups, ok
}

// ListItemsPage fetches one page of items for a leaf. Page 0 replaces
// the accumulated sequence and makes the leaf active; later pages
// append. Completions carrying a stale generation (a newer fetch has
// started since) are discarded without mutating the cache. The fetched
// page's items are returned either way.
func (c *Cache) ListItemsPage(ctx context.Context, leaf LeafRef, pageIndex int) ([]domain.MediaItem, error) {
	c.mu.Lock()
	if pageIndex == 0 {
		// A fresh sequence invalidates every fetch still in flight.
		c.itemsGen++
	}
	gen := c.itemsGen
	c.loading = true
	c.phase = "Loading items…"
	c.mu.Unlock()

	page, err := c.fetchPage(ctx, leaf, pageIndex)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.phase = ""

	if err != nil {
		c.logger.Error("failed to load items",
			"error", err,
			"leaf", leaf.Key(),
			"page", pageIndex,
		)
		return nil, err
	}

	if gen != c.itemsGen {
		c.logger.Debug("discarding stale page response", "leaf", leaf.Key(), "page", pageIndex)
		return page.Items, nil
	}
	if pageIndex > 0 && c.activeLeaf != leaf.Key() {
		c.logger.Debug("discarding page for inactive leaf", "leaf", leaf.Key(), "page", pageIndex)
		return page.Items, nil
	}

	if pageIndex == 0 {
		c.items = page.Items
		c.activeLeaf = leaf.Key()
	} else {
		c.items = append(c.items, page.Items...)
	}
	c.pageIndex = pageIndex
	c.totalItems = page.TotalItems
	c.lastPage = page.Last

	c.logger.Debug("loaded items page",
		"leaf", leaf.Key(),
		"page", pageIndex,
		"pageItems", len(page.Items),
		"accumulated", len(c.items),
		"total", c.totalItems,
		"last", c.lastPage,
	)
	return page.Items, nil
}

// LoadNextPage fetches the page after the current one for the leaf.
func (c *Cache) LoadNextPage(ctx context.Context, leaf LeafRef) ([]domain.MediaItem, error) {
	c.mu.Lock()
	if c.activeLeaf != leaf.Key() {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: leaf is not active", domain.ErrNoMorePages)
	}
	if c.lastPage {
		c.mu.Unlock()
		return nil, domain.ErrNoMorePages
	}
	next := c.pageIndex + 1
	c.mu.Unlock()

	return c.ListItemsPage(ctx, leaf, next)
}

// Items returns the accumulated item sequence for the active leaf.
func (c *Cache) Items() []domain.MediaItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// ActiveLeaf returns the key of the leaf whose pages are accumulated.
func (c *Cache) ActiveLeaf() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeLeaf
}

// PageInfo returns the current pagination cursor state.
func (c *Cache) PageInfo() (pageIndex, totalItems int, lastPage bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageIndex, c.totalItems, c.lastPage
}

// HasMore reports whether the active leaf has unfetched pages.
func (c *Cache) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeLeaf != "" && !c.lastPage
}

// ClearItems drops the accumulated item sequence and invalidates any
// page fetch still in flight.
func (c *Cache) ClearItems() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearItemsLocked()
}

// InvalidateBelowRoot drops everything below the top level: cached
// children and the accumulated items. The top-level collection stays
// until the next ListTopLevel replaces it.
func (c *Cache) InvalidateBelowRoot() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.children = make(map[string][]domain.Group)
	c.clearItemsLocked()
}

func (c *Cache) clearItemsLocked() {
	c.itemsGen++
	c.items = nil
	c.activeLeaf = ""
	c.pageIndex = 0
	c.totalItems = 0
	c.lastPage = false
}

// fetchPage dispatches to the endpoint matching the leaf coordinates.
func (c *Cache) fetchPage(ctx context.Context, leaf LeafRef, pageIndex int) (domain.Page, error) {
	switch {
	case leaf.CategoryID > 0 && leaf.Group != "":
		return c.client.CategoryGroupItems(ctx, leaf.CategoryID, leaf.Group, pageIndex, c.pageSize)
	case leaf.CategoryID > 0:
		return c.client.CategoryItems(ctx, leaf.CategoryID, pageIndex, c.pageSize)
	default:
		return c.client.GroupItems(ctx, leaf.Group, leaf.Type, pageIndex, c.pageSize)
	}
}

func (c *Cache) setLoading(phase string) {
	c.mu.Lock()
	c.loading = true
	c.phase = phase
	c.mu.Unlock()
}

func (c *Cache) clearLoading() {
	c.mu.Lock()
	c.loading = false
	c.phase = ""
	c.mu.Unlock()
}
