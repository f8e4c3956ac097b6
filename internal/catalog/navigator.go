package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/oweller/ipteav/internal/domain"
)

// LevelKind distinguishes the breadcrumb levels.
type LevelKind int

const (
	LevelRoot LevelKind = iota
	LevelCategory
	LevelPrefix
	LevelGroup
)

// String returns a human-readable representation of the level kind.
func (k LevelKind) String() string {
	switch k {
	case LevelRoot:
		return "root"
	case LevelCategory:
		return "category"
	case LevelPrefix:
		return "prefix"
	case LevelGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Level is one node of the breadcrumb stack. The coordinate fields
// carry everything needed to re-render or refetch the level's listing.
type Level struct {
	Label      string
	Kind       LevelKind
	Key        string
	CategoryID int
	Prefix     string
	Group      string
	Leaf       bool // items are listed at this level
}

// Node is a selectable entry in the currently visible listing.
type Node struct {
	Kind       LevelKind
	Label      string
	CategoryID int
	Prefix     string
	Group      string
}

// CategoryNode builds a selectable node from an aggregated category.
func CategoryNode(c domain.CategoryAggregate) Node {
	return Node{Kind: LevelCategory, Label: c.OriginalName, CategoryID: c.ID}
}

// PrefixNode builds a selectable node from a prefix.
func PrefixNode(p domain.Prefix) Node {
	return Node{Kind: LevelPrefix, Label: p.Prefix, Prefix: p.Prefix}
}

// GroupNode builds a selectable node from a group.
func GroupNode(g domain.Group) Node {
	return Node{Kind: LevelGroup, Label: g.Title(), Group: g.Name}
}

// Navigator owns the breadcrumb stack and decides which cache fetch to
// issue for each user action. It never mutates cache collections
// directly; it only reads them and issues fetch calls.
type Navigator struct {
	cache  *Cache
	logger *slog.Logger

	mu          sync.Mutex
	stack       []Level
	contentType domain.ContentType

	// gen invalidates navigation completions after the stack has been
	// reset or popped underneath an in-flight fetch.
	gen uint64
}

// NewNavigator creates a navigator positioned at the root level.
func NewNavigator(cache *Cache, contentType domain.ContentType, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	if !contentType.IsValid() {
		contentType = domain.ContentTypeLive
	}
	return &Navigator{
		cache:       cache,
		logger:      logger,
		stack:       []Level{rootLevel()},
		contentType: contentType,
	}
}

func rootLevel() Level {
	return Level{Label: "All", Kind: LevelRoot, Key: "root"}
}

// ContentType returns the currently selected content type.
func (n *Navigator) ContentType() domain.ContentType {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.contentType
}

// Breadcrumbs returns a copy of the breadcrumb stack, root first.
func (n *Navigator) Breadcrumbs() []Level {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Level, len(n.stack))
	copy(out, n.stack)
	return out
}

// ActiveLevel returns the deepest (current) level.
func (n *Navigator) ActiveLevel() Level {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack[len(n.stack)-1]
}

// Depth returns the navigation depth (0 = root).
func (n *Navigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.stack) - 1
}

// SelectNode drills into a node one level below the active one. For an
// intermediate node it fetches children; for a leaf it starts item
// pagination at page 0 (unless the leaf is already active, in which
// case the accumulated sequence is preserved as-is). A failed fetch
// leaves the stack and cache unchanged.
func (n *Navigator) SelectNode(ctx context.Context, node Node) error {
	n.mu.Lock()
	gen := n.gen
	contentType := n.contentType
	parent := n.stack[len(n.stack)-1]
	n.mu.Unlock()

	switch node.Kind {
	case LevelCategory, LevelPrefix:
		return n.drillIntermediate(ctx, gen, contentType, node)
	case LevelGroup:
		return n.drillLeaf(ctx, gen, contentType, parent, node)
	default:
		return fmt.Errorf("cannot select node of kind %s", node.Kind)
	}
}

// drillIntermediate handles category and prefix nodes. A category with
// no groups degrades to a leaf listing its items directly.
func (n *Navigator) drillIntermediate(ctx context.Context, gen uint64, contentType domain.ContentType, node Node) error {
	parent := ParentRef{CategoryID: node.CategoryID, Prefix: node.Prefix, Type: contentType}

	groups, err := n.cache.ListChildren(ctx, parent)
	if err != nil {
		return err
	}

	level := Level{
		Label:      node.Label,
		Kind:       node.Kind,
		Key:        parent.Key(),
		CategoryID: node.CategoryID,
		Prefix:     node.Prefix,
	}

	if len(groups) == 0 && node.CategoryID > 0 {
		// Flat category: list its items directly. Page 0 replaces the
		// accumulated sequence on success and is a no-op on failure.
		leaf := LeafRef{CategoryID: node.CategoryID, Type: contentType}
		if _, err := n.cache.ListItemsPage(ctx, leaf, 0); err != nil {
			return err
		}
		level.Leaf = true
	} else {
		// Entering an intermediate level makes the previous leaf's
		// accumulated pages stale. Clearing only after the fetch
		// succeeded keeps a failed drill side-effect free.
		n.cache.ClearItems()
	}

	return n.push(gen, level)
}

// drillLeaf handles group nodes, which always list items.
func (n *Navigator) drillLeaf(ctx context.Context, gen uint64, contentType domain.ContentType, parent Level, node Node) error {
	leaf := LeafRef{CategoryID: parent.CategoryID, Group: node.Group, Type: contentType}

	// Re-entering the active leaf keeps the accumulated pages.
	if n.cache.ActiveLeaf() != leaf.Key() {
		if _, err := n.cache.ListItemsPage(ctx, leaf, 0); err != nil {
			return err
		}
	}

	level := Level{
		Label:      node.Label,
		Kind:       LevelGroup,
		Key:        leaf.Key(),
		CategoryID: parent.CategoryID,
		Prefix:     parent.Prefix,
		Group:      node.Group,
		Leaf:       true,
	}
	return n.push(gen, level)
}

// push appends the level unless the stack changed under the fetch.
func (n *Navigator) push(gen uint64, level Level) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.gen {
		n.logger.Debug("discarding navigation result, stack changed", "level", level.Key)
		return nil
	}
	n.stack = append(n.stack, level)
	return nil
}

// GoBack pops one level and re-displays it, refetching only if its
// cached listing is gone.
func (n *Navigator) GoBack(ctx context.Context) error {
	n.mu.Lock()
	if len(n.stack) <= 1 {
		n.mu.Unlock()
		return nil
	}
	n.stack = n.stack[:len(n.stack)-1]
	n.gen++
	active := n.stack[len(n.stack)-1]
	n.mu.Unlock()

	return n.ensureLevelData(ctx, active)
}

// GoToLevel pops the stack down to the given depth (0 = root).
func (n *Navigator) GoToLevel(ctx context.Context, index int) error {
	n.mu.Lock()
	if index < 0 || index >= len(n.stack)-1 {
		n.mu.Unlock()
		return nil
	}
	n.stack = n.stack[:index+1]
	n.gen++
	active := n.stack[len(n.stack)-1]
	n.mu.Unlock()

	return n.ensureLevelData(ctx, active)
}

// GoToRoot resets the stack to just ROOT and drops all cached levels
// below it. It does not refetch; callers follow with RefreshTopLevel
// when fresh data is wanted.
func (n *Navigator) GoToRoot() {
	n.mu.Lock()
	n.stack = []Level{rootLevel()}
	n.gen++
	n.mu.Unlock()

	n.cache.InvalidateBelowRoot()
}

// RefreshTopLevel refetches the top-level collection for the current
// content type.
func (n *Navigator) RefreshTopLevel(ctx context.Context) error {
	return n.cache.ListTopLevel(ctx, n.ContentType())
}

// ChangeContentType switches tabs: reset to root, then fetch the top
// level for the new type.
func (n *Navigator) ChangeContentType(ctx context.Context, contentType domain.ContentType) error {
	if !contentType.IsValid() {
		return fmt.Errorf("invalid content type %q", contentType)
	}

	n.mu.Lock()
	n.contentType = contentType
	n.mu.Unlock()

	n.GoToRoot()
	return n.RefreshTopLevel(ctx)
}

// LoadMore fetches the next item page for the active leaf. Valid only
// when the active level is a leaf with pages remaining.
func (n *Navigator) LoadMore(ctx context.Context) error {
	n.mu.Lock()
	active := n.stack[len(n.stack)-1]
	contentType := n.contentType
	n.mu.Unlock()

	if !active.Leaf {
		return fmt.Errorf("%w: active level is not a leaf", domain.ErrNoMorePages)
	}
	if !n.cache.HasMore() {
		return domain.ErrNoMorePages
	}

	leaf := LeafRef{CategoryID: active.CategoryID, Group: active.Group, Type: contentType}
	_, err := n.cache.LoadNextPage(ctx, leaf)
	return err
}

// ensureLevelData re-displays a level after popping to it: cached data
// is reused when still present, refetched otherwise.
func (n *Navigator) ensureLevelData(ctx context.Context, level Level) error {
	contentType := n.ContentType()

	switch {
	case level.Kind == LevelRoot:
		if n.cache.HasTopLevel() {
			return nil
		}
		return n.cache.ListTopLevel(ctx, contentType)

	case level.Leaf:
		leaf := LeafRef{CategoryID: level.CategoryID, Group: level.Group, Type: contentType}
		if n.cache.ActiveLeaf() == leaf.Key() {
			return nil
		}
		_, err := n.cache.ListItemsPage(ctx, leaf, 0)
		return err

	default:
		parent := ParentRef{CategoryID: level.CategoryID, Prefix: level.Prefix, Type: contentType}
		if _, ok := n.cache.Children(parent.Key()); ok {
			return nil
		}
		_, err := n.cache.ListChildren(ctx, parent)
		return err
	}
}
