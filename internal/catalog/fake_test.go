package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/oweller/ipteav/internal/domain"
)

// fakeClient is an in-memory domain.CatalogClient for exercising the
// cache and navigator without a backend.
type fakeClient struct {
	mu sync.Mutex

	categories map[domain.ContentType][]domain.RawCategory
	prefixes   map[domain.ContentType][]domain.Prefix
	catGroups  map[int][]domain.Group
	prefGroups map[string][]domain.Group

	// pages holds item pages keyed by leaf, indexed by page number.
	pages map[string][]domain.Page

	// errs fails the named operation ("categories", "groups:5",
	// "items:cat:5", ...).
	errs map[string]error

	// fetchHook, when set, runs at the start of every item page fetch.
	// Tests use it to interleave concurrent fetches.
	fetchHook func(leafKey string, page int)

	refreshCalls int
	calls        []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		categories: make(map[domain.ContentType][]domain.RawCategory),
		prefixes:   make(map[domain.ContentType][]domain.Prefix),
		catGroups:  make(map[int][]domain.Group),
		prefGroups: make(map[string][]domain.Group),
		pages:      make(map[string][]domain.Page),
		errs:       make(map[string]error),
	}
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeClient) callCount(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeClient) failWith(op string, err error) {
	f.mu.Lock()
	f.errs[op] = err
	f.mu.Unlock()
}

func (f *fakeClient) errFor(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs[op]
}

// setPages installs the page sequence for a leaf.
func (f *fakeClient) setPages(leafKey string, pages ...domain.Page) {
	f.mu.Lock()
	f.pages[leafKey] = pages
	f.mu.Unlock()
}

func (f *fakeClient) pageFor(leafKey string, page int) (domain.Page, error) {
	if hook := f.fetchHook; hook != nil {
		hook(leafKey, page)
	}
	if err := f.errFor("items:" + leafKey); err != nil {
		return domain.Page{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	pages := f.pages[leafKey]
	if page >= len(pages) {
		return domain.Page{PageIndex: page, Last: true}, nil
	}
	return pages[page], nil
}

func (f *fakeClient) Categories(ctx context.Context, contentType domain.ContentType) ([]domain.RawCategory, error) {
	f.record("categories:" + string(contentType))
	if err := f.errFor("categories"); err != nil {
		return nil, err
	}
	return f.categories[contentType], nil
}

func (f *fakeClient) CategoryGroups(ctx context.Context, categoryID int) ([]domain.Group, error) {
	f.record(fmt.Sprintf("groups:%d", categoryID))
	if err := f.errFor(fmt.Sprintf("groups:%d", categoryID)); err != nil {
		return nil, err
	}
	return f.catGroups[categoryID], nil
}

func (f *fakeClient) CategoryItems(ctx context.Context, categoryID, page, size int) (domain.Page, error) {
	key := LeafRef{CategoryID: categoryID, Type: domain.ContentTypeLive}.Key()
	f.record(fmt.Sprintf("items:%s:p%d", key, page))
	return f.pageFor(key, page)
}

func (f *fakeClient) CategoryGroupItems(ctx context.Context, categoryID int, group string, page, size int) (domain.Page, error) {
	key := LeafRef{CategoryID: categoryID, Group: group, Type: domain.ContentTypeLive}.Key()
	f.record(fmt.Sprintf("items:%s:p%d", key, page))
	return f.pageFor(key, page)
}

func (f *fakeClient) Prefixes(ctx context.Context, contentType domain.ContentType) ([]domain.Prefix, error) {
	f.record("prefixes:" + string(contentType))
	if err := f.errFor("prefixes"); err != nil {
		return nil, err
	}
	return f.prefixes[contentType], nil
}

func (f *fakeClient) PrefixGroups(ctx context.Context, prefix string, contentType domain.ContentType) ([]domain.Group, error) {
	f.record("prefixgroups:" + prefix)
	if err := f.errFor("prefixgroups:" + prefix); err != nil {
		return nil, err
	}
	return f.prefGroups[prefix], nil
}

func (f *fakeClient) GroupItems(ctx context.Context, group string, contentType domain.ContentType, page, size int) (domain.Page, error) {
	key := LeafRef{Group: group, Type: contentType}.Key()
	f.record(fmt.Sprintf("items:%s:p%d", key, page))
	return f.pageFor(key, page)
}

func (f *fakeClient) TriggerRefresh(ctx context.Context) error {
	f.mu.Lock()
	f.refreshCalls++
	f.mu.Unlock()
	return nil
}

func (f *fakeClient) VodDetail(ctx context.Context, id int) (domain.VodDetail, error) {
	return domain.VodDetail{}, domain.ErrNotFound
}

func (f *fakeClient) SeriesDetail(ctx context.Context, id int) (domain.Series, error) {
	return domain.Series{}, domain.ErrNotFound
}

func (f *fakeClient) Episodes(ctx context.Context, seriesID, seasonNumber int) ([]domain.Episode, error) {
	return nil, domain.ErrNotFound
}

// makeItems builds n sequential items named prefix-start..prefix-(start+n-1).
func makeItems(prefix string, start, n int) []domain.MediaItem {
	items := make([]domain.MediaItem, 0, n)
	for i := 0; i < n; i++ {
		id := start + i
		items = append(items, domain.MediaItem{
			ID:   id,
			Name: fmt.Sprintf("%s-%d", prefix, id),
			Type: domain.ContentTypeLive,
		})
	}
	return items
}

func makePage(items []domain.MediaItem, pageIndex, totalItems int, last bool) domain.Page {
	return domain.Page{
		Items:      items,
		PageIndex:  pageIndex,
		TotalItems: totalItems,
		Last:       last,
	}
}
