package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oweller/ipteav/internal/domain"
	"github.com/oweller/ipteav/internal/log"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, NewClient(srv.URL, "test-token", log.NullLogger())
}

func TestCategoriesUnwrapsEnvelope(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/content/categories", r.URL.Path)
		assert.Equal(t, "LIVE", r.URL.Query().Get("type"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		fmt.Fprint(w, `{"success":true,"data":[
			{"id":1,"normalizedName":"sports","originalName":"Sports","contentType":"LIVE","itemCount":10},
			{"id":2,"normalizedName":"sports","originalName":"Sports HD","contentType":"LIVE","itemCount":5}
		]}`)
	})

	cats, err := client.Categories(context.Background(), domain.ContentTypeLive)
	require.NoError(t, err)
	require.Len(t, cats, 2, "the client returns raw records; deduplication happens above it")
	assert.Equal(t, "sports", cats[0].NormalizedName)
	assert.Equal(t, 5, cats[1].ItemCount)
}

func TestCategoryGroupItemsBuildsPagedRequest(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/content/categories/5/groups/premier/items", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("size"))

		fmt.Fprint(w, `{"success":true,"data":{
			"content":[{"id":7,"streamId":700,"name":"Channel 7","streamUrl":"http://s/7","contentType":"LIVE","categoryId":5,"categoryName":"Sports"}],
			"totalElements":101,"totalPages":3,"last":true
		}}`)
	})

	page, err := client.CategoryGroupItems(context.Background(), 5, "premier", 2, 50)
	require.NoError(t, err)
	assert.Equal(t, 2, page.PageIndex)
	assert.Equal(t, 101, page.TotalItems)
	assert.True(t, page.Last)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Channel 7", page.Items[0].Name)
	assert.Equal(t, 700, page.Items[0].StreamID)
}

func TestGroupItemsCarriesContentType(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/content/groups/uk-sports/items", r.URL.Path)
		assert.Equal(t, "VOD", r.URL.Query().Get("type"))
		fmt.Fprint(w, `{"success":true,"data":{"content":[],"totalElements":0,"totalPages":0,"last":true}}`)
	})

	page, err := client.GroupItems(context.Background(), "uk-sports", domain.ContentTypeVOD, 0, 50)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.True(t, page.Last)
}

func TestPrefixesAndGroups(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/content/prefixes":
			fmt.Fprint(w, `{"success":true,"data":[{"prefix":"UK","groupCount":3,"totalItemCount":120}]}`)
		case "/content/prefixes/UK/groups":
			assert.Equal(t, "LIVE", r.URL.Query().Get("type"))
			fmt.Fprint(w, `{"success":true,"data":[{"groupName":"uk-sports","displayName":"UK Sports","itemCount":40}]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	ctx := context.Background()
	prefixes, err := client.Prefixes(ctx, domain.ContentTypeLive)
	require.NoError(t, err)
	require.Len(t, prefixes, 1)
	assert.Equal(t, "UK", prefixes[0].Prefix)
	assert.Equal(t, 120, prefixes[0].TotalItemCount)

	groups, err := client.PrefixGroups(ctx, "UK", domain.ContentTypeLive)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "UK Sports", groups[0].Title())
}

func TestTriggerRefreshPostsOnce(t *testing.T) {
	calls := 0
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/content/refresh", r.URL.Path)
		fmt.Fprint(w, `{"success":true,"data":null}`)
	})

	require.NoError(t, client.TriggerRefresh(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestUnauthorizedMapsToAuthFailed(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Categories(context.Background(), domain.ContentTypeLive)
	assert.ErrorIs(t, err, domain.ErrAuthFailed)
}

func TestNotFoundMapsToNotFound(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.CategoryGroups(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnvelopeFailureMapsToRequestFailed(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":false,"data":null}`)
	})

	_, err := client.Categories(context.Background(), domain.ContentTypeLive)
	assert.ErrorIs(t, err, domain.ErrRequestFailed)
}

func TestTransportErrorMapsToServerOffline(t *testing.T) {
	srv, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := client.Categories(context.Background(), domain.ContentTypeLive)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestServerErrorIsNotRetried(t *testing.T) {
	calls := 0
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Categories(context.Background(), domain.ContentTypeLive)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestVodDetail(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/content/vod/42", r.URL.Path)
		fmt.Fprint(w, `{"success":true,"data":{
			"id":42,"name":"Heat","streamUrl":"http://s/42","plot":"A heist.","rating":8.3,"duration":"170 min"
		}}`)
	})

	detail, err := client.VodDetail(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Heat", detail.Name)
	assert.Equal(t, 8.3, detail.Rating)
	assert.Equal(t, "170 min", detail.Duration)
}

func TestEpisodesWithSeasonFilter(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/content/series/9/episodes/season/2", r.URL.Path)
		fmt.Fprint(w, `{"success":true,"data":[
			{"id":1,"seriesId":9,"seasonNumber":2,"episodeNumber":5,"title":"Pilot Redux","streamUrl":"http://s/e1"}
		]}`)
	})

	episodes, err := client.Episodes(context.Background(), 9, 2)
	require.NoError(t, err)
	require.Len(t, episodes, 1)
	assert.Equal(t, "S02E05", episodes[0].Code())
}
