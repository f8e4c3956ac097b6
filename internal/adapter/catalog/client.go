package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/oweller/ipteav/internal/domain"
)

const defaultTimeout = 30 * time.Second

// Client implements domain.CatalogClient against the /content REST surface.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new catalog API client
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// doRequest performs an authenticated request and unwraps the
// {success, data} envelope. Failed fetches are not retried; the caller
// decides whether to reissue the operation.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) (json.RawMessage, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("catalog request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "error", err, "url", reqURL)
		return nil, domain.ErrServerOffline
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		c.logger.Error("catalog request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if !env.Success {
		return nil, domain.ErrRequestFailed
	}

	return env.Data, nil
}

// Categories returns raw category records for a content type.
func (c *Client) Categories(ctx context.Context, contentType domain.ContentType) ([]domain.RawCategory, error) {
	query := url.Values{}
	query.Set("type", contentType.String())

	data, err := c.doRequest(ctx, http.MethodGet, "/content/categories", query)
	if err != nil {
		return nil, err
	}

	var dtos []categoryDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("failed to parse categories: %w", err)
	}
	return mapCategories(dtos), nil
}

// CategoryGroups returns the subcategory groups of a category.
func (c *Client) CategoryGroups(ctx context.Context, categoryID int) ([]domain.Group, error) {
	path := fmt.Sprintf("/content/categories/%d/groups", categoryID)
	data, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var dtos []groupDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("failed to parse groups: %w", err)
	}
	return mapGroups(dtos), nil
}

// CategoryItems returns one page of items directly under a category.
func (c *Client) CategoryItems(ctx context.Context, categoryID, page, size int) (domain.Page, error) {
	path := fmt.Sprintf("/content/categories/%d/items", categoryID)
	return c.fetchPage(ctx, path, pageQuery(page, size))
}

// CategoryGroupItems returns one page of items for a group within a category.
func (c *Client) CategoryGroupItems(ctx context.Context, categoryID int, group string, page, size int) (domain.Page, error) {
	path := fmt.Sprintf("/content/categories/%d/groups/%s/items", categoryID, url.PathEscape(group))
	return c.fetchPage(ctx, path, pageQuery(page, size))
}

// Prefixes returns the top-level prefix nodes for a content type.
func (c *Client) Prefixes(ctx context.Context, contentType domain.ContentType) ([]domain.Prefix, error) {
	query := url.Values{}
	query.Set("type", contentType.String())

	data, err := c.doRequest(ctx, http.MethodGet, "/content/prefixes", query)
	if err != nil {
		return nil, err
	}

	var dtos []prefixDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("failed to parse prefixes: %w", err)
	}
	return mapPrefixes(dtos), nil
}

// PrefixGroups returns the groups under a prefix.
func (c *Client) PrefixGroups(ctx context.Context, prefix string, contentType domain.ContentType) ([]domain.Group, error) {
	query := url.Values{}
	query.Set("type", contentType.String())

	path := fmt.Sprintf("/content/prefixes/%s/groups", url.PathEscape(prefix))
	data, err := c.doRequest(ctx, http.MethodGet, path, query)
	if err != nil {
		return nil, err
	}

	var dtos []groupDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("failed to parse groups: %w", err)
	}
	return mapGroups(dtos), nil
}

// GroupItems returns one page of items for a group in the prefix scheme.
func (c *Client) GroupItems(ctx context.Context, group string, contentType domain.ContentType, page, size int) (domain.Page, error) {
	query := pageQuery(page, size)
	query.Set("type", contentType.String())

	path := fmt.Sprintf("/content/groups/%s/items", url.PathEscape(group))
	return c.fetchPage(ctx, path, query)
}

// TriggerRefresh asks the backend to start a catalog import.
func (c *Client) TriggerRefresh(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/content/refresh", nil)
	return err
}

// VodDetail returns extended metadata for a VOD entry.
func (c *Client) VodDetail(ctx context.Context, id int) (domain.VodDetail, error) {
	path := fmt.Sprintf("/content/vod/%d", id)
	data, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return domain.VodDetail{}, err
	}

	var dto vodDetailDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domain.VodDetail{}, fmt.Errorf("failed to parse vod detail: %w", err)
	}
	return mapVodDetail(dto), nil
}

// SeriesDetail returns extended metadata for a series.
func (c *Client) SeriesDetail(ctx context.Context, id int) (domain.Series, error) {
	path := fmt.Sprintf("/content/series/%d", id)
	data, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return domain.Series{}, err
	}

	var dto seriesDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domain.Series{}, fmt.Errorf("failed to parse series: %w", err)
	}
	return mapSeries(dto), nil
}

// Episodes returns the episodes of a series, optionally for one season.
func (c *Client) Episodes(ctx context.Context, seriesID, seasonNumber int) ([]domain.Episode, error) {
	path := fmt.Sprintf("/content/series/%d/episodes", seriesID)
	if seasonNumber > 0 {
		path = fmt.Sprintf("/content/series/%d/episodes/season/%d", seriesID, seasonNumber)
	}

	data, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var dtos []episodeDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("failed to parse episodes: %w", err)
	}
	return mapEpisodes(dtos), nil
}

// fetchPage fetches and maps one paged item listing.
func (c *Client) fetchPage(ctx context.Context, path string, query url.Values) (domain.Page, error) {
	data, err := c.doRequest(ctx, http.MethodGet, path, query)
	if err != nil {
		return domain.Page{}, err
	}

	var dto pagedItemsDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domain.Page{}, fmt.Errorf("failed to parse items page: %w", err)
	}

	page, _ := strconv.Atoi(query.Get("page"))
	return mapPage(dto, page), nil
}

func pageQuery(page, size int) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	return query
}
