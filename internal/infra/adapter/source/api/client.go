// Package api implements the live content backend over the CMS HTTP API.
// Responses are cached in a tag-indexed store so an editorial
// revalidation can drop exactly the entries a change affects.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"usher-web/internal/common/pagination"
	"usher-web/internal/domain/entity"
	"usher-web/internal/infra/cache"
	"usher-web/internal/observability/metrics"
	"usher-web/internal/repository"
)

// defaultTimeout bounds one CMS read. Reads are at-most-one-attempt;
// there is no retry, so the timeout is the worst case a page render waits.
const defaultTimeout = 10 * time.Second

// Client reads content from the live CMS API.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.TagStore
	logger  *slog.Logger
}

// NewClient creates a live content source. baseURL is the CMS API root,
// e.g. http://localhost:8001/api/v1, without a trailing slash. store may
// be nil to disable caching.
func NewClient(baseURL string, store *cache.TagStore, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		cache:   store,
		logger:  logger,
	}
}

// Mode reports the live backend.
func (c *Client) Mode() repository.Mode {
	return repository.ModeAPI
}

// get performs one cached GET against the CMS and decodes the JSON body
// into v. The cache key is the path plus encoded query; tags label the
// entry for revalidation.
func (c *Client) get(ctx context.Context, path string, query url.Values, tags []string, v any) error {
	key := path
	if encoded := query.Encode(); encoded != "" {
		key += "?" + encoded
	}

	if c.cache != nil {
		if body, ok := c.cache.Get(key); ok {
			metrics.RecordCacheHit()
			return json.Unmarshal(body, v)
		}
		metrics.RecordCacheMiss()
	}

	reqURL := c.baseURL + key
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("GET %s: %w", path, entity.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("GET %s: read body: %w", path, err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}

	if c.cache != nil {
		c.cache.Set(key, body, tags)
	}

	c.logger.Debug("content fetched",
		slog.String("path", path),
		slog.Int("bytes", len(body)),
		slog.Any("tags", tags))
	return nil
}

// Articles lists article summaries matching the filter.
func (c *Client) Articles(ctx context.Context, filter repository.ArticleFilter) (pagination.Response[entity.ArticleSummary], error) {
	query := url.Values{}
	if filter.Type != "" {
		query.Set("type", string(filter.Type))
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Tag != "" {
		query.Set("tag", filter.Tag)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(filter.PerPage))
	}

	var resp pagination.Response[entity.ArticleSummary]
	err := c.get(ctx, "/articles", query, []string{cache.TagArticles}, &resp)
	return resp, err
}

// Article reads one article with its related summaries.
func (c *Client) Article(ctx context.Context, slug string) (entity.ArticleDetailResponse, error) {
	var resp entity.ArticleDetailResponse
	tags := []string{cache.TagArticles, cache.TagArticle(slug)}
	err := c.get(ctx, "/articles/"+url.PathEscape(slug), nil, tags, &resp)
	return resp, err
}

// Page reads one static page.
func (c *Client) Page(ctx context.Context, slug string) (entity.Page, error) {
	var resp struct {
		Data entity.Page `json:"data"`
	}
	tags := []string{cache.TagPages, cache.TagPage(slug)}
	err := c.get(ctx, "/pages/"+url.PathEscape(slug), nil, tags, &resp)
	return resp.Data, err
}

// Homepage reads the homepage aggregate. Unlike the other resources the
// CMS serves it without a data envelope.
func (c *Client) Homepage(ctx context.Context) (entity.HomepageData, error) {
	var resp entity.HomepageData
	err := c.get(ctx, "/homepage", nil, []string{cache.TagHomepage}, &resp)
	return resp, err
}

// Categories reads the full category list.
func (c *Client) Categories(ctx context.Context) ([]entity.Category, error) {
	var resp struct {
		Data []entity.Category `json:"data"`
	}
	err := c.get(ctx, "/categories", nil, []string{cache.TagCategories}, &resp)
	return resp.Data, err
}

// PublicDocuments lists public documents from the native resource.
// Older CMS deployments do not expose it; the usecase layer falls back
// to the legacy article mapping on any error.
func (c *Client) PublicDocuments(ctx context.Context, filter repository.DocumentFilter) (pagination.Response[entity.PublicDocumentSummary], error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(filter.PerPage))
	}

	var resp pagination.Response[entity.PublicDocumentSummary]
	err := c.get(ctx, "/public-documents", query, []string{cache.TagDocuments}, &resp)
	return resp, err
}

// PublicDocument reads one public document with related summaries.
func (c *Client) PublicDocument(ctx context.Context, slug string) (entity.PublicDocumentDetailResponse, error) {
	var resp entity.PublicDocumentDetailResponse
	tags := []string{cache.TagDocuments, cache.TagDocument(slug)}
	err := c.get(ctx, "/public-documents/"+url.PathEscape(slug), nil, tags, &resp)
	return resp, err
}

// AttachmentDownloadURL builds the CMS download endpoint URL for an
// attachment. The original filename is not part of the live URL.
func (c *Client) AttachmentDownloadURL(articleSlug string, attachmentID int64, _ string) string {
	return fmt.Sprintf("%s/articles/%s/attachments/%d/download",
		c.baseURL, url.PathEscape(articleSlug), attachmentID)
}
