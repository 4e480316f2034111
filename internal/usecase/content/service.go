// Package content is the content-access layer: typed read operations
// over one backend, plus normalization and the legacy document mapping.
// Every read is independent, idempotent and at-most-one-attempt; the
// only automatic fallback is the public-documents legacy path.
package content

import (
	"context"
	"log/slog"
	"time"

	"usher-web/internal/common/pagination"
	"usher-web/internal/domain/entity"
	"usher-web/internal/observability/metrics"
	"usher-web/internal/repository"

	"golang.org/x/sync/errgroup"
)

// slugEnumerationPerPage is the page size used when enumerating slugs.
// The content graph is far smaller than this in practice.
const slugEnumerationPerPage = 500

// Service exposes the content read operations the site renders from.
type Service struct {
	source repository.ContentSource
	mapper legacyMapper
	logger *slog.Logger
}

// NewService creates the content service over a backend. apiBaseURL is
// needed even in snapshot mode because the legacy document mapping
// synthesizes API links from it.
func NewService(source repository.ContentSource, apiBaseURL string, logger *slog.Logger) *Service {
	return &Service{
		source: source,
		mapper: legacyMapper{
			apiBaseURL:  apiBaseURL,
			downloadURL: source.AttachmentDownloadURL,
		},
		logger: logger,
	}
}

// Mode reports which backend the service reads from.
func (s *Service) Mode() repository.Mode {
	return s.source.Mode()
}

// record wraps one backend read with metrics.
func (s *Service) record(operation string, start time.Time, err error) {
	metrics.RecordContentRead(operation, string(s.source.Mode()), err, time.Since(start))
}

// GetArticles lists article summaries with normalized image URLs.
func (s *Service) GetArticles(ctx context.Context, filter repository.ArticleFilter) (pagination.Response[entity.ArticleSummary], error) {
	start := time.Now()
	resp, err := s.source.Articles(ctx, filter)
	s.record("articles", start, err)
	if err != nil {
		return resp, err
	}
	resp.Data = normalizeSummaries(resp.Data)
	return resp, nil
}

// GetArticle reads one article and its related summaries, normalized.
func (s *Service) GetArticle(ctx context.Context, slug string) (entity.ArticleDetailResponse, error) {
	start := time.Now()
	resp, err := s.source.Article(ctx, slug)
	s.record("article", start, err)
	if err != nil {
		return resp, err
	}
	resp.Data.ArticleSummary = normalizeSummary(resp.Data.ArticleSummary)
	resp.Related = normalizeSummaries(resp.Related)
	return resp, nil
}

// GetPage reads one static page.
func (s *Service) GetPage(ctx context.Context, slug string) (entity.Page, error) {
	start := time.Now()
	page, err := s.source.Page(ctx, slug)
	s.record("page", start, err)
	return page, err
}

// GetHomepage reads the homepage aggregate with all article lists
// normalized.
func (s *Service) GetHomepage(ctx context.Context) (entity.HomepageData, error) {
	start := time.Now()
	home, err := s.source.Homepage(ctx)
	s.record("homepage", start, err)
	if err != nil {
		return home, err
	}
	home.Featured = normalizeSummaries(home.Featured)
	home.LatestBlog = normalizeSummaries(home.LatestBlog)
	home.LatestNotice = normalizeSummaries(home.LatestNotice)
	home.LatestDocument = normalizeSummaries(home.LatestDocument)
	home.LatestRelatedNews = normalizeSummaries(home.LatestRelatedNews)
	return home, nil
}

// GetCategories reads the full category list.
func (s *Service) GetCategories(ctx context.Context) ([]entity.Category, error) {
	start := time.Now()
	cats, err := s.source.Categories(ctx)
	s.record("categories", start, err)
	return cats, err
}

// AllArticleSlugs enumerates every slug of a content type. It never
// fails: enumeration feeds best-effort prerendering and the sitemap, so
// errors degrade to an empty list.
func (s *Service) AllArticleSlugs(ctx context.Context, contentType entity.ContentType) []string {
	resp, err := s.GetArticles(ctx, repository.ArticleFilter{
		Type:    contentType,
		PerPage: slugEnumerationPerPage,
	})
	if err != nil {
		s.logger.Warn("slug enumeration failed, returning empty list",
			slog.String("content_type", string(contentType)),
			slog.Any("error", err))
		return []string{}
	}

	slugs := make([]string, 0, len(resp.Data))
	for _, a := range resp.Data {
		slugs = append(slugs, a.Slug)
	}
	return slugs
}

// AllSlugs enumerates the slugs of all four content types concurrently.
// Like AllArticleSlugs it never fails; missing types come back empty.
func (s *Service) AllSlugs(ctx context.Context) map[entity.ContentType][]string {
	results := make([][]string, len(entity.ContentTypes))

	g, gctx := errgroup.WithContext(ctx)
	for i, contentType := range entity.ContentTypes {
		g.Go(func() error {
			results[i] = s.AllArticleSlugs(gctx, contentType)
			return nil
		})
	}
	// Enumeration soft-fails per type, so the group never errors.
	_ = g.Wait()

	out := make(map[entity.ContentType][]string, len(entity.ContentTypes))
	for i, contentType := range entity.ContentTypes {
		out[contentType] = results[i]
	}
	return out
}

// GetPublicDocuments lists public documents. The native resource is
// tried first; if the backend lacks it, or the read fails, the result is
// transparently served by mapping document-type articles instead.
func (s *Service) GetPublicDocuments(ctx context.Context, filter repository.DocumentFilter) (pagination.Response[entity.PublicDocumentSummary], error) {
	start := time.Now()
	resp, err := s.source.PublicDocuments(ctx, filter)
	s.record("documents", start, err)
	if err == nil {
		return resp, nil
	}

	metrics.RecordLegacyFallback("documents")
	s.logger.Debug("public-documents resource unavailable, mapping legacy articles",
		slog.Any("error", err))

	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = slugEnumerationPerPage
	}
	legacy, err := s.GetArticles(ctx, repository.ArticleFilter{
		Type:     entity.TypeDocument,
		Search:   filter.Search,
		Category: filter.Category,
		Page:     filter.Page,
		PerPage:  perPage,
	})
	if err != nil {
		return pagination.Response[entity.PublicDocumentSummary]{}, err
	}

	mapped := pagination.Response[entity.PublicDocumentSummary]{
		Data:  make([]entity.PublicDocumentSummary, 0, len(legacy.Data)),
		Meta:  legacy.Meta,
		Links: legacy.Links,
	}
	for _, a := range legacy.Data {
		mapped.Data = append(mapped.Data, s.mapper.Summary(a))
	}
	return mapped, nil
}

// GetPublicDocument reads one public document, falling back to the
// legacy article mapping when the native resource is unavailable.
func (s *Service) GetPublicDocument(ctx context.Context, slug string) (entity.PublicDocumentDetailResponse, error) {
	start := time.Now()
	resp, err := s.source.PublicDocument(ctx, slug)
	s.record("document", start, err)
	if err == nil {
		return resp, nil
	}

	metrics.RecordLegacyFallback("document")
	legacy, err := s.GetArticle(ctx, slug)
	if err != nil {
		return entity.PublicDocumentDetailResponse{}, err
	}
	return s.mapper.Detail(legacy), nil
}

// AllPublicDocumentSlugs enumerates public document slugs. Never fails;
// the legacy path covers backends without the native resource.
func (s *Service) AllPublicDocumentSlugs(ctx context.Context) []string {
	resp, err := s.source.PublicDocuments(ctx, repository.DocumentFilter{
		PerPage: slugEnumerationPerPage,
	})
	if err != nil {
		return s.AllArticleSlugs(ctx, entity.TypeDocument)
	}

	slugs := make([]string, 0, len(resp.Data))
	for _, d := range resp.Data {
		slugs = append(slugs, d.Slug)
	}
	return slugs
}

// AttachmentDownloadURL builds the download URL for an attachment.
// Pure, no I/O; the shape depends on the backend mode.
func (s *Service) AttachmentDownloadURL(articleSlug string, attachmentID int64, originalFilename string) string {
	return s.source.AttachmentDownloadURL(articleSlug, attachmentID, originalFilename)
}
