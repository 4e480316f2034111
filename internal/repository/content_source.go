// Package repository defines the data access interfaces used by the
// usecase layer. Concrete implementations live in internal/infra/adapter.
package repository

import (
	"context"

	"usher-web/internal/common/pagination"
	"usher-web/internal/domain/entity"
)

// Mode identifies which backend a ContentSource reads from.
type Mode string

const (
	ModeAPI      Mode = "api"
	ModeSnapshot Mode = "snapshot"
)

// ArticleFilter narrows an article list read. The zero value lists
// everything the backend allows; the snapshot backend additionally
// requires Type to be set because snapshot files are partitioned by
// content type.
type ArticleFilter struct {
	Type     entity.ContentType
	Category string // category slug, any-match against the article's categories
	Tag      string // tag slug, any-match against the article's tags
	Search   string // case-insensitive match against title, excerpt and summary
	Page     int    // 1-based, 0 means backend default
	PerPage  int    // 0 means backend default
}

// DocumentFilter narrows a public-document list read.
type DocumentFilter struct {
	Search   string
	Category string
	Page     int
	PerPage  int
}

// ContentSource is the raw read interface over one content backend.
// All reads are independent, idempotent and at-most-one-attempt; the
// usecase layer adds normalization, legacy mapping and fallback on top.
type ContentSource interface {
	// Mode reports which backend this source reads from.
	Mode() Mode

	// Articles lists article summaries matching the filter.
	Articles(ctx context.Context, filter ArticleFilter) (pagination.Response[entity.ArticleSummary], error)

	// Article reads one article with its related summaries.
	Article(ctx context.Context, slug string) (entity.ArticleDetailResponse, error)

	// Page reads one static page.
	Page(ctx context.Context, slug string) (entity.Page, error)

	// Homepage reads the homepage aggregate.
	Homepage(ctx context.Context) (entity.HomepageData, error)

	// Categories reads the full category list.
	Categories(ctx context.Context) ([]entity.Category, error)

	// PublicDocuments lists public documents. Backends without the
	// public-documents resource return entity.ErrResourceUnavailable.
	PublicDocuments(ctx context.Context, filter DocumentFilter) (pagination.Response[entity.PublicDocumentSummary], error)

	// PublicDocument reads one public document with related summaries.
	// Backends without the resource return entity.ErrResourceUnavailable.
	PublicDocument(ctx context.Context, slug string) (entity.PublicDocumentDetailResponse, error)

	// AttachmentDownloadURL builds the download URL for an attachment.
	// Pure function, no I/O.
	AttachmentDownloadURL(articleSlug string, attachmentID int64, originalFilename string) string
}
