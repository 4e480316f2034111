package content

import (
	"fmt"
	"strings"

	"usher-web/internal/domain/entity"
)

// legacyMapper bridges the older articles-of-type-document model onto
// the public-documents model, so document callers work unchanged against
// backends that predate the native resource.
//
// The mapping is pure and idempotent. It relies on two conventions of
// the editorial process rather than verifying them: the legacy model has
// no access control, so every mapped document is active and public, and
// attachments are listed newest first, so the first one becomes the
// current version.
type legacyMapper struct {
	apiBaseURL  string
	downloadURL func(articleSlug string, attachmentID int64, originalFilename string) string
}

// Summary maps one article summary to a public-document summary.
// The slug doubles as the synthesized public UUID, and only the first
// category survives the mapping.
func (m legacyMapper) Summary(a entity.ArticleSummary) entity.PublicDocumentSummary {
	text := a.Excerpt
	if a.Summary != nil {
		text = *a.Summary
	}

	var category *entity.PublicDocumentCategory
	var documentType *string
	if len(a.Categories) > 0 {
		first := a.Categories[0]
		category = &entity.PublicDocumentCategory{
			ID:   first.ID,
			Name: first.Name,
			Slug: first.Slug,
		}
		documentType = &first.Name
	}

	detailURL := "/document/" + a.Slug

	return entity.PublicDocumentSummary{
		ID:               a.ID,
		Slug:             a.Slug,
		PublicUUID:       a.Slug,
		Title:            a.Title,
		Summary:          &text,
		Description:      &text,
		Status:           entity.DocumentStatusActive,
		StatusLabel:      entity.DocumentStatusActiveLabel,
		AccessLevel:      entity.DocumentAccessPublic,
		AccessLevelLabel: entity.DocumentAccessPublicLabel,
		PublishedAt:      a.PublishedAt,
		UpdatedAt:        a.PublishedAt,
		VersionCount:     1,
		Category:         category,
		Links: entity.PublicDocumentLinks{
			APIURL:    m.apiBaseURL + "/articles/" + a.Slug,
			DetailURL: detailURL,
			WebURL:    detailURL,
		},
		Metadata: entity.PublicDocumentMetadata{
			DocumentType: documentType,
		},
	}
}

// Version maps one attachment to a synthesized document version.
// Numbering is positional: attachment i becomes version "{i+1}.0", and
// index 0 is the current version. The size is always rendered in KB with
// one decimal, matching what the legacy document pages showed.
func (m legacyMapper) Version(articleSlug string, att entity.Attachment, index int) entity.PublicDocumentVersion {
	extension := ""
	if i := strings.LastIndex(att.OriginalFilename, "."); i >= 0 {
		extension = strings.ToLower(att.OriginalFilename[i+1:])
	}

	return entity.PublicDocumentVersion{
		ID:               att.ID,
		VersionNumber:    fmt.Sprintf("%d.0", index+1),
		VersionNotes:     att.Description,
		IsCurrent:        index == 0,
		OriginalFilename: att.OriginalFilename,
		MimeType:         att.MimeType,
		FileExtension:    extension,
		FileSize:         att.FileSize,
		FileSizeHuman:    fmt.Sprintf("%.1f KB", float64(att.FileSize)/1024),
		DownloadURL:      m.downloadURL(articleSlug, att.ID, att.OriginalFilename),
	}
}

// Detail maps a full article read to a public-document detail response.
// N attachments become N versions in order; a document without
// attachments still reports a version count of 1.
func (m legacyMapper) Detail(resp entity.ArticleDetailResponse) entity.PublicDocumentDetailResponse {
	article := resp.Data

	versions := make([]entity.PublicDocumentVersion, 0, len(article.Attachments))
	for i, att := range article.Attachments {
		versions = append(versions, m.Version(article.Slug, att, i))
	}

	doc := entity.PublicDocument{
		PublicDocumentSummary: m.Summary(article.ArticleSummary),
		Versions:              versions,
	}
	if len(versions) > 0 {
		doc.CurrentVersion = &versions[0]
		doc.VersionCount = len(versions)
		doc.Links.DownloadURL = &versions[0].DownloadURL
	}

	related := make([]entity.PublicDocumentSummary, 0, len(resp.Related))
	for _, r := range resp.Related {
		related = append(related, m.Summary(r))
	}

	return entity.PublicDocumentDetailResponse{Data: doc, Related: related}
}
