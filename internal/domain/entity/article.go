// Package entity defines the content data contracts shared by both
// backends. Field names and JSON tags follow the CMS wire format, so the
// same structs decode live API responses and snapshot files.
package entity

// ContentType identifies one of the four article content types.
// A slug is unique within a content type, and the type never changes
// once an article is published.
type ContentType string

const (
	TypeBlog        ContentType = "blog"
	TypeNotice      ContentType = "notice"
	TypeDocument    ContentType = "document"
	TypeRelatedNews ContentType = "related_news"
)

// ContentTypes lists all content types in display order.
var ContentTypes = []ContentType{TypeBlog, TypeNotice, TypeDocument, TypeRelatedNews}

// ContentTypeLabels maps each content type to its display label.
var ContentTypeLabels = map[ContentType]string{
	TypeBlog:        "部落格",
	TypeNotice:      "事務公告",
	TypeDocument:    "協會文件",
	TypeRelatedNews: "相關報導",
}

// ContentTypePaths maps each content type to its site URL prefix.
var ContentTypePaths = map[ContentType]string{
	TypeBlog:        "/blog",
	TypeNotice:      "/notice",
	TypeDocument:    "/document",
	TypeRelatedNews: "/related-news",
}

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	_, ok := ContentTypeLabels[t]
	return ok
}

// Category is a named label attached many-to-many to articles.
type Category struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	Description   *string `json:"description"`
	ArticlesCount int     `json:"articles_count,omitempty"`
}

// Tag is a lightweight sluggable label. Unlike categories the CMS does
// not always assign tags a numeric ID.
type Tag struct {
	ID   *int64 `json:"id,omitempty"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Attachment is a file owned by exactly one article.
type Attachment struct {
	ID               int64   `json:"id"`
	OriginalFilename string  `json:"original_filename"`
	MimeType         string  `json:"mime_type"`
	FileSize         int64   `json:"file_size"`
	Description      *string `json:"description"`
}

// ArticleSummary is the list-view projection of an article.
type ArticleSummary struct {
	ID               int64       `json:"id"`
	Title            string      `json:"title"`
	Slug             string      `json:"slug"`
	Summary          *string     `json:"summary"`
	Excerpt          string      `json:"excerpt"`
	ContentType      ContentType `json:"content_type"`
	ContentTypeLabel string      `json:"content_type_label"`
	FeaturedImageURL *string     `json:"featured_image_url"`
	FeaturedImageAlt *string     `json:"featured_image_alt"`
	AuthorName       *string     `json:"author_name"`
	IsPinned         bool        `json:"is_pinned"`
	PublishedAt      *string     `json:"published_at"`
	Categories       []Category  `json:"categories"`
	Tags             []Tag       `json:"tags"`
}

// Article is the detail-view projection, extending the summary with the
// full body and attachments.
type Article struct {
	ArticleSummary
	Content         string       `json:"content"`
	MetaDescription *string      `json:"meta_description"`
	MetaKeywords    *string      `json:"meta_keywords"`
	ViewCount       int64        `json:"view_count"`
	Attachments     []Attachment `json:"attachments"`
}

// ArticleDetailResponse is the wire shape of a single-article read.
type ArticleDetailResponse struct {
	Data    Article          `json:"data"`
	Related []ArticleSummary `json:"related"`
}
