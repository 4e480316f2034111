package entity

// Page is a static CMS page. Pages form a tree: each page carries an
// ordered list of child pages, each slug-addressable on its own.
type Page struct {
	ID              int64          `json:"id"`
	Title           string         `json:"title"`
	Slug            string         `json:"slug"`
	Content         string         `json:"content"`
	Template        *string        `json:"template"`
	CustomFields    map[string]any `json:"custom_fields"`
	MetaDescription *string        `json:"meta_description"`
	MetaKeywords    *string        `json:"meta_keywords"`
	PublishedAt     *string        `json:"published_at"`
	Children        []Page         `json:"children"`
}

// HomepageData is the aggregate assembled by the CMS for the homepage.
// It is never stored on this side; both backends return it as-is.
type HomepageData struct {
	Featured          []ArticleSummary `json:"featured"`
	LatestBlog        []ArticleSummary `json:"latest_blog"`
	LatestNotice      []ArticleSummary `json:"latest_notice"`
	LatestDocument    []ArticleSummary `json:"latest_document"`
	LatestRelatedNews []ArticleSummary `json:"latest_related_news"`
	About             *Page            `json:"about"`
	Categories        []Category       `json:"categories"`
}
