package cache

// Collection-level cache tags. Per-item tags are derived with the
// Tag* helpers below.
const (
	TagArticles   = "articles"
	TagCategories = "categories"
	TagPages      = "pages"
	TagHomepage   = "homepage"
	TagDocuments  = "documents"
)

// TagArticle returns the cache tag for a single article.
func TagArticle(slug string) string { return "article-" + slug }

// TagPage returns the cache tag for a single page.
func TagPage(slug string) string { return "page-" + slug }

// TagDocument returns the cache tag for a single public document.
func TagDocument(slug string) string { return "document-" + slug }

// RevalidationTags returns the tags to drop when content of the given
// kind changes, and whether the kind is known. Articles and pages also
// invalidate the homepage, which aggregates both.
func RevalidationTags(kind, slug string) ([]string, bool) {
	switch kind {
	case "article":
		tags := []string{TagArticles, TagHomepage}
		if slug != "" {
			tags = append(tags, TagArticle(slug))
		}
		return tags, true
	case "page":
		tags := []string{TagPages, TagHomepage}
		if slug != "" {
			tags = append(tags, TagPage(slug))
		}
		return tags, true
	case "document":
		tags := []string{TagDocuments}
		if slug != "" {
			tags = append(tags, TagDocument(slug))
		}
		return tags, true
	default:
		return nil, false
	}
}
