package content

import (
	"strings"

	"usher-web/internal/domain/entity"
)

// migratedPrefix marks image URLs imported from the old site. The
// migration left both absolute and relative variants in the content.
const migratedPrefix = "migrated-images/"

// normalizeFeaturedImageURL rewrites migrated image paths to the /images
// tree the site actually serves. Other URLs pass through untouched.
func normalizeFeaturedImageURL(u *string) *string {
	if u == nil {
		return nil
	}
	switch {
	case strings.HasPrefix(*u, "/"+migratedPrefix):
		rewritten := "/images/" + (*u)[len("/"+migratedPrefix):]
		return &rewritten
	case strings.HasPrefix(*u, migratedPrefix):
		rewritten := "/images/" + (*u)[len(migratedPrefix):]
		return &rewritten
	}
	return u
}

func normalizeSummary(a entity.ArticleSummary) entity.ArticleSummary {
	a.FeaturedImageURL = normalizeFeaturedImageURL(a.FeaturedImageURL)
	return a
}

func normalizeSummaries(items []entity.ArticleSummary) []entity.ArticleSummary {
	for i := range items {
		items[i] = normalizeSummary(items[i])
	}
	return items
}
