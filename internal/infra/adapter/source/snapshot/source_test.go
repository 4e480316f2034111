package snapshot_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"usher-web/internal/domain/entity"
	"usher-web/internal/infra/adapter/source/snapshot"
	"usher-web/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSnapshot lays out a minimal snapshot tree in a temp dir.
func writeSnapshot(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return dir
}

const blogList = `{
  "data": [
    {
      "id": 1, "title": "Annual Report", "slug": "annual-report",
      "summary": "yearly summary", "excerpt": "The year in review",
      "content_type": "blog", "content_type_label": "部落格",
      "featured_image_url": null, "featured_image_alt": null,
      "author_name": null, "is_pinned": false, "published_at": "2025-01-01T00:00:00Z",
      "categories": [{"id": 10, "name": "News", "slug": "news", "description": null}],
      "tags": [{"name": "report", "slug": "report"}]
    },
    {
      "id": 2, "title": "Workshop Recap", "slug": "workshop-recap",
      "summary": null, "excerpt": "Notes from the workshop",
      "content_type": "blog", "content_type_label": "部落格",
      "featured_image_url": null, "featured_image_alt": null,
      "author_name": null, "is_pinned": false, "published_at": "2025-02-01T00:00:00Z",
      "categories": [{"id": 11, "name": "Events", "slug": "events", "description": null}],
      "tags": [{"name": "workshop", "slug": "workshop"}]
    },
    {
      "id": 3, "title": "Volunteer Drive", "slug": "volunteer-drive",
      "summary": "join us", "excerpt": "Looking for volunteers",
      "content_type": "blog", "content_type_label": "部落格",
      "featured_image_url": null, "featured_image_alt": null,
      "author_name": null, "is_pinned": true, "published_at": "2025-03-01T00:00:00Z",
      "categories": [{"id": 10, "name": "News", "slug": "news", "description": null}],
      "tags": []
    }
  ],
  "meta": {"current_page": 1, "last_page": 1, "per_page": 2, "total": 3, "from": 1, "to": 3},
  "links": {"first": null, "last": null, "prev": null, "next": null}
}`

func TestSource_Articles_TypeRequired(t *testing.T) {
	t.Parallel()

	src := snapshot.NewSource(t.TempDir())
	_, err := src.Articles(context.Background(), repository.ArticleFilter{})
	assert.True(t, errors.Is(err, entity.ErrContentTypeRequired))
}

func TestSource_Articles_ListsAndPaginates(t *testing.T) {
	t.Parallel()

	dir := writeSnapshot(t, map[string]string{"articles/list-blog.json": blogList})
	src := snapshot.NewSource(dir)

	t.Run("per_page from file meta", func(t *testing.T) {
		t.Parallel()
		resp, err := src.Articles(context.Background(), repository.ArticleFilter{Type: entity.TypeBlog})
		require.NoError(t, err)

		// File meta says per_page 2, so page 1 holds two of three items.
		assert.Len(t, resp.Data, 2)
		assert.Equal(t, 3, resp.Meta.Total)
		assert.Equal(t, 2, resp.Meta.LastPage)
		require.NotNil(t, resp.Meta.From)
		assert.Equal(t, 1, *resp.Meta.From)
	})

	t.Run("explicit per_page wins", func(t *testing.T) {
		t.Parallel()
		resp, err := src.Articles(context.Background(), repository.ArticleFilter{
			Type: entity.TypeBlog, PerPage: 10,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Data, 3)
		assert.Equal(t, 1, resp.Meta.LastPage)
	})

	t.Run("page beyond last yields empty data", func(t *testing.T) {
		t.Parallel()
		resp, err := src.Articles(context.Background(), repository.ArticleFilter{
			Type: entity.TypeBlog, Page: 9, PerPage: 2,
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Data)
		assert.Equal(t, 9, resp.Meta.CurrentPage)
		assert.Nil(t, resp.Meta.From)
		assert.Nil(t, resp.Meta.To)
	})
}

func TestSource_Articles_Filters(t *testing.T) {
	t.Parallel()

	dir := writeSnapshot(t, map[string]string{"articles/list-blog.json": blogList})
	src := snapshot.NewSource(dir)
	ctx := context.Background()

	t.Run("category any-match", func(t *testing.T) {
		t.Parallel()
		resp, err := src.Articles(ctx, repository.ArticleFilter{Type: entity.TypeBlog, Category: "news"})
		require.NoError(t, err)
		require.Len(t, resp.Data, 2)
		assert.Equal(t, "annual-report", resp.Data[0].Slug)
		assert.Equal(t, "volunteer-drive", resp.Data[1].Slug)
	})

	t.Run("tag any-match", func(t *testing.T) {
		t.Parallel()
		resp, err := src.Articles(ctx, repository.ArticleFilter{Type: entity.TypeBlog, Tag: "workshop"})
		require.NoError(t, err)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "workshop-recap", resp.Data[0].Slug)
	})

	t.Run("search is case-insensitive over title excerpt summary", func(t *testing.T) {
		t.Parallel()

		byTitle, err := src.Articles(ctx, repository.ArticleFilter{Type: entity.TypeBlog, Search: "ANNUAL"})
		require.NoError(t, err)
		require.Len(t, byTitle.Data, 1)

		bySummary, err := src.Articles(ctx, repository.ArticleFilter{Type: entity.TypeBlog, Search: "join us"})
		require.NoError(t, err)
		require.Len(t, bySummary.Data, 1)
		assert.Equal(t, "volunteer-drive", bySummary.Data[0].Slug)

		none, err := src.Articles(ctx, repository.ArticleFilter{Type: entity.TypeBlog, Search: "nonexistent"})
		require.NoError(t, err)
		assert.Empty(t, none.Data)
		assert.Equal(t, 1, none.Meta.LastPage, "last_page stays at 1 even with zero matches")
	})
}

func TestSource_Articles_MissingListFile(t *testing.T) {
	t.Parallel()

	src := snapshot.NewSource(t.TempDir())
	_, err := src.Articles(context.Background(), repository.ArticleFilter{Type: entity.TypeNotice})
	assert.True(t, errors.Is(err, entity.ErrNotFound))
}

func TestSource_Article(t *testing.T) {
	t.Parallel()

	detail := `{
  "data": {
    "id": 1, "title": "Annual Report", "slug": "annual-report",
    "summary": null, "excerpt": "The year in review",
    "content_type": "blog", "content_type_label": "部落格",
    "featured_image_url": null, "featured_image_alt": null,
    "author_name": null, "is_pinned": false, "published_at": null,
    "categories": [], "tags": [],
    "content": "<p>body</p>", "meta_description": null, "meta_keywords": null,
    "view_count": 12,
    "attachments": [{"id": 5, "original_filename": "report.pdf", "mime_type": "application/pdf", "file_size": 1024, "description": null}]
  },
  "related": []
}`
	dir := writeSnapshot(t, map[string]string{"articles/by-slug/annual-report.json": detail})
	src := snapshot.NewSource(dir)

	resp, err := src.Article(context.Background(), "annual-report")
	require.NoError(t, err)
	assert.Equal(t, "Annual Report", resp.Data.Title)
	require.Len(t, resp.Data.Attachments, 1)
	assert.Equal(t, int64(5), resp.Data.Attachments[0].ID)

	_, err = src.Article(context.Background(), "missing")
	assert.True(t, errors.Is(err, entity.ErrNotFound))
}

func TestSource_PageHomepageCategories(t *testing.T) {
	t.Parallel()

	dir := writeSnapshot(t, map[string]string{
		"pages/about.json": `{"data":{"id":1,"title":"About","slug":"about","content":"<p>hi</p>","children":[]}}`,
		"homepage.json":    `{"featured":[],"latest_blog":[],"latest_notice":[],"latest_document":[],"latest_related_news":[],"about":null,"categories":[{"id":10,"name":"News","slug":"news","description":null}]}`,
		"categories.json":  `{"data":[{"id":10,"name":"News","slug":"news","description":null}]}`,
	})
	src := snapshot.NewSource(dir)
	ctx := context.Background()

	page, err := src.Page(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, "About", page.Title)

	_, err = src.Page(ctx, "missing")
	assert.True(t, errors.Is(err, entity.ErrNotFound))

	home, err := src.Homepage(ctx)
	require.NoError(t, err)
	require.Len(t, home.Categories, 1)
	assert.Equal(t, "news", home.Categories[0].Slug)

	cats, err := src.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "News", cats[0].Name)
}

func TestSource_PublicDocumentsUnavailable(t *testing.T) {
	t.Parallel()

	src := snapshot.NewSource(t.TempDir())
	ctx := context.Background()

	_, err := src.PublicDocuments(ctx, repository.DocumentFilter{})
	assert.True(t, errors.Is(err, entity.ErrResourceUnavailable))

	_, err = src.PublicDocument(ctx, "bylaws")
	assert.True(t, errors.Is(err, entity.ErrResourceUnavailable))
}

func TestSource_AttachmentDownloadURL(t *testing.T) {
	t.Parallel()

	src := snapshot.NewSource(t.TempDir())

	tests := []struct {
		name     string
		slug     string
		id       int64
		filename string
		want     string
	}{
		{
			name:     "safe filename kept",
			slug:     "bylaws",
			id:       5,
			filename: "report.pdf",
			want:     "/attachments/bylaws/5-report.pdf",
		},
		{
			name:     "unsafe runs collapse to one underscore",
			slug:     "bylaws",
			id:       7,
			filename: "協會章程.pdf",
			want:     "/attachments/bylaws/7-_.pdf",
		},
		{
			name:     "empty filename defaults",
			slug:     "bylaws",
			id:       9,
			filename: "",
			want:     "/attachments/bylaws/9-attachment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, src.AttachmentDownloadURL(tt.slug, tt.id, tt.filename))
		})
	}
}

func TestSource_Mode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, repository.ModeSnapshot, snapshot.NewSource(t.TempDir()).Mode())
}
