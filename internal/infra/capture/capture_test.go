package capture_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"usher-web/internal/domain/entity"
	"usher-web/internal/infra/adapter/source/snapshot"
	"usher-web/internal/infra/capture"
	"usher-web/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubCMS serves a two-article content graph with one attachment.
func stubCMS(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/homepage":
			_, _ = w.Write([]byte(`{"featured":[],"latest_blog":[],"latest_notice":[],"latest_document":[],"latest_related_news":[],"about":null,"categories":[]}`))
		case r.URL.Path == "/categories":
			_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"News","slug":"news","description":null}]}`))
		case strings.HasPrefix(r.URL.Path, "/pages/"):
			slug := strings.TrimPrefix(r.URL.Path, "/pages/")
			_, _ = w.Write([]byte(`{"data":{"id":1,"title":"` + slug + `","slug":"` + slug + `","content":"<p>x</p>","children":[]}}`))
		case r.URL.Path == "/articles" && r.URL.Query().Get("type") == "blog":
			_, _ = w.Write([]byte(`{"data":[{"id":1,"title":"Post","slug":"post","summary":null,"excerpt":"e","content_type":"blog","content_type_label":"部落格","featured_image_url":null,"featured_image_alt":null,"author_name":null,"is_pinned":false,"published_at":null,"categories":[],"tags":[]}],"meta":{"current_page":1,"last_page":1,"per_page":500,"total":1,"from":1,"to":1},"links":{"first":null,"last":null,"prev":null,"next":null}}`))
		case r.URL.Path == "/articles" && r.URL.Query().Get("type") == "document":
			_, _ = w.Write([]byte(`{"data":[{"id":2,"title":"Bylaws","slug":"bylaws","summary":null,"excerpt":"b","content_type":"document","content_type_label":"協會文件","featured_image_url":null,"featured_image_alt":null,"author_name":null,"is_pinned":false,"published_at":null,"categories":[],"tags":[]}],"meta":{"current_page":1,"last_page":1,"per_page":500,"total":1,"from":1,"to":1},"links":{"first":null,"last":null,"prev":null,"next":null}}`))
		case r.URL.Path == "/articles/post":
			_, _ = w.Write([]byte(`{"data":{"id":1,"title":"Post","slug":"post","summary":null,"excerpt":"e","content_type":"blog","content_type_label":"部落格","featured_image_url":null,"featured_image_alt":null,"author_name":null,"is_pinned":false,"published_at":null,"categories":[],"tags":[],"content":"<p>p</p>","meta_description":null,"meta_keywords":null,"view_count":0,"attachments":[]},"related":[]}`))
		case r.URL.Path == "/articles/bylaws":
			_, _ = w.Write([]byte(`{"data":{"id":2,"title":"Bylaws","slug":"bylaws","summary":null,"excerpt":"b","content_type":"document","content_type_label":"協會文件","featured_image_url":null,"featured_image_alt":null,"author_name":null,"is_pinned":false,"published_at":null,"categories":[],"tags":[],"content":"<p>b</p>","meta_description":null,"meta_keywords":null,"view_count":0,"attachments":[{"id":9,"original_filename":"協會章程.pdf","mime_type":"application/pdf","file_size":11,"description":null}]},"related":[]}`))
		case r.URL.Path == "/articles/bylaws/attachments/9/download":
			_, _ = w.Write([]byte("pdf-content"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestCapturer_Run(t *testing.T) {
	t.Parallel()

	srv := stubCMS(t)
	defer srv.Close()

	outDir := t.TempDir()
	attDir := t.TempDir()

	cpt := capture.New(capture.Config{
		APIBaseURL:     srv.URL,
		OutDir:         outDir,
		AttachmentsDir: attDir,
		Manifest: capture.Manifest{
			PageSlugs:    []string{"about"},
			ContentTypes: []entity.ContentType{entity.TypeBlog, entity.TypeDocument},
			PerPage:      500,
		},
	}, testLogger())

	stats, err := cpt.Run(context.Background())
	require.NoError(t, err)

	// homepage + categories + 1 page + 2 lists + 2 details
	assert.Equal(t, 7, stats.Files)
	assert.Equal(t, 1, stats.Attachments)

	for _, rel := range []string{
		"homepage.json",
		"categories.json",
		"pages/about.json",
		"articles/list-blog.json",
		"articles/list-document.json",
		"articles/by-slug/post.json",
		"articles/by-slug/bylaws.json",
	} {
		_, statErr := os.Stat(filepath.Join(outDir, filepath.FromSlash(rel)))
		assert.NoError(t, statErr, rel)
	}

	// Pretty-printed with a trailing newline.
	raw, err := os.ReadFile(filepath.Join(outDir, "categories.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "{\n  "), "expected two-space indentation")
	assert.True(t, strings.HasSuffix(string(raw), "\n"))

	// The attachment landed where the snapshot URL builder points.
	attachment, err := os.ReadFile(filepath.Join(attDir, "bylaws", "9-_.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "pdf-content", string(attachment))
}

// A capture output must round-trip through the snapshot backend.
func TestCapturer_RoundTripWithSnapshotSource(t *testing.T) {
	t.Parallel()

	srv := stubCMS(t)
	defer srv.Close()

	outDir := t.TempDir()
	cpt := capture.New(capture.Config{
		APIBaseURL:      srv.URL,
		OutDir:          outDir,
		SkipAttachments: true,
		Manifest: capture.Manifest{
			PageSlugs:    []string{"about"},
			ContentTypes: []entity.ContentType{entity.TypeBlog},
			PerPage:      500,
		},
	}, testLogger())

	_, err := cpt.Run(context.Background())
	require.NoError(t, err)

	src := snapshot.NewSource(outDir)
	ctx := context.Background()

	list, err := src.Articles(ctx, repository.ArticleFilter{Type: entity.TypeBlog})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "post", list.Data[0].Slug)

	detail, err := src.Article(ctx, "post")
	require.NoError(t, err)
	assert.Equal(t, "Post", detail.Data.Title)

	page, err := src.Page(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, "about", page.Slug)

	cats, err := src.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
}

func TestCapturer_AbortsOnFirstError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/homepage" {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	outDir := t.TempDir()
	cpt := capture.New(capture.Config{
		APIBaseURL: srv.URL,
		OutDir:     outDir,
		Manifest:   capture.DefaultManifest(),
	}, testLogger())

	_, err := cpt.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")

	// Homepage was written before the failure; nothing else was.
	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "homepage.json", entries[0].Name())
}
