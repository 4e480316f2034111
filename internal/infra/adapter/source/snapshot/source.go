// Package snapshot implements the content backend over an on-disk JSON
// snapshot captured from the CMS. The snapshot has no query capability,
// so list filtering and pagination run in process over the full list
// files.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"usher-web/internal/common/pagination"
	"usher-web/internal/domain/entity"
	"usher-web/internal/repository"
	"usher-web/internal/utils/text"
)

// defaultPerPage applies when neither the filter nor the list file's
// captured meta carries a page size.
const defaultPerPage = 100

// Source reads content from a snapshot directory tree.
type Source struct {
	dir string
}

// NewSource creates a snapshot content source rooted at dir.
func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// Mode reports the snapshot backend.
func (s *Source) Mode() repository.Mode {
	return repository.ModeSnapshot
}

// read loads one snapshot file and decodes it into v. A missing file
// maps to entity.ErrNotFound.
func (s *Source) read(relPath string, v any) error {
	raw, err := os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(relPath)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read snapshot %s: %w", relPath, entity.ErrNotFound)
		}
		return fmt.Errorf("read snapshot %s: %w", relPath, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", relPath, err)
	}
	return nil
}

// matchesFilter applies the category, tag and search narrowing that the
// live API would have done server-side.
func matchesFilter(a entity.ArticleSummary, filter repository.ArticleFilter) bool {
	if filter.Category != "" {
		found := false
		for _, c := range a.Categories {
			if c.Slug == filter.Category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if filter.Tag != "" {
		found := false
		for _, t := range a.Tags {
			if t.Slug == filter.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if filter.Search != "" {
		summary := ""
		if a.Summary != nil {
			summary = *a.Summary
		}
		haystack := strings.ToLower(a.Title + " " + a.Excerpt + " " + summary)
		if !strings.Contains(haystack, strings.ToLower(filter.Search)) {
			return false
		}
	}

	return true
}

// Articles lists article summaries from the per-type list file. The
// snapshot is partitioned by content type, so Type is mandatory.
func (s *Source) Articles(ctx context.Context, filter repository.ArticleFilter) (pagination.Response[entity.ArticleSummary], error) {
	if filter.Type == "" {
		return pagination.Response[entity.ArticleSummary]{},
			fmt.Errorf("list articles: %w", entity.ErrContentTypeRequired)
	}

	var list pagination.Response[entity.ArticleSummary]
	if err := s.read("articles/list-"+string(filter.Type)+".json", &list); err != nil {
		return pagination.Response[entity.ArticleSummary]{}, err
	}

	filtered := make([]entity.ArticleSummary, 0, len(list.Data))
	for _, a := range list.Data {
		if matchesFilter(a, filter) {
			filtered = append(filtered, a)
		}
	}

	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = list.Meta.PerPage
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	return pagination.Paginate(filtered, page, perPage), nil
}

// Article reads one article detail file.
func (s *Source) Article(ctx context.Context, slug string) (entity.ArticleDetailResponse, error) {
	var resp entity.ArticleDetailResponse
	err := s.read("articles/by-slug/"+slug+".json", &resp)
	return resp, err
}

// Page reads one static page file.
func (s *Source) Page(ctx context.Context, slug string) (entity.Page, error) {
	var resp struct {
		Data entity.Page `json:"data"`
	}
	err := s.read("pages/"+slug+".json", &resp)
	return resp.Data, err
}

// Homepage reads the homepage aggregate, stored without a data envelope.
func (s *Source) Homepage(ctx context.Context) (entity.HomepageData, error) {
	var resp entity.HomepageData
	err := s.read("homepage.json", &resp)
	return resp, err
}

// Categories reads the category list file.
func (s *Source) Categories(ctx context.Context) ([]entity.Category, error) {
	var resp struct {
		Data []entity.Category `json:"data"`
	}
	err := s.read("categories.json", &resp)
	return resp.Data, err
}

// PublicDocuments is not part of the snapshot contract; the usecase
// layer serves documents through the legacy article mapping instead.
func (s *Source) PublicDocuments(ctx context.Context, filter repository.DocumentFilter) (pagination.Response[entity.PublicDocumentSummary], error) {
	return pagination.Response[entity.PublicDocumentSummary]{},
		fmt.Errorf("public documents: %w", entity.ErrResourceUnavailable)
}

// PublicDocument is not part of the snapshot contract.
func (s *Source) PublicDocument(ctx context.Context, slug string) (entity.PublicDocumentDetailResponse, error) {
	return entity.PublicDocumentDetailResponse{},
		fmt.Errorf("public document: %w", entity.ErrResourceUnavailable)
}

// AttachmentDownloadURL builds the static path the capture utility wrote
// the attachment binary to. The filename is sanitized the same way the
// capture does, so the URL matches what is on disk.
func (s *Source) AttachmentDownloadURL(articleSlug string, attachmentID int64, originalFilename string) string {
	if originalFilename == "" {
		originalFilename = "attachment"
	}
	return "/attachments/" + url.PathEscape(articleSlug) + "/" +
		strconv.FormatInt(attachmentID, 10) + "-" + text.SanitizeFilename(originalFilename)
}
