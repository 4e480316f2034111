// Package capture mirrors the live CMS content graph to an on-disk
// snapshot the snapshot backend can serve. The walk is strictly
// sequential with no resumability: any fetch failure aborts the run, so
// a finished run is a complete snapshot.
package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"usher-web/internal/common/pagination"
	"usher-web/internal/domain/entity"
	"usher-web/internal/utils/text"
)

// Config parameterizes one capture run.
type Config struct {
	// APIBaseURL is the live CMS API root to walk.
	APIBaseURL string
	// OutDir is the snapshot directory to write JSON files into.
	OutDir string
	// AttachmentsDir receives attachment binaries, laid out as
	// {slug}/{id}-{sanitizedFilename}.
	AttachmentsDir string
	// SkipAttachments skips the binary downloads.
	SkipAttachments bool
	// Manifest declares the pages and content types to walk.
	Manifest Manifest
}

// Stats summarizes what one run wrote.
type Stats struct {
	Files       int
	Attachments int
}

// Capturer walks the CMS and writes the snapshot tree.
type Capturer struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
	stats  Stats
}

// New creates a capturer. The HTTP timeout is generous because
// attachment downloads can be large.
func New(cfg Config, logger *slog.Logger) *Capturer {
	return &Capturer{
		cfg:    cfg,
		http:   &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

// Run walks homepage, categories, static pages, then each content
// type's list, details and attachments. Returns the stats of a complete
// run, or the first error encountered.
func (c *Capturer) Run(ctx context.Context) (Stats, error) {
	c.stats = Stats{}

	c.logger.Info("capture started",
		slog.String("api", c.cfg.APIBaseURL),
		slog.String("out", c.cfg.OutDir))

	if err := c.captureResource(ctx, "/homepage", "homepage.json"); err != nil {
		return c.stats, err
	}
	if err := c.captureResource(ctx, "/categories", "categories.json"); err != nil {
		return c.stats, err
	}

	for _, slug := range c.cfg.Manifest.PageSlugs {
		if err := c.captureResource(ctx, "/pages/"+slug, "pages/"+slug+".json"); err != nil {
			return c.stats, err
		}
	}

	for _, contentType := range c.cfg.Manifest.ContentTypes {
		if err := c.captureContentType(ctx, contentType); err != nil {
			return c.stats, err
		}
	}

	c.logger.Info("capture finished",
		slog.Int("files", c.stats.Files),
		slog.Int("attachments", c.stats.Attachments))
	return c.stats, nil
}

// captureContentType mirrors one content type: the list file, every
// article detail, and every attachment binary.
func (c *Capturer) captureContentType(ctx context.Context, contentType entity.ContentType) error {
	listPath := fmt.Sprintf("/articles?type=%s&per_page=%d", contentType, c.cfg.Manifest.PerPage)
	raw, err := c.fetch(ctx, listPath)
	if err != nil {
		return err
	}
	if err := c.writeJSON("articles/list-"+string(contentType)+".json", raw); err != nil {
		return err
	}

	var list pagination.Response[entity.ArticleSummary]
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("decode %s list: %w", contentType, err)
	}

	c.logger.Info("capturing articles",
		slog.String("type", string(contentType)),
		slog.Int("count", len(list.Data)))

	for _, summary := range list.Data {
		detailRaw, err := c.fetch(ctx, "/articles/"+summary.Slug)
		if err != nil {
			return err
		}
		if err := c.writeJSON("articles/by-slug/"+summary.Slug+".json", detailRaw); err != nil {
			return err
		}

		if c.cfg.SkipAttachments {
			continue
		}

		var detail entity.ArticleDetailResponse
		if err := json.Unmarshal(detailRaw, &detail); err != nil {
			return fmt.Errorf("decode article %s: %w", summary.Slug, err)
		}
		for _, att := range detail.Data.Attachments {
			if err := c.downloadAttachment(ctx, summary.Slug, att); err != nil {
				return err
			}
		}
	}
	return nil
}

// captureResource fetches one API path and writes it verbatim.
func (c *Capturer) captureResource(ctx context.Context, apiPath, relPath string) error {
	raw, err := c.fetch(ctx, apiPath)
	if err != nil {
		return err
	}
	return c.writeJSON(relPath, raw)
}

// fetch performs one GET against the CMS and returns the body.
func (c *Capturer) fetch(ctx context.Context, apiPath string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIBaseURL+apiPath, nil)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", apiPath, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", apiPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s: unexpected status %d", apiPath, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: read body: %w", apiPath, err)
	}
	return body, nil
}

// writeJSON pretty-prints one captured response under the snapshot
// directory. Two-space indentation and a trailing newline keep the
// files diffable between capture runs.
func (c *Capturer) writeJSON(relPath string, raw []byte) error {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return fmt.Errorf("format %s: %w", relPath, err)
	}
	pretty.WriteByte('\n')

	full := filepath.Join(c.cfg.OutDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("write %s: %w", relPath, err)
	}
	if err := os.WriteFile(full, pretty.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", relPath, err)
	}

	c.stats.Files++
	c.logger.Debug("snapshot file written", slog.String("path", relPath))
	return nil
}

// downloadAttachment streams one attachment binary to the attachments
// directory, named so the snapshot backend's URL builder finds it.
func (c *Capturer) downloadAttachment(ctx context.Context, articleSlug string, att entity.Attachment) error {
	apiPath := "/articles/" + articleSlug + "/attachments/" + strconv.FormatInt(att.ID, 10) + "/download"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIBaseURL+apiPath, nil)
	if err != nil {
		return fmt.Errorf("GET %s: %w", apiPath, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", apiPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s: unexpected status %d", apiPath, resp.StatusCode)
	}

	filename := att.OriginalFilename
	if filename == "" {
		filename = "attachment"
	}
	name := strconv.FormatInt(att.ID, 10) + "-" + text.SanitizeFilename(filename)
	full := filepath.Join(c.cfg.AttachmentsDir, articleSlug, name)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("write attachment %s: %w", name, err)
	}
	out, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("write attachment %s: %w", name, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write attachment %s: %w", name, err)
	}

	c.stats.Attachments++
	c.logger.Debug("attachment downloaded",
		slog.String("article", articleSlug),
		slog.String("file", name))
	return nil
}
