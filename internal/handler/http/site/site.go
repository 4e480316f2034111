// Package site renders the public website from the content service:
// homepage, per-type article lists and details, static pages, the
// public-document views, and the sitemap.
package site

import (
	"bytes"
	"embed"
	"encoding/xml"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"usher-web/internal/common/pagination"
	"usher-web/internal/domain/entity"
	"usher-web/internal/handler/http/requestid"
	"usher-web/internal/repository"
	"usher-web/internal/usecase/content"
	"usher-web/internal/utils/text"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// siteName is the association's full name, used in page titles.
const siteName = "台灣尤塞氏症暨視聽弱協會"

// staticPageSlugs are the fixed CMS pages linked from the chrome and
// listed in the sitemap. The capture utility mirrors the same set.
var staticPageSlugs = []string{"about", "contact", "structure", "message", "logo-represent"}

// maxPerPage caps the per_page query parameter on list views.
const maxPerPage = 100

// metaDescriptionRunes bounds generated meta descriptions.
const metaDescriptionRunes = 160

// Config parameterizes the site handler.
type Config struct {
	// AttachmentsDir, when set, is served under /attachments. Only the
	// snapshot mode needs it; in live mode downloads go to the CMS.
	AttachmentsDir string
	// SiteBaseURL is the absolute base for sitemap entries,
	// e.g. https://member.usher.org.tw.
	SiteBaseURL string
}

// Handler serves the HTML site.
type Handler struct {
	svc    *content.Service
	cfg    Config
	tmpl   *template.Template
	logger *slog.Logger
}

// NewHandler parses the embedded templates and creates the site handler.
func NewHandler(svc *content.Service, cfg Config, logger *slog.Logger) (*Handler, error) {
	funcs := template.FuncMap{
		"safe":          func(s string) template.HTML { return template.HTML(s) },
		"typePath":      func(t entity.ContentType) string { return entity.ContentTypePaths[t] },
		"typeLabel":     func(t entity.ContentType) string { return entity.ContentTypeLabels[t] },
		"humanSize":     entity.HumanSize,
		"attachmentURL": svc.AttachmentDownloadURL,
		"add":           func(a, b int) int { return a + b },
		"sub":           func(a, b int) int { return a - b },
	}

	tmpl, err := template.New("site").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	return &Handler{svc: svc, cfg: cfg, tmpl: tmpl, logger: logger}, nil
}

// Register registers all site routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.home)

	for _, contentType := range entity.ContentTypes {
		if contentType == entity.TypeDocument {
			// Document pages render the public-document model instead.
			continue
		}
		path := entity.ContentTypePaths[contentType]
		mux.HandleFunc("GET "+path, h.articleList(contentType))
		mux.HandleFunc("GET "+path+"/{slug}", h.articleDetail(contentType))
	}

	mux.HandleFunc("GET /document", h.documentList)
	mux.HandleFunc("GET /document/{slug}", h.documentDetail)
	mux.HandleFunc("GET /pages/{slug}", h.page)
	mux.HandleFunc("GET /sitemap.xml", h.sitemap)

	mux.Handle("GET /static/", http.FileServerFS(staticFS))

	if h.cfg.AttachmentsDir != "" {
		mux.Handle("GET /attachments/",
			http.StripPrefix("/attachments/", http.FileServer(http.Dir(h.cfg.AttachmentsDir))))
	}
}

// baseView carries the fields every template needs.
type baseView struct {
	Title           string
	MetaDescription string
	Year            int
}

func newBaseView(title, metaDescription string) baseView {
	if title == "" {
		title = siteName
	} else {
		title = title + " | " + siteName
	}
	return baseView{
		Title:           title,
		MetaDescription: metaDescription,
		Year:            time.Now().Year(),
	}
}

// render executes a named template into a buffer first, so a template
// failure yields a clean 500 instead of a half-written page.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("template render failed",
			slog.String("request_id", requestid.FromContext(r.Context())),
			slog.String("template", name),
			slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type errorView struct {
	baseView
	Status  int
	Message string
}

// renderError maps a read failure to an HTML error page.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "發生錯誤，請稍後再試。"
	switch {
	case errors.Is(err, entity.ErrNotFound):
		status = http.StatusNotFound
		message = "找不到這個頁面。"
	case errors.Is(err, entity.ErrContentTypeRequired):
		status = http.StatusBadRequest
		message = "缺少必要的查詢條件。"
	default:
		h.logger.Error("content read failed",
			slog.String("request_id", requestid.FromContext(r.Context())),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}

	h.render(w, r, status, "error", errorView{
		baseView: newBaseView(http.StatusText(status), ""),
		Status:   status,
		Message:  message,
	})
}

// badRequest renders a 400 page for malformed query parameters.
func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusBadRequest, "error", errorView{
		baseView: newBaseView(http.StatusText(http.StatusBadRequest), ""),
		Status:   http.StatusBadRequest,
		Message:  "查詢參數格式不正確。",
	})
}

type homeSection struct {
	Label string
	Path  string
	Items []entity.ArticleSummary
}

type homeView struct {
	baseView
	Home     entity.HomepageData
	Sections []homeSection
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	home, err := h.svc.GetHomepage(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	sections := []homeSection{
		{Label: entity.ContentTypeLabels[entity.TypeBlog], Path: entity.ContentTypePaths[entity.TypeBlog], Items: home.LatestBlog},
		{Label: entity.ContentTypeLabels[entity.TypeNotice], Path: entity.ContentTypePaths[entity.TypeNotice], Items: home.LatestNotice},
		{Label: entity.ContentTypeLabels[entity.TypeDocument], Path: entity.ContentTypePaths[entity.TypeDocument], Items: home.LatestDocument},
		{Label: entity.ContentTypeLabels[entity.TypeRelatedNews], Path: entity.ContentTypePaths[entity.TypeRelatedNews], Items: home.LatestRelatedNews},
	}

	h.render(w, r, http.StatusOK, "home", homeView{
		baseView: newBaseView("", ""),
		Home:     home,
		Sections: sections,
	})
}

type articleListView struct {
	baseView
	Heading string
	Query   string
	List    pagination.Response[entity.ArticleSummary]
}

func (h *Handler) articleList(contentType entity.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pagination.ParseQueryParams(r, maxPerPage)
		if err != nil {
			h.badRequest(w, r)
			return
		}

		query := r.URL.Query().Get("q")
		list, err := h.svc.GetArticles(r.Context(), repository.ArticleFilter{
			Type:     contentType,
			Category: r.URL.Query().Get("category"),
			Tag:      r.URL.Query().Get("tag"),
			Search:   query,
			Page:     params.Page,
			PerPage:  params.PerPage,
		})
		if err != nil {
			h.renderError(w, r, err)
			return
		}

		label := entity.ContentTypeLabels[contentType]
		h.render(w, r, http.StatusOK, "article_list", articleListView{
			baseView: newBaseView(label, ""),
			Heading:  label,
			Query:    query,
			List:     list,
		})
	}
}

type articleDetailView struct {
	baseView
	Article entity.Article
	Related []entity.ArticleSummary
}

func (h *Handler) articleDetail(contentType entity.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.svc.GetArticle(r.Context(), r.PathValue("slug"))
		if err != nil {
			h.renderError(w, r, err)
			return
		}

		meta := text.Excerpt(resp.Data.Content, metaDescriptionRunes)
		if resp.Data.MetaDescription != nil && *resp.Data.MetaDescription != "" {
			meta = *resp.Data.MetaDescription
		}

		h.render(w, r, http.StatusOK, "article_detail", articleDetailView{
			baseView: newBaseView(resp.Data.Title, meta),
			Article:  resp.Data,
			Related:  resp.Related,
		})
	}
}

type pageView struct {
	baseView
	Page entity.Page
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.GetPage(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	meta := text.Excerpt(page.Content, metaDescriptionRunes)
	if page.MetaDescription != nil && *page.MetaDescription != "" {
		meta = *page.MetaDescription
	}

	h.render(w, r, http.StatusOK, "page", pageView{
		baseView: newBaseView(page.Title, meta),
		Page:     page,
	})
}

type documentListView struct {
	baseView
	Query string
	List  pagination.Response[entity.PublicDocumentSummary]
}

func (h *Handler) documentList(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, maxPerPage)
	if err != nil {
		h.badRequest(w, r)
		return
	}

	query := r.URL.Query().Get("q")
	list, err := h.svc.GetPublicDocuments(r.Context(), repository.DocumentFilter{
		Search:   query,
		Category: r.URL.Query().Get("category"),
		Page:     params.Page,
		PerPage:  params.PerPage,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "document_list", documentListView{
		baseView: newBaseView(entity.ContentTypeLabels[entity.TypeDocument], ""),
		Query:    query,
		List:     list,
	})
}

type documentDetailView struct {
	baseView
	Document entity.PublicDocument
	Related  []entity.PublicDocumentSummary
}

func (h *Handler) documentDetail(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetPublicDocument(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	meta := ""
	if resp.Data.Description != nil {
		meta = text.Excerpt(*resp.Data.Description, metaDescriptionRunes)
	}

	h.render(w, r, http.StatusOK, "document_detail", documentDetailView{
		baseView: newBaseView(resp.Data.Title, meta),
		Document: resp.Data,
		Related:  resp.Related,
	})
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

// sitemap enumerates every reachable URL. Slug enumeration soft-fails
// per content type, so a backend hiccup shrinks the sitemap instead of
// breaking it.
func (h *Handler) sitemap(w http.ResponseWriter, r *http.Request) {
	set := sitemapURLSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	add := func(path string) {
		set.URLs = append(set.URLs, sitemapURL{Loc: h.cfg.SiteBaseURL + path})
	}

	add("/")
	for _, slug := range staticPageSlugs {
		add("/pages/" + slug)
	}

	allSlugs := h.svc.AllSlugs(r.Context())
	for _, contentType := range entity.ContentTypes {
		path := entity.ContentTypePaths[contentType]
		add(path)
		if contentType == entity.TypeDocument {
			// Document detail URLs come from the public-document model.
			continue
		}
		for _, slug := range allSlugs[contentType] {
			add(path + "/" + slug)
		}
	}
	for _, slug := range h.svc.AllPublicDocumentSlugs(r.Context()) {
		add("/document/" + slug)
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(set); err != nil {
		h.logger.Error("sitemap encode failed", slog.Any("error", err))
	}
}
