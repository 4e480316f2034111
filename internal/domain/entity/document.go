package entity

// Document status and access-level values used by the public-documents
// resource. The legacy mapping only ever produces the active/public pair.
const (
	DocumentStatusActive      = "active"
	DocumentStatusActiveLabel = "啟用"

	DocumentAccessPublic      = "public"
	DocumentAccessPublicLabel = "公開"
)

// PublicDocumentCategory is the category projection used by documents.
// It is narrower than Category and carries an optional icon.
type PublicDocumentCategory struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Slug string  `json:"slug"`
	Icon *string `json:"icon"`
}

// PublicDocumentVersion is one version of a public document's file.
// Exactly one version in a document's list has IsCurrent set.
type PublicDocumentVersion struct {
	ID               int64   `json:"id"`
	VersionNumber    string  `json:"version_number"`
	VersionNotes     *string `json:"version_notes"`
	IsCurrent        bool    `json:"is_current"`
	OriginalFilename string  `json:"original_filename"`
	MimeType         string  `json:"mime_type"`
	FileExtension    string  `json:"file_extension"`
	FileSize         int64   `json:"file_size"`
	FileSizeHuman    string  `json:"file_size_human"`
	FileHash         *string `json:"file_hash"`
	UploadedBy       *string `json:"uploaded_by"`
	UploadedAt       *string `json:"uploaded_at"`
	DownloadURL      string  `json:"download_url"`
}

// PublicDocumentLinks holds the deterministic link set for a document.
type PublicDocumentLinks struct {
	APIURL      string  `json:"api_url"`
	DetailURL   string  `json:"detail_url"`
	WebURL      string  `json:"web_url"`
	DownloadURL *string `json:"download_url"`
}

// PublicDocumentMetadata carries expiry bookkeeping for a document.
type PublicDocumentMetadata struct {
	DocumentType        *string `json:"document_type"`
	ExpirationStatus    *string `json:"expiration_status"`
	AutoArchiveOnExpiry bool    `json:"auto_archive_on_expiry"`
	ExpiryNotice        *string `json:"expiry_notice"`
}

// PublicDocumentSummary is the list-view projection of a public document.
type PublicDocumentSummary struct {
	ID               int64                   `json:"id"`
	Slug             string                  `json:"slug"`
	PublicUUID       string                  `json:"public_uuid"`
	Title            string                  `json:"title"`
	DocumentNumber   *string                 `json:"document_number"`
	Summary          *string                 `json:"summary"`
	Description      *string                 `json:"description"`
	Status           string                  `json:"status"`
	StatusLabel      string                  `json:"status_label"`
	AccessLevel      string                  `json:"access_level"`
	AccessLevelLabel string                  `json:"access_level_label"`
	PublishedAt      *string                 `json:"published_at"`
	UpdatedAt        *string                 `json:"updated_at"`
	ExpiresAt        *string                 `json:"expires_at"`
	VersionCount     int                     `json:"version_count"`
	Category         *PublicDocumentCategory `json:"category"`
	CurrentVersion   *PublicDocumentVersion  `json:"current_version"`
	Links            PublicDocumentLinks     `json:"links"`
	Metadata         PublicDocumentMetadata  `json:"metadata"`
}

// PublicDocumentAudit carries the optional audit block of a document.
type PublicDocumentAudit struct {
	ViewCount     int64   `json:"view_count"`
	DownloadCount int64   `json:"download_count"`
	LastUpdatedBy *string `json:"last_updated_by"`
	CreatedBy     *string `json:"created_by"`
}

// PublicDocument extends the summary with the full ordered version list.
type PublicDocument struct {
	PublicDocumentSummary
	Versions []PublicDocumentVersion `json:"versions"`
	Audit    *PublicDocumentAudit    `json:"audit,omitempty"`
}

// PublicDocumentDetailResponse is the wire shape of a document read.
type PublicDocumentDetailResponse struct {
	Data    PublicDocument          `json:"data"`
	Related []PublicDocumentSummary `json:"related"`
}
