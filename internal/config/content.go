// Package config holds typed application configuration. Values are read
// once at startup and injected into constructors; the content layer
// never reads the environment itself, so tests can build both backend
// variants side by side.
package config

import (
	"fmt"
	"time"

	pkgconfig "usher-web/pkg/config"
)

// Content source modes. The default is the live API.
const (
	SourceAPI      = "api"
	SourceSnapshot = "snapshot"
)

// ContentConfig selects and parameterizes the content backend.
type ContentConfig struct {
	// Source is "api" or "snapshot".
	Source string

	// APIBaseURL is the live CMS API base, e.g. http://localhost:8001/api/v1.
	// All live requests are relative to it.
	APIBaseURL string

	// SnapshotDir is the root of the captured JSON snapshot tree.
	SnapshotDir string

	// AttachmentsDir is where the capture utility stored attachment
	// binaries, served statically in snapshot mode.
	AttachmentsDir string

	// CacheTTL bounds the lifetime of cached live responses. Zero keeps
	// entries until a revalidation request invalidates their tags.
	CacheTTL time.Duration

	// RevalidateToken is the shared secret for the revalidation webhook.
	// Empty disables the endpoint.
	RevalidateToken string
}

// LoadContentConfig reads the content configuration from the environment.
func LoadContentConfig() (ContentConfig, error) {
	cfg := ContentConfig{
		Source:          pkgconfig.GetEnvString("CONTENT_SOURCE", SourceAPI),
		APIBaseURL:      pkgconfig.GetEnvString("API_BASE_URL", "http://localhost:8001/api/v1"),
		SnapshotDir:     pkgconfig.GetEnvString("CONTENT_SNAPSHOT_DIR", "content-snapshots"),
		AttachmentsDir:  pkgconfig.GetEnvString("ATTACHMENTS_DIR", "public/attachments"),
		CacheTTL:        pkgconfig.GetEnvDuration("CONTENT_CACHE_TTL", 0),
		RevalidateToken: pkgconfig.GetEnvString("REVALIDATE_TOKEN", ""),
	}

	if err := cfg.Validate(); err != nil {
		return ContentConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for inconsistencies.
func (c ContentConfig) Validate() error {
	switch c.Source {
	case SourceAPI:
		if c.APIBaseURL == "" {
			return fmt.Errorf("API_BASE_URL must be set when CONTENT_SOURCE=api")
		}
	case SourceSnapshot:
		if c.SnapshotDir == "" {
			return fmt.Errorf("CONTENT_SNAPSHOT_DIR must be set when CONTENT_SOURCE=snapshot")
		}
	default:
		return fmt.Errorf("invalid CONTENT_SOURCE %q: must be %q or %q", c.Source, SourceAPI, SourceSnapshot)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CONTENT_CACHE_TTL must not be negative")
	}
	return nil
}
