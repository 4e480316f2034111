package capture

import (
	"fmt"
	"os"

	"usher-web/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

// Manifest declares what the capture walks: which static pages to
// mirror, which content types to list, and the list page size ceiling.
type Manifest struct {
	PageSlugs    []string             `yaml:"page_slugs"`
	ContentTypes []entity.ContentType `yaml:"content_types"`
	PerPage      int                  `yaml:"per_page"`
}

// DefaultManifest returns the built-in walk covering the site's fixed
// static pages and all four content types.
func DefaultManifest() Manifest {
	return Manifest{
		PageSlugs:    []string{"about", "contact", "structure", "message", "logo-represent"},
		ContentTypes: entity.ContentTypes,
		PerPage:      500,
	}
}

// LoadManifest reads a manifest from a YAML file. Omitted fields fall
// back to the defaults, so a manifest may override just the page list.
func LoadManifest(path string) (Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	m := Manifest{}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	defaults := DefaultManifest()
	if len(m.PageSlugs) == 0 {
		m.PageSlugs = defaults.PageSlugs
	}
	if len(m.ContentTypes) == 0 {
		m.ContentTypes = defaults.ContentTypes
	}
	if m.PerPage <= 0 {
		m.PerPage = defaults.PerPage
	}

	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Validate rejects manifests naming unknown content types.
func (m Manifest) Validate() error {
	for _, t := range m.ContentTypes {
		if !t.Valid() {
			return fmt.Errorf("invalid content type %q in manifest", t)
		}
	}
	return nil
}
