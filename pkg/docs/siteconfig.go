package docs

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/muzilix/dbapi-docs/pkg/config"
	"github.com/muzilix/dbapi-docs/pkg/nav"
	"github.com/muzilix/dbapi-docs/pkg/theme"
)

// SiteManifest is the configuration consumed by the static site generator
type SiteManifest struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Lang        string         `json:"lang"`
	APIBaseURL  string         `json:"apiBaseUrl"`
	ThemeConfig ThemeManifest  `json:"themeConfig"`
	Markdown    MarkdownConfig `json:"markdown"`
}

// ThemeManifest is the themeConfig block
type ThemeManifest struct {
	Nav         []nav.Item             `json:"nav"`
	Sidebar     map[string][]nav.Group `json:"sidebar"`
	SocialLinks []config.SocialLink    `json:"socialLinks,omitempty"`
	Search      SearchManifest         `json:"search"`
}

// SearchManifest selects the search provider
type SearchManifest struct {
	Provider string `json:"provider"`
}

// MarkdownConfig is the markdown block
type MarkdownConfig struct {
	LineNumbers bool   `json:"lineNumbers"`
	Theme       string `json:"theme,omitempty"`
}

// SiteConfigExporter builds the generator config from site config and sidebars
type SiteConfigExporter struct{}

// NewSiteConfigExporter creates a new site config exporter
func NewSiteConfigExporter() *SiteConfigExporter {
	return &SiteConfigExporter{}
}

// Build assembles the manifest
func (e *SiteConfigExporter) Build(cfg *config.SiteConfig, model *nav.Model) SiteManifest {
	base, err := theme.NormalizeBaseURL(cfg.APIBaseURL)
	if err != nil {
		base = cfg.APIBaseURL
	}
	return SiteManifest{
		Title:       cfg.Title,
		Description: cfg.Description,
		Lang:        cfg.Lang,
		APIBaseURL:  base,
		ThemeConfig: ThemeManifest{
			Nav:         cfg.Theme.Nav,
			Sidebar:     model.Sidebars(),
			SocialLinks: cfg.Theme.SocialLinks,
			Search:      SearchManifest{Provider: cfg.Theme.Search.Provider},
		},
		Markdown: MarkdownConfig{
			LineNumbers: cfg.Markdown.LineNumbers,
			Theme:       cfg.Markdown.Theme,
		},
	}
}

// Export writes the manifest as indented JSON
func (e *SiteConfigExporter) Export(w io.Writer, cfg *config.SiteConfig, model *nav.Model) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e.Build(cfg, model)); err != nil {
		return fmt.Errorf("failed to encode site config: %w", err)
	}
	return nil
}
