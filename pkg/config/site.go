package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/muzilix/dbapi-docs/pkg/endpoints"
	"github.com/muzilix/dbapi-docs/pkg/nav"
	"github.com/muzilix/dbapi-docs/pkg/theme"
)

// ConfigFileNames are searched in order by LoadSiteConfigFromDir
var ConfigFileNames = []string{"docsgen.yaml", "docsgen.yml", ".docsgen.yaml"}

// ErrInvalidConfig is returned when a site config fails validation
var ErrInvalidConfig = errors.New("invalid site config")

// SiteConfig describes the documentation site
type SiteConfig struct {
	Title       string `yaml:"title" validate:"required"`
	Description string `yaml:"description"`
	Lang        string `yaml:"lang" validate:"required"`

	// APIBaseURL is the public origin the API is served from
	APIBaseURL string `yaml:"api_base_url" validate:"required,http_url"`

	SrcDir    string `yaml:"src_dir" validate:"required"`
	OutDir    string `yaml:"out_dir" validate:"required"`
	APIPrefix string `yaml:"api_prefix" validate:"required,startswith=/,endswith=/"`

	Theme    ThemeConfig    `yaml:"theme"`
	Markdown MarkdownConfig `yaml:"markdown"`

	// Sidebars replaces the built-in static sidebars when set. The API
	// section is always projected from the endpoint catalog.
	Sidebars []nav.Section `yaml:"sidebars,omitempty" validate:"dive"`
}

// ThemeConfig holds the top navigation and theme options
type ThemeConfig struct {
	Nav         []nav.Item   `yaml:"nav" validate:"dive"`
	SocialLinks []SocialLink `yaml:"social_links" validate:"dive"`
	Search      SearchConfig `yaml:"search"`
}

// SocialLink is an icon link in the site header
type SocialLink struct {
	Icon string `yaml:"icon" json:"icon" validate:"required"`
	Link string `yaml:"link" json:"link" validate:"required,url"`
}

// SearchConfig selects the search provider
type SearchConfig struct {
	Provider string `yaml:"provider" validate:"oneof=local algolia none"`
}

// MarkdownConfig holds markdown rendering options
type MarkdownConfig struct {
	LineNumbers bool   `yaml:"line_numbers"`
	Theme       string `yaml:"theme"`
}

// DefaultSiteConfig returns the built-in site configuration
func DefaultSiteConfig() *SiteConfig {
	return &SiteConfig{
		Title:       "DBAPI 文档",
		Description: "远程数据库管理 HTTP API 文档",
		Lang:        "zh-CN",
		APIBaseURL:  theme.DefaultBaseURL,
		SrcDir:      "docs",
		OutDir:      "dist",
		APIPrefix:   nav.APIPrefix,
		Theme: ThemeConfig{
			Nav: []nav.Item{
				{Text: "指南", Link: nav.GuidePrefix},
				{Text: "API 参考", Link: nav.APIPrefix},
				{Text: "示例", Link: nav.ExamplesPrefix},
				{Text: "参考", Link: nav.ReferencePrefix},
			},
			SocialLinks: []SocialLink{
				{Icon: "github", Link: "https://github.com/muzilix/dbapi"},
			},
			Search: SearchConfig{Provider: "local"},
		},
		Markdown: MarkdownConfig{
			LineNumbers: true,
			Theme:       "material-theme-palenight",
		},
	}
}

// LoadSiteConfig reads path over the defaults, applies environment
// overrides and validates the result. An empty path loads defaults only.
func LoadSiteConfig(path string) (*SiteConfig, error) {
	cfg := DefaultSiteConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadSiteConfigFromDir looks for a config file in dir and loads it. If none
// exists the defaults are used.
func LoadSiteConfigFromDir(dir string) (*SiteConfig, string, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadSiteConfig(path)
			return cfg, path, err
		}
	}
	cfg, err := LoadSiteConfig("")
	return cfg, "", err
}

// SaveSiteConfig writes cfg to path as YAML
func SaveSiteConfig(cfg *SiteConfig, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *SiteConfig) applyEnv() {
	c.APIBaseURL = getEnv("DOCS_API_BASE_URL", c.APIBaseURL)
	c.SrcDir = getEnv("DOCS_SRC_DIR", c.SrcDir)
	c.OutDir = getEnv("DOCS_OUT_DIR", c.OutDir)
}

var siteValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and that the base URL is usable by the
// theme extension.
func (c *SiteConfig) Validate() error {
	if err := siteValidator.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q", ErrInvalidConfig, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := theme.NormalizeBaseURL(c.APIBaseURL); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// StaticSections returns the configured sidebars, or the built-in ones
func (c *SiteConfig) StaticSections() []nav.Section {
	if len(c.Sidebars) > 0 {
		return c.Sidebars
	}
	return nav.DefaultSections()
}

// NavModel assembles the sidebar model for reg under this config
func (c *SiteConfig) NavModel(reg *endpoints.Registry) (*nav.Model, error) {
	return nav.Assemble(reg, c.APIPrefix, c.StaticSections())
}
