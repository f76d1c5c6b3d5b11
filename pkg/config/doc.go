// Package config loads docsgen configuration.
//
// The site itself is described by a YAML file (docsgen.yaml) layered over
// DefaultSiteConfig, then overridden by DOCS_API_BASE_URL, DOCS_SRC_DIR and
// DOCS_OUT_DIR, then validated:
//
//	cfg, path, err := config.LoadSiteConfigFromDir(".")
//	model, err := cfg.NavModel(endpoints.Default())
//
// Serve mode additionally reads ServerConfig and ObservabilityConfig from
// DOCS_* environment variables via LoadConfig, and can follow edits to the
// site file with Watch.
package config
