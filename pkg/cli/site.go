package cli

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/muzilix/dbapi-docs/pkg/config"
	"github.com/muzilix/dbapi-docs/pkg/docs"
	"github.com/muzilix/dbapi-docs/pkg/endpoints"
	"github.com/muzilix/dbapi-docs/pkg/nav"
)

// SiteConfigFile is the output of build for the site generator
const SiteConfigFile = "site.config.json"

func newBuildCommand(env *Env) *Command {
	return &Command{
		Name:        "build",
		Description: "Generate API pages, check navigation and write the site config",
		Run:         func(args []string) error { return runSite(env, "build", args) },
	}
}

func newCheckCommand(env *Env) *Command {
	return &Command{
		Name:        "check",
		Description: "Check navigation against the catalog and page tree",
		Run:         func(args []string) error { return runSite(env, "check", args) },
	}
}

// loadSiteConfig loads path, or searches the working directory when empty
func loadSiteConfig(path string) (*config.SiteConfig, string, error) {
	if path != "" {
		cfg, err := config.LoadSiteConfig(path)
		return cfg, path, err
	}
	return config.LoadSiteConfigFromDir(".")
}

func runSite(env *Env, name string, args []string) error {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(env.Out)
	configPath := flags.String("config", "", "Site config file (default: search for docsgen.yaml)")
	strict := flags.Bool("strict", false, "Fail on warnings as well as errors")

	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, path, err := loadSiteConfig(*configPath)
	if err != nil {
		return err
	}
	if path != "" {
		env.Log.WithField("path", path).Debug("loaded site config")
	}

	reg := endpoints.Default()
	model, doc, _, err := docs.BuildSite(reg, cfg)
	if err != nil {
		return err
	}

	if name == "build" {
		written, err := docs.NewMarkdownExporter().WritePages(cfg.SrcDir, doc)
		if err != nil {
			return err
		}
		env.Log.WithFields(logrus.Fields{"dir": cfg.SrcDir, "pages": len(written)}).Info("generated API pages")
	}

	var pages *nav.PageSet
	switch _, statErr := os.Stat(cfg.SrcDir); {
	case statErr == nil:
		if pages, err = nav.LoadPages(cfg.SrcDir); err != nil {
			return fmt.Errorf("failed to load pages: %w", err)
		}
	case errors.Is(statErr, fs.ErrNotExist):
		env.Log.WithField("dir", cfg.SrcDir).Warn("source directory not found, skipping link check")
	default:
		return statErr
	}

	report := nav.NewChecker(cfg.APIPrefix).Check(model, reg, pages)
	logReport(env.Log, report)

	if err := report.Err(*strict); err != nil {
		return err
	}

	if name == "build" {
		if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		out := filepath.Join(cfg.OutDir, SiteConfigFile)
		if err := writeSiteConfig(out, cfg, model); err != nil {
			return err
		}
		env.Log.WithField("path", out).Info("wrote site config")
	}

	fmt.Fprintf(env.Out, "%d errors, %d warnings\n",
		report.Count(nav.SeverityError), report.Count(nav.SeverityWarning))
	return nil
}

// writeSiteConfig writes the generator manifest to path, reporting close errors
func writeSiteConfig(path string, cfg *config.SiteConfig, model *nav.Model) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return docs.NewSiteConfigExporter().Export(f, cfg, model)
}

func logReport(log *logrus.Logger, report nav.Report) {
	for _, f := range report.Findings {
		entry := log.WithFields(logrus.Fields{"kind": f.Kind})
		if f.Key != "" {
			entry = entry.WithField("key", f.Key)
		}
		if f.Link != "" {
			entry = entry.WithField("link", f.Link)
		}
		if f.Severity == nav.SeverityError {
			entry.Error(f.Message)
		} else {
			entry.Warn(f.Message)
		}
	}
}
