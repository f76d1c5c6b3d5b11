package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/muzilix/dbapi-docs/pkg/observability"
)

// ReloadFunc receives each reload attempt. On error cfg is nil and the
// caller keeps its previous config.
type ReloadFunc func(cfg *SiteConfig, err error)

// Watch monitors the site config at path and reloads it on every write until
// ctx is cancelled. The parent directory is watched so that editors that
// save by rename are still picked up.
func Watch(ctx context.Context, path string, logger *observability.Logger, onReload ReloadFunc) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	logger = logger.WithField("path", path)
	logger.Info("watching site config for changes")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := LoadSiteConfig(abs)
			if err != nil {
				logger.WithError(err).Error("site config reload failed, keeping previous config")
				onReload(nil, err)
				continue
			}

			logger.Info("site config reloaded")
			onReload(cfg, nil)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.WithError(err).Warn("config watcher error")
		}
	}
}
