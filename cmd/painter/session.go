package main

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"painter/internal/config"
	"painter/internal/logging"
	"painter/internal/mod"
	"painter/internal/tables"
	"painter/internal/validate"
)

// session is one load of the host snapshot with the mod applied to it.
type session struct {
	cfg     *config.ModConfig
	catalog *config.Catalog
	log     *zap.Logger
	painter *mod.Painter

	db      *tables.Database
	configs *tables.Configs
	routes  tables.ImageRoutes
	report  *mod.Report
}

func loadSession(path string) (*session, error) {
	cfg, err := config.LoadModConfig(path)
	if err != nil {
		return nil, err
	}

	resolvePaths(cfg, path)

	catalog, err := config.LoadCatalog(cfg.Paths.Catalog, cfg.Locales.Reference)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return nil, err
	}

	painter, err := mod.New(cfg, catalog, log)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, catalog: catalog, log: log, painter: painter}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// reload reads a fresh snapshot and applies the mod to it.
func (s *session) reload() error {
	if s.cfg.Paths.Database == "" {
		return fmt.Errorf("paths.database is required to load a snapshot")
	}
	db, configs, err := tables.LoadSnapshot(s.cfg.Paths.Database, s.cfg.Paths.Configs)
	if err != nil {
		return err
	}
	routes := make(tables.ImageRoutes)

	report, err := s.painter.Apply(db, configs, routes)
	if err != nil {
		return err
	}
	s.db, s.configs, s.routes, s.report = db, configs, routes, report
	return nil
}

func (s *session) validate() (*validate.Report, error) {
	var keys []string
	if s.report.Locales != nil {
		keys = slices.Sorted(maps.Keys(s.report.Locales.Added[s.cfg.Locales.Reference]))
	}
	return validate.Run(validate.Input{
		DB:         s.db,
		Configs:    s.configs,
		Catalog:    s.catalog,
		TraderID:   s.report.TraderID,
		Languages:  s.cfg.Locales.Languages,
		LootBoxes:  s.cfg.Features.LootBoxes,
		LocaleKeys: keys,
	})
}

func (s *session) close() {
	_ = s.log.Sync()
}

// resolvePaths anchors a relative mod root at the config file's directory and
// the other relative paths at the mod root, so results do not depend on the
// working directory.
func resolvePaths(cfg *config.ModConfig, configFile string) {
	cfg.Paths.Mod = anchor(filepath.Dir(configFile), cfg.Paths.Mod)
	cfg.Paths.Catalog = anchor(cfg.Paths.Mod, cfg.Paths.Catalog)
	cfg.Paths.Database = anchor(cfg.Paths.Mod, cfg.Paths.Database)
	cfg.Paths.Configs = anchor(cfg.Paths.Mod, cfg.Paths.Configs)
}

func anchor(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
