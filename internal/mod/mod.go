// Package mod wires the Painter trader, its quests, locales and custom items
// into the host tables through the host's two load hooks.
package mod

import (
	"fmt"

	"go.uber.org/zap"

	"painter/internal/config"
	"painter/internal/ingest"
	"painter/internal/items"
	"painter/internal/tables"
)

const questIconPrefix = "/files/quest/icon/"

type Painter struct {
	cfg      *config.ModConfig
	catalog  *config.Catalog
	log      *zap.Logger
	importer *ingest.Importer
	items    *items.Manager
}

type Report struct {
	TraderID    string
	AvatarRoute string
	Quests      *ingest.Result
	Locales     *ingest.LocaleResult
	QuestImages int
	Items       *items.Report
}

func New(cfg *config.ModConfig, catalog *config.Catalog, log *zap.Logger) (*Painter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mod config is required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("item catalog is required")
	}
	if catalog.Reference() != cfg.Locales.Reference {
		return nil, fmt.Errorf("item catalog reference language %s does not match %s", catalog.Reference(), cfg.Locales.Reference)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Painter{
		cfg:      cfg,
		catalog:  catalog,
		log:      log,
		importer: ingest.NewImporter(log),
		items:    items.NewManager(log),
	}, nil
}

// PreLoad registers the trader avatar route, its refresh window and its key
// before the host loads its database.
func (p *Painter) PreLoad(db *tables.Database, configs *tables.Configs, routes tables.ImageRouter) (*Report, error) {
	trader, err := loadTraderFiles(p.cfg.ModPath("db"))
	if err != nil {
		return nil, fmt.Errorf("pre-load: %w", err)
	}

	report := &Report{TraderID: trader.Info.ID, AvatarRoute: trader.avatarRoute()}
	routes.AddRoute(report.AvatarRoute, p.cfg.ModPath("res", "painter.jpg"))

	configs.Trader.SetUpdateTime(tables.UpdateTime{
		TraderID: trader.Info.ID,
		Seconds: tables.MinMax{
			Min: p.cfg.Trader.UpdateTime.Min,
			Max: p.cfg.Trader.UpdateTime.Max,
		},
	})
	db.TraderKeys[p.cfg.Trader.Key] = p.cfg.Trader.Key

	p.log.Debug("trader pre-loaded",
		zap.String("trader", trader.Info.ID),
		zap.String("avatar", report.AvatarRoute))
	return report, nil
}

// PostDBLoad adds the trader, quests, locales, quest icons and custom items to
// the loaded tables.
func (p *Painter) PostDBLoad(db *tables.Database, configs *tables.Configs, routes tables.ImageRouter) (*Report, error) {
	trader, err := loadTraderFiles(p.cfg.ModPath("db"))
	if err != nil {
		return nil, fmt.Errorf("post-db-load: %w", err)
	}
	report := &Report{TraderID: trader.Info.ID, AvatarRoute: trader.avatarRoute()}

	trader.register(db, p.cfg.Trader.QuestAssort)
	trader.addLocales(db.Locales.Global, p.cfg.Trader.FirstName, p.cfg.Trader.Description)
	configs.Ragfair.Traders[trader.Info.ID] = true

	report.Quests, err = p.importer.ImportQuests(p.cfg.ModPath("db", "quests"), db.Templates.Quests)
	if err != nil {
		return nil, fmt.Errorf("post-db-load: %w", err)
	}

	report.Locales, err = p.importer.ImportLocales(p.cfg.ModPath("db", "locales"), ingest.LocaleOptions{
		Languages: p.cfg.Locales.Languages,
		Reference: p.cfg.Locales.Reference,
	}, db.Locales.Global)
	if err != nil {
		return nil, fmt.Errorf("post-db-load: %w", err)
	}

	report.QuestImages, err = p.importer.RouteImages(p.cfg.ModPath("res", "quests"), questIconPrefix, routes)
	if err != nil {
		return nil, fmt.Errorf("post-db-load: %w", err)
	}

	report.Items, err = p.items.CreateCustomItems(db, configs, p.catalog, p.cfg.Features.LootBoxes)
	if err != nil {
		return nil, fmt.Errorf("post-db-load: %w", err)
	}

	return report, nil
}

// Apply runs both hooks against the same tables. Running it again on tables it
// already patched leaves them unchanged.
func (p *Painter) Apply(db *tables.Database, configs *tables.Configs, routes tables.ImageRouter) (*Report, error) {
	if _, err := p.PreLoad(db, configs, routes); err != nil {
		return nil, err
	}
	report, err := p.PostDBLoad(db, configs, routes)
	if err != nil {
		return nil, err
	}

	p.log.Info("Painter loaded",
		zap.String("mod", p.cfg.Mod),
		zap.String("trader", report.TraderID),
		zap.Int("quests", report.Quests.KeysMerged),
		zap.Int("locale_keys", report.Locales.KeysMerged),
		zap.Int("backfilled", report.Locales.Backfilled),
		zap.Int("quest_images", report.QuestImages),
		zap.Int("custom_items", len(report.Items.Created)))
	return report, nil
}

func (p *Painter) Config() *config.ModConfig {
	return p.cfg
}

func (p *Painter) Catalog() *config.Catalog {
	return p.catalog
}
