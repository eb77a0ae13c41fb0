package items

import (
	"fmt"
	"maps"

	"go.uber.org/zap"

	"painter/internal/config"
	"painter/internal/patch"
	"painter/internal/tables"
)

type Manager struct {
	log *zap.Logger
}

type Report struct {
	Created     []string
	HallOfFame  map[string]int
	Blacklisted []string
	Renamed     []string
	LootPools   []string
}

func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{log: log}
}

// CreateCustomItems creates every figurine in the catalog and, when
// enableLootBoxes is set, every loot box with its reward pool.
func (m *Manager) CreateCustomItems(db *tables.Database, configs *tables.Configs, catalog *config.Catalog, enableLootBoxes bool) (*Report, error) {
	report := &Report{HallOfFame: make(map[string]int)}

	figurines := catalog.ItemsInGroup(config.GroupFigurine)
	if err := m.createGroup(db, configs, catalog, figurines, report); err != nil {
		return nil, err
	}
	if len(figurines) > 0 {
		m.log.Info("Painter custom items added", zap.Int("items", len(figurines)))
	}

	if !enableLootBoxes {
		return report, nil
	}

	boxes := catalog.ItemsInGroup(config.GroupLootBox)
	if err := m.createGroup(db, configs, catalog, boxes, report); err != nil {
		return nil, err
	}
	if len(boxes) > 0 {
		m.log.Info("Painter loot boxes added", zap.Int("items", len(boxes)))
	}
	return report, nil
}

func (m *Manager) createGroup(db *tables.Database, configs *tables.Configs, catalog *config.Catalog, group []config.CustomItem, report *Report) error {
	for _, item := range group {
		if err := CreateFromClone(db, item, catalog.Reference()); err != nil {
			return fmt.Errorf("creating custom items: %w", err)
		}
		report.Created = append(report.Created, item.ID)

		if item.RenameTemplate {
			db.Templates.Items[item.ID].Name = item.ID
			report.Renamed = append(report.Renamed, item.ID)
		}
		if container, ok := catalog.LootContainer(item.ID); ok {
			configs.Inventory.RandomLootContainers[item.ID] = &tables.RewardDetails{
				RewardCount:   container.RewardCount,
				FoundInRaid:   container.FoundInRaid,
				RewardTplPool: maps.Clone(container.Pool),
			}
			report.LootPools = append(report.LootPools, item.ID)
		}
		if item.HallOfFame {
			report.HallOfFame[item.ID] = m.addToHallOfFame(db, catalog, item)
		}
		if !item.IsLootable() {
			patch.Blacklist(&configs.Item, item.ID)
			report.Blacklisted = append(report.Blacklisted, item.ID)
		}
	}
	return nil
}

// addToHallOfFame lets the item sit wherever its clone source is accepted.
func (m *Manager) addToHallOfFame(db *tables.Database, catalog *config.Catalog, item config.CustomItem) int {
	containerIDs := catalog.HallOfFame
	containers := make([]*tables.ItemTemplate, 0, len(containerIDs))
	for _, id := range containerIDs {
		containers = append(containers, db.Templates.Items[id])
	}

	name := item.Locales[catalog.Reference()].Name
	result := patch.Filters(containers, item.Clone, item.ID)
	for _, container := range result.Containers {
		if container.Additions > 0 {
			m.log.Debug("item added to hall of fame slots",
				zap.String("item", name),
				zap.String("container", container.Name),
				zap.Int("slots", container.Additions))
		}
	}

	if result.Total > 0 {
		m.log.Debug("item added to hall of fame",
			zap.String("item", name),
			zap.String("id", item.ID),
			zap.Int("slots", result.Total))
	} else {
		m.log.Debug("no hall of fame slots accept the clone source",
			zap.String("item", name),
			zap.String("source", item.Clone))
	}
	return result.Total
}
