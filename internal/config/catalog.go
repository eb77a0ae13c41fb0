package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"painter/internal/locales"
)

const (
	GroupFigurine = "figurine"
	GroupLootBox  = "lootbox"
)

// Catalog lists the custom items the mod clones into the host tables.
type Catalog struct {
	Version        int             `yaml:"version"`
	HallOfFame     []string        `yaml:"hall_of_fame"`
	Items          []CustomItem    `yaml:"items"`
	LootContainers []LootContainer `yaml:"loot_containers"`

	reference string
	itemIndex map[string]*CustomItem
}

type CustomItem struct {
	ID             string                `yaml:"id"`
	Group          string                `yaml:"group"`
	Clone          string                `yaml:"clone"`
	Parent         string                `yaml:"parent"`
	HandbookParent string                `yaml:"handbook_parent"`
	FleaPrice      int                   `yaml:"flea_price"`
	HandbookPrice  int                   `yaml:"handbook_price"`
	Overrides      map[string]any        `yaml:"overrides"`
	Locales        map[string]ItemLocale `yaml:"locales"`
	HallOfFame     bool                  `yaml:"hall_of_fame"`
	Lootable       *bool                 `yaml:"lootable"`
	RenameTemplate bool                  `yaml:"rename_template"`
}

type ItemLocale struct {
	Name        string `yaml:"name"`
	ShortName   string `yaml:"short_name"`
	Description string `yaml:"description"`
}

type LootContainer struct {
	ID          string         `yaml:"id"`
	RewardCount int            `yaml:"reward_count"`
	FoundInRaid bool           `yaml:"found_in_raid"`
	Pool        map[string]int `yaml:"pool"`
}

// LoadCatalog reads items.yaml. Every item must carry a locale entry for the
// reference language, which is locales.Reference when empty.
func LoadCatalog(path, reference string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return ParseCatalog(data, reference)
}

func ParseCatalog(data []byte, reference string) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	catalog.reference = reference
	if catalog.reference == "" {
		catalog.reference = locales.Reference
	}

	if err := validateCatalog(&catalog); err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	catalog.itemIndex = make(map[string]*CustomItem)
	for i := range catalog.Items {
		item := &catalog.Items[i]
		catalog.itemIndex[item.ID] = item
	}

	return &catalog, nil
}

func validateCatalog(c *Catalog) error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported version: %d", c.Version)
	}
	if len(c.Items) == 0 {
		return fmt.Errorf("at least one item is required")
	}

	ids := make(map[string]struct{})
	for i, item := range c.Items {
		if strings.TrimSpace(item.ID) == "" {
			return fmt.Errorf("item %d id is required", i)
		}
		if _, exists := ids[item.ID]; exists {
			return fmt.Errorf("duplicate item id: %s", item.ID)
		}
		ids[item.ID] = struct{}{}

		if item.Group != GroupFigurine && item.Group != GroupLootBox {
			return fmt.Errorf("item %s has unknown group: %q", item.ID, item.Group)
		}
		if strings.TrimSpace(item.Clone) == "" {
			return fmt.Errorf("item %s clone is required", item.ID)
		}
		if item.Clone == item.ID {
			return fmt.Errorf("item %s clones itself", item.ID)
		}
		if item.FleaPrice <= 0 || item.HandbookPrice <= 0 {
			return fmt.Errorf("item %s prices must be positive", item.ID)
		}
		if _, ok := item.Locales[c.reference]; !ok {
			return fmt.Errorf("item %s has no %s locale", item.ID, c.reference)
		}
		if _, ok := item.Overrides["Slots"]; ok {
			return fmt.Errorf("item %s overrides Slots", item.ID)
		}
	}

	if len(c.HallOfFame) == 0 {
		for _, item := range c.Items {
			if item.HallOfFame {
				return fmt.Errorf("item %s targets the hall of fame but no containers are listed", item.ID)
			}
		}
	}

	containers := make(map[string]struct{})
	for i, container := range c.LootContainers {
		if _, ok := ids[container.ID]; !ok {
			return fmt.Errorf("loot container %d references unknown item: %s", i, container.ID)
		}
		if _, exists := containers[container.ID]; exists {
			return fmt.Errorf("duplicate loot container: %s", container.ID)
		}
		containers[container.ID] = struct{}{}
		if container.RewardCount <= 0 {
			return fmt.Errorf("loot container %s reward count must be positive", container.ID)
		}
		if len(container.Pool) == 0 {
			return fmt.Errorf("loot container %s has an empty pool", container.ID)
		}
		for tpl, weight := range container.Pool {
			if weight <= 0 {
				return fmt.Errorf("loot container %s weight for %s must be positive", container.ID, tpl)
			}
		}
	}

	return nil
}

// Reference is the language whose locale entry fills in for missing ones.
func (c *Catalog) Reference() string {
	return c.reference
}

func (c *Catalog) ItemByID(id string) (*CustomItem, bool) {
	if c == nil {
		return nil, false
	}
	item, ok := c.itemIndex[id]
	return item, ok
}

func (c *Catalog) ItemsInGroup(group string) []CustomItem {
	var items []CustomItem
	for _, item := range c.Items {
		if item.Group == group {
			items = append(items, item)
		}
	}
	return items
}

func (c *Catalog) LootContainer(id string) (*LootContainer, bool) {
	for i := range c.LootContainers {
		if c.LootContainers[i].ID == id {
			return &c.LootContainers[i], true
		}
	}
	return nil, false
}

// IsLootable defaults to true when the catalog does not say otherwise.
func (i CustomItem) IsLootable() bool {
	return i.Lootable == nil || *i.Lootable
}
