package tables

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadSnapshot reads a host database dump and its config directory into memory.
// Missing files leave the matching table empty; malformed files are errors.
//
// Layout:
//
//	<database>/templates/{items,quests,handbook,prices}.json
//	<database>/locales/global/<lang>.json
//	<database>/traders/<id>/{base,assort,questassort}.json
//	<configs>/{trader,ragfair,item,inventory}.json
func LoadSnapshot(databaseDir, configsDir string) (*Database, *Configs, error) {
	db := NewDatabase()
	configs := NewConfigs()

	templates := filepath.Join(databaseDir, "templates")
	targets := []struct {
		path   string
		target any
	}{
		{filepath.Join(templates, "items.json"), &db.Templates.Items},
		{filepath.Join(templates, "quests.json"), &db.Templates.Quests},
		{filepath.Join(templates, "handbook.json"), &db.Templates.Handbook},
		{filepath.Join(templates, "prices.json"), &db.Templates.Prices},
		{filepath.Join(configsDir, "trader.json"), &configs.Trader},
		{filepath.Join(configsDir, "ragfair.json"), &configs.Ragfair},
		{filepath.Join(configsDir, "item.json"), &configs.Item},
		{filepath.Join(configsDir, "inventory.json"), &configs.Inventory},
	}
	for _, t := range targets {
		if err := readJSON(t.path, t.target); err != nil {
			return nil, nil, fmt.Errorf("loading snapshot: %w", err)
		}
	}

	if err := loadLocales(filepath.Join(databaseDir, "locales", "global"), db.Locales.Global); err != nil {
		return nil, nil, fmt.Errorf("loading snapshot: %w", err)
	}
	if err := loadTraders(filepath.Join(databaseDir, "traders"), db.Traders); err != nil {
		return nil, nil, fmt.Errorf("loading snapshot: %w", err)
	}

	// Decoding a missing key into a map field leaves it nil.
	if db.Templates.Items == nil {
		db.Templates.Items = make(map[string]*ItemTemplate)
	}
	if db.Templates.Quests == nil {
		db.Templates.Quests = make(ContentTable)
	}
	if db.Templates.Prices == nil {
		db.Templates.Prices = make(map[string]int)
	}
	if configs.Ragfair.Traders == nil {
		configs.Ragfair.Traders = make(map[string]bool)
	}
	if configs.Inventory.RandomLootContainers == nil {
		configs.Inventory.RandomLootContainers = make(map[string]*RewardDetails)
	}

	return db, configs, nil
}

func loadLocales(dir string, global LocaleSet) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading locales: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".json")
		strs := make(map[string]string)
		if err := readJSON(filepath.Join(dir, entry.Name()), &strs); err != nil {
			return err
		}
		global[lang] = strs
	}
	return nil
}

func loadTraders(dir string, traders map[string]*Trader) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading traders: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		traderDir := filepath.Join(dir, entry.Name())
		trader := &Trader{}
		if err := readJSON(filepath.Join(traderDir, "base.json"), &trader.Base); err != nil {
			return err
		}
		if err := readJSON(filepath.Join(traderDir, "assort.json"), &trader.Assort); err != nil {
			return err
		}
		if err := readJSON(filepath.Join(traderDir, "questassort.json"), &trader.QuestAssort); err != nil {
			return err
		}
		traders[entry.Name()] = trader
	}
	return nil
}

func readJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
