package mod

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"painter/internal/config"
	"painter/internal/tables"
)

const (
	traderID       = "668aaff35fd574b6dcc4a686"
	traderBaseJSON = `{"_id": "` + traderID + `", "name": "Painter", "nickname": "Painter", "location": "Tarkov", "avatar": "/files/trader/avatar/painter.jpg"}`
)

const catalogYAML = `version: 1
hall_of_fame: [hall1]
items:
  - id: itemB
    group: figurine
    clone: itemA
    flea_price: 10
    handbook_price: 10
    hall_of_fame: true
    lootable: false
    locales:
      en: { name: Figurine B, short_name: B, description: A figurine. }
`

func writeModTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, contents := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}

func defaultModTree(t *testing.T) string {
	return writeModTree(t, map[string]string{
		"db/base.json":              traderBaseJSON,
		"db/assort.json":            `{"items": [], "barter_scheme": {}, "loyal_level_items": {}}`,
		"db/quests/painter_1.json":  `{"painter_1": {"_id": "painter_1", "traderId": "` + traderID + `"}}`,
		"db/quests/empty.json":      `{}`,
		"db/locales/en/quests.json": `{"painter_1 name": "Brush Up", "painter_1 description": "Find paint."}`,
		"db/locales/ge/quests.json": `{"painter_1 name": "Pinsel"}`,
		"res/painter.jpg":           "jpg",
		"res/quests/painter_1.png":  "png",
		"res/quests/readme.txt":     "not an image",
	})
}

func newTestPainter(t *testing.T, root string, log *zap.Logger) *Painter {
	t.Helper()
	catalog, err := config.ParseCatalog([]byte(catalogYAML), "")
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	cfg := &config.ModConfig{
		Mod:     "painter",
		Version: 1,
		Paths:   config.PathsConfig{Mod: root},
		Trader: config.TraderConfig{
			Key:         "PAINTERSHOP",
			FirstName:   "Ivan Samoylov",
			Description: "A master craftsman.",
			UpdateTime:  config.UpdateTimeConfig{Min: 2000, Max: 6600},
			QuestAssort: config.QuestAssortConfig{
				Success: map[string]string{"PA_CONTAINER": "painter_7", "PA_556_M855A1": "painter_7"},
			},
		},
		Locales: config.LocalesConfig{Reference: "en", Languages: []string{"en", "ge", "fr", "jp"}},
	}
	painter, err := New(cfg, catalog, log)
	if err != nil {
		t.Fatalf("new painter: %v", err)
	}
	return painter
}

func newHostTables(t *testing.T) (*tables.Database, *tables.Configs) {
	t.Helper()
	db := tables.NewDatabase()
	for _, raw := range []string{
		`{"_id": "itemA", "_name": "figurine_a", "_parent": "figurines", "_type": "Item", "_props": {"Name": "A"}}`,
		`{"_id": "hall1", "_name": "hall_of_fame_1", "_parent": "stash", "_type": "Item", "_props": {"Slots": [{"_name": "s", "_id": "s1", "_parent": "hall1", "_props": {"filters": [{"Shift": 0, "Filter": ["itemA"]}]}}]}}`,
	} {
		var item tables.ItemTemplate
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			t.Fatalf("unmarshal template: %v", err)
		}
		db.Templates.Items[item.ID] = &item
	}
	db.Locales.Global["en"] = map[string]string{}
	db.Locales.Global["ge"] = map[string]string{}
	db.Locales.Global["fr"] = map[string]string{"painter_1 description": "Trouver de la peinture."}
	return db, tables.NewConfigs()
}

func TestApply(t *testing.T) {
	root := defaultModTree(t)
	core, logs := observer.New(zapcore.InfoLevel)
	painter := newTestPainter(t, root, zap.New(core))
	db, configs := newHostTables(t)
	routes := tables.ImageRoutes{}

	report, err := painter.Apply(db, configs, routes)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	t.Run("pre-load registrations", func(t *testing.T) {
		if got := routes["/files/trader/avatar/painter"]; got != filepath.Join(root, "res", "painter.jpg") {
			t.Fatalf("unexpected avatar route: %q", got)
		}
		want := []tables.UpdateTime{{TraderID: traderID, Seconds: tables.MinMax{Min: 2000, Max: 6600}}}
		if diff := cmp.Diff(want, configs.Trader.UpdateTime); diff != "" {
			t.Fatalf("update time mismatch (-want +got):\n%s", diff)
		}
		if db.TraderKeys["PAINTERSHOP"] != "PAINTERSHOP" {
			t.Fatalf("expected trader key alias")
		}
	})

	t.Run("trader registered", func(t *testing.T) {
		trader := db.Traders[traderID]
		if trader == nil {
			t.Fatalf("expected trader in database")
		}
		if trader.QuestAssort.Success["PA_CONTAINER"] != "painter_7" {
			t.Fatalf("unexpected quest assort: %+v", trader.QuestAssort)
		}
		if trader.QuestAssort.Started == nil || trader.QuestAssort.Fail == nil {
			t.Fatalf("expected empty started and fail maps")
		}
		if !configs.Ragfair.Traders[traderID] {
			t.Fatalf("expected trader enabled on ragfair")
		}
		for lang, table := range db.Locales.Global {
			if table[traderID+" FirstName"] != "Ivan Samoylov" || table[traderID+" FullName"] != "Painter" {
				t.Fatalf("missing trader strings in %s", lang)
			}
		}
	})

	t.Run("quests and locales", func(t *testing.T) {
		if _, ok := db.Templates.Quests["painter_1"]; !ok {
			t.Fatalf("expected painter_1 quest")
		}
		if report.Quests.FilesSkipped != 1 {
			t.Fatalf("expected empty quest file skipped, got %d", report.Quests.FilesSkipped)
		}
		if got := db.Locales.Global["ge"]["painter_1 name"]; got != "Pinsel" {
			t.Fatalf("expected own ge translation, got %q", got)
		}
		if got := db.Locales.Global["ge"]["painter_1 description"]; got != "Find paint." {
			t.Fatalf("expected en backfill in ge, got %q", got)
		}
		if got := db.Locales.Global["fr"]["painter_1 description"]; got != "Trouver de la peinture." {
			t.Fatalf("expected host fr translation kept, got %q", got)
		}
		if diff := cmp.Diff([]string{"jp"}, report.Locales.MissingLanguages); diff != "" {
			t.Fatalf("missing languages mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("quest images", func(t *testing.T) {
		if report.QuestImages != 1 {
			t.Fatalf("expected 1 quest image, got %d", report.QuestImages)
		}
		if got := routes["/files/quest/icon/painter_1"]; got != filepath.Join(root, "res", "quests", "painter_1.png") {
			t.Fatalf("unexpected quest icon route: %q", got)
		}
	})

	t.Run("custom items", func(t *testing.T) {
		if _, ok := db.Templates.Items["itemB"]; !ok {
			t.Fatalf("expected custom item")
		}
		filter := db.Templates.Items["hall1"].Props.Slots[0].Props.Filters[0].Filter
		if diff := cmp.Diff([]string{"itemA", "itemB"}, filter); diff != "" {
			t.Fatalf("hall filter mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"itemB"}, configs.Item.LootableItemBlacklist); diff != "" {
			t.Fatalf("blacklist mismatch (-want +got):\n%s", diff)
		}
	})

	if logs.FilterMessage("Painter loaded").Len() != 1 {
		t.Fatalf("expected summary log")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	root := defaultModTree(t)
	painter := newTestPainter(t, root, nil)

	once, onceConfigs := newHostTables(t)
	onceRoutes := tables.ImageRoutes{}
	if _, err := painter.Apply(once, onceConfigs, onceRoutes); err != nil {
		t.Fatalf("apply: %v", err)
	}

	twice, twiceConfigs := newHostTables(t)
	twiceRoutes := tables.ImageRoutes{}
	for i := 0; i < 2; i++ {
		if _, err := painter.Apply(twice, twiceConfigs, twiceRoutes); err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
	}

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("database changed on reload (-once +twice):\n%s", diff)
	}
	if diff := cmp.Diff(onceConfigs, twiceConfigs); diff != "" {
		t.Fatalf("configs changed on reload (-once +twice):\n%s", diff)
	}
	if diff := cmp.Diff(onceRoutes, twiceRoutes); diff != "" {
		t.Fatalf("routes changed on reload (-once +twice):\n%s", diff)
	}
}

func TestApplyErrors(t *testing.T) {
	t.Run("missing trader base", func(t *testing.T) {
		root := writeModTree(t, map[string]string{"db/assort.json": `{}`})
		db, configs := newHostTables(t)
		_, err := newTestPainter(t, root, nil).Apply(db, configs, tables.ImageRoutes{})
		if err == nil || !strings.Contains(err.Error(), "trader base") {
			t.Fatalf("expected trader base error, got %v", err)
		}
	})

	t.Run("malformed quest file", func(t *testing.T) {
		root := defaultModTree(t)
		bad := filepath.Join(root, "db", "quests", "broken.json")
		if err := os.WriteFile(bad, []byte(`{"q": `), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		db, configs := newHostTables(t)
		_, err := newTestPainter(t, root, nil).Apply(db, configs, tables.ImageRoutes{})
		if err == nil || !strings.Contains(err.Error(), "broken.json") {
			t.Fatalf("expected error naming broken.json, got %v", err)
		}
	})

	t.Run("missing clone source", func(t *testing.T) {
		root := defaultModTree(t)
		db, configs := newHostTables(t)
		delete(db.Templates.Items, "itemA")
		if _, err := newTestPainter(t, root, nil).Apply(db, configs, tables.ImageRoutes{}); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("catalog reference language differs", func(t *testing.T) {
		catalog, err := config.ParseCatalog([]byte(catalogYAML), "")
		if err != nil {
			t.Fatalf("parse catalog: %v", err)
		}
		cfg := &config.ModConfig{Locales: config.LocalesConfig{Reference: "ge"}}
		if _, err := New(cfg, catalog, nil); err == nil {
			t.Fatalf("expected reference language mismatch error")
		}
	})

	t.Run("nil config", func(t *testing.T) {
		if _, err := New(nil, &config.Catalog{}, nil); err == nil {
			t.Fatalf("expected error")
		}
	})
}
