package validate

import (
	"testing"

	"painter/internal/config"
	"painter/internal/tables"
)

const testCatalog = `version: 1
hall_of_fame: [hall1]
items:
  - id: itemB
    group: figurine
    clone: itemA
    flea_price: 69
    handbook_price: 69
    hall_of_fame: true
    lootable: false
    locales:
      en: { name: B, short_name: B, description: B }
  - id: box
    group: lootbox
    clone: crate
    flea_price: 10
    handbook_price: 10
    locales:
      en: { name: Box, short_name: Box, description: Box }
`

// patchedTables returns tables as a successful load leaves them.
func patchedTables(t *testing.T) (*tables.Database, *tables.Configs, *config.Catalog) {
	t.Helper()
	catalog, err := config.ParseCatalog([]byte(testCatalog), "")
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}

	db := tables.NewDatabase()
	configs := tables.NewConfigs()

	db.Templates.Items["itemB"] = &tables.ItemTemplate{ID: "itemB"}
	db.Templates.Items["hall1"] = &tables.ItemTemplate{
		ID: "hall1",
		Props: tables.ItemProps{Slots: []tables.Slot{{
			Props: tables.SlotProps{Filters: []tables.Filter{{Filter: []string{"itemA", "itemB"}}}},
		}}},
	}
	db.Templates.Handbook.Upsert(tables.HandbookItem{ID: "itemB", Price: 69})
	db.Templates.Prices["itemB"] = 69
	db.Traders["painter"] = &tables.Trader{}
	configs.Ragfair.Traders["painter"] = true
	configs.Trader.SetUpdateTime(tables.UpdateTime{TraderID: "painter", Seconds: tables.MinMax{Min: 2000, Max: 6600}})
	configs.Item.LootableItemBlacklist = []string{"itemB"}

	for _, lang := range []string{"en", "ge"} {
		db.Locales.Global[lang] = map[string]string{
			"painter_1 name":      "Brush Up",
			"itemB Name":          "B",
			"itemB ShortName":     "B",
			"itemB Description":   "B",
			"painter FullName":    "Painter",
			"painter FirstName":   "Ivan",
			"painter Nickname":    "Painter",
			"painter Location":    "Tarkov",
			"painter Description": "A master craftsman.",
		}
	}
	return db, configs, catalog
}

func input(db *tables.Database, configs *tables.Configs, catalog *config.Catalog) Input {
	return Input{
		DB:         db,
		Configs:    configs,
		Catalog:    catalog,
		TraderID:   "painter",
		Languages:  []string{"en", "ge", "jp"},
		LocaleKeys: []string{"painter_1 name"},
	}
}

func TestRun_Clean(t *testing.T) {
	db, configs, catalog := patchedTables(t)

	report, err := Run(input(db, configs, catalog))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("expected no issues, got %+v", report.Issues)
	}
}

func TestRun_MissingLocale(t *testing.T) {
	db, configs, catalog := patchedTables(t)
	delete(db.Locales.Global["ge"], "painter_1 name")

	report, err := Run(input(db, configs, catalog))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	issue, ok := findIssue(report.Issues, codeMissingLocale)
	if !ok {
		t.Fatalf("expected missing locale issue")
	}
	if issue.Language != "ge" || issue.Subject != "painter_1 name" {
		t.Fatalf("unexpected issue: %+v", issue)
	}
	if !report.HasErrors() {
		t.Fatalf("expected errors")
	}
}

func TestRun_CustomItemChecks(t *testing.T) {
	t.Run("not created", func(t *testing.T) {
		db, configs, catalog := patchedTables(t)
		delete(db.Templates.Items, "itemB")
		report := mustRun(t, input(db, configs, catalog))
		if !hasIssueCode(report.Issues, codeItemNotCreated) {
			t.Fatalf("expected custom item missing issue")
		}
	})

	t.Run("not priced", func(t *testing.T) {
		db, configs, catalog := patchedTables(t)
		delete(db.Templates.Prices, "itemB")
		report := mustRun(t, input(db, configs, catalog))
		if !hasIssueCode(report.Issues, codeItemNotPriced) {
			t.Fatalf("expected price issue")
		}
	})

	t.Run("not in handbook", func(t *testing.T) {
		db, configs, catalog := patchedTables(t)
		db.Templates.Handbook.Items = nil
		report := mustRun(t, input(db, configs, catalog))
		if !hasIssueCode(report.Issues, codeItemNotInHandbook) {
			t.Fatalf("expected handbook issue")
		}
	})

	t.Run("hall of fame uncovered is a warning", func(t *testing.T) {
		db, configs, catalog := patchedTables(t)
		db.Templates.Items["hall1"].Props.Slots[0].Props.Filters[0].Filter = []string{"itemA"}
		report := mustRun(t, input(db, configs, catalog))
		if !hasIssueCode(report.Issues, codeHallOfFameUncovered) {
			t.Fatalf("expected hall of fame issue")
		}
		if report.HasErrors() || report.Count(SeverityWarn) != 1 {
			t.Fatalf("expected a single warning, got %+v", report.Issues)
		}
	})

	t.Run("not blacklisted", func(t *testing.T) {
		db, configs, catalog := patchedTables(t)
		configs.Item.LootableItemBlacklist = nil
		report := mustRun(t, input(db, configs, catalog))
		if !hasIssueCode(report.Issues, codeNotBlacklisted) {
			t.Fatalf("expected blacklist issue")
		}
	})

	t.Run("loot boxes checked only when enabled", func(t *testing.T) {
		db, configs, catalog := patchedTables(t)
		in := input(db, configs, catalog)
		in.LootBoxes = true
		report := mustRun(t, in)
		issue, ok := findIssue(report.Issues, codeItemNotCreated)
		if !ok || issue.Subject != "box" {
			t.Fatalf("expected missing box issue, got %+v", report.Issues)
		}
	})
}

func TestRun_TraderUnregistered(t *testing.T) {
	db, configs, catalog := patchedTables(t)
	delete(db.Traders, "painter")
	delete(configs.Ragfair.Traders, "painter")
	configs.Trader.UpdateTime = nil

	report := mustRun(t, input(db, configs, catalog))
	n := 0
	for _, issue := range report.Issues {
		if issue.Code == codeTraderUnregistered {
			n++
		}
	}
	if n != 3 {
		t.Fatalf("expected 3 trader issues, got %d: %+v", n, report.Issues)
	}
}

func TestRun_RequiresTables(t *testing.T) {
	if _, err := Run(Input{}); err == nil {
		t.Fatalf("expected error")
	}
}

func mustRun(t *testing.T, in Input) *Report {
	t.Helper()
	report, err := Run(in)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return report
}

func findIssue(issues []Issue, code string) (Issue, bool) {
	for _, issue := range issues {
		if issue.Code == code {
			return issue, true
		}
	}
	return Issue{}, false
}

func hasIssueCode(issues []Issue, code string) bool {
	_, ok := findIssue(issues, code)
	return ok
}
