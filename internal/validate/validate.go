// Package validate checks patched tables for the mod's post-load guarantees.
package validate

import (
	"fmt"
	"slices"

	"painter/internal/config"
	"painter/internal/tables"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeMissingLocale       = "missing_locale_string"
	codeItemNotCreated      = "custom_item_missing"
	codeItemNotInHandbook   = "custom_item_not_in_handbook"
	codeItemNotPriced       = "custom_item_not_priced"
	codeHallOfFameUncovered = "hall_of_fame_uncovered"
	codeTraderUnregistered  = "trader_unregistered"
	codeNotBlacklisted      = "lootable_item_not_blacklisted"
)

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	Subject  string
	Language string
}

type Report struct {
	Issues []Issue
}

func (r *Report) Count(severity Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}

func (r *Report) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// Input describes what the mod was expected to install.
type Input struct {
	DB        *tables.Database
	Configs   *tables.Configs
	Catalog   *config.Catalog
	TraderID  string
	Languages []string
	LootBoxes bool
	// LocaleKeys are the keys the reference language's files added.
	LocaleKeys []string
}

func Run(in Input) (*Report, error) {
	if in.DB == nil || in.Configs == nil {
		return nil, fmt.Errorf("tables are required")
	}
	if in.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}

	languages := loadedLanguages(in.DB, in.Languages)
	issues := make([]Issue, 0)
	issues = append(issues, checkLocaleCoverage(in.DB, languages, in.LocaleKeys)...)
	issues = append(issues, checkCustomItems(in, languages)...)
	if in.TraderID != "" {
		issues = append(issues, checkTrader(in, languages)...)
	}
	return &Report{Issues: issues}, nil
}

// loadedLanguages keeps the configured languages the host actually loaded.
func loadedLanguages(db *tables.Database, languages []string) []string {
	var out []string
	for _, lang := range languages {
		if _, ok := db.Locales.Global[lang]; ok {
			out = append(out, lang)
		}
	}
	return out
}

func checkLocaleCoverage(db *tables.Database, languages, keys []string) []Issue {
	sorted := slices.Sorted(slices.Values(keys))

	var issues []Issue
	for _, lang := range languages {
		table := db.Locales.Global[lang]
		for _, key := range sorted {
			if _, ok := table[key]; ok {
				continue
			}
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeMissingLocale,
				Message:  fmt.Sprintf("locale key %q missing", key),
				Subject:  key,
				Language: lang,
			})
		}
	}
	return issues
}

func checkCustomItems(in Input, languages []string) []Issue {
	var issues []Issue
	for _, item := range in.Catalog.Items {
		if item.Group == config.GroupLootBox && !in.LootBoxes {
			continue
		}

		if _, ok := in.DB.Templates.Items[item.ID]; !ok {
			issues = append(issues, itemIssue(SeverityError, codeItemNotCreated, item.ID, "custom item not in templates"))
			continue
		}
		if _, ok := in.DB.Templates.Handbook.Find(item.ID); !ok {
			issues = append(issues, itemIssue(SeverityError, codeItemNotInHandbook, item.ID, "custom item not in handbook"))
		}
		if _, ok := in.DB.Templates.Prices[item.ID]; !ok {
			issues = append(issues, itemIssue(SeverityError, codeItemNotPriced, item.ID, "custom item has no flea price"))
		}

		issues = append(issues, checkLocaleCoverage(in.DB, languages, []string{
			item.ID + " Name",
			item.ID + " ShortName",
			item.ID + " Description",
		})...)

		if item.HallOfFame && !acceptedByAny(in.DB, in.Catalog.HallOfFame, item.ID) {
			issues = append(issues, itemIssue(SeverityWarn, codeHallOfFameUncovered, item.ID, "no hall of fame slot accepts the item"))
		}
		if !item.IsLootable() && !slices.Contains(in.Configs.Item.LootableItemBlacklist, item.ID) {
			issues = append(issues, itemIssue(SeverityError, codeNotBlacklisted, item.ID, "non-lootable item missing from lootable blacklist"))
		}
	}
	return issues
}

func acceptedByAny(db *tables.Database, containerIDs []string, itemID string) bool {
	for _, id := range containerIDs {
		container := db.Templates.Items[id]
		if container == nil {
			continue
		}
		for _, slot := range container.Props.Slots {
			for _, filter := range slot.Props.Filters {
				if slices.Contains(filter.Filter, itemID) {
					return true
				}
			}
		}
	}
	return false
}

func checkTrader(in Input, languages []string) []Issue {
	id := in.TraderID
	var issues []Issue
	if _, ok := in.DB.Traders[id]; !ok {
		issues = append(issues, itemIssue(SeverityError, codeTraderUnregistered, id, "trader not in traders table"))
	}
	if !in.Configs.Ragfair.Traders[id] {
		issues = append(issues, itemIssue(SeverityError, codeTraderUnregistered, id, "trader not enabled on ragfair"))
	}
	registered := false
	for _, record := range in.Configs.Trader.UpdateTime {
		if record.TraderID == id {
			registered = true
		}
	}
	if !registered {
		issues = append(issues, itemIssue(SeverityError, codeTraderUnregistered, id, "trader has no refresh window"))
	}
	issues = append(issues, checkLocaleCoverage(in.DB, languages, []string{
		id + " FullName",
		id + " FirstName",
		id + " Nickname",
		id + " Location",
		id + " Description",
	})...)
	return issues
}

func itemIssue(severity Severity, code, subject, message string) Issue {
	return Issue{
		Severity: severity,
		Code:     code,
		Message:  message,
		Subject:  subject,
	}
}
