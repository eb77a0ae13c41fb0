// Package items creates the mod's custom items by cloning host templates.
package items

import (
	"errors"
	"fmt"

	"painter/internal/config"
	"painter/internal/locales"
	"painter/internal/tables"
)

var ErrTemplateNotFound = errors.New("template not found")

// CreateFromClone deep-copies the item's clone source under the item's id and
// registers it in the handbook, the price table and every loaded language.
// Languages the item has no entry for get the reference language's entry.
// An existing template with the same id is replaced.
func CreateFromClone(db *tables.Database, item config.CustomItem, reference string) error {
	source, ok := db.Templates.Items[item.Clone]
	if !ok || source == nil {
		return fmt.Errorf("cloning %s from %s: %w", item.ID, item.Clone, ErrTemplateNotFound)
	}

	clone, err := source.Clone()
	if err != nil {
		return fmt.Errorf("cloning %s from %s: %w", item.ID, item.Clone, err)
	}
	clone.ID = item.ID
	if item.Parent != "" {
		clone.Parent = item.Parent
	}
	for key, value := range item.Overrides {
		if err := clone.Props.Set(key, value); err != nil {
			return fmt.Errorf("cloning %s: override %s: %w", item.ID, key, err)
		}
	}
	db.Templates.Items[item.ID] = clone

	db.Templates.Handbook.Upsert(tables.HandbookItem{
		ID:       item.ID,
		ParentID: item.HandbookParent,
		Price:    item.HandbookPrice,
	})
	db.Templates.Prices[item.ID] = item.FleaPrice

	addLocales(db.Locales.Global, item, reference)
	return nil
}

func addLocales(global tables.LocaleSet, item config.CustomItem, reference string) {
	if reference == "" {
		reference = locales.Reference
	}
	fallback := item.Locales[reference]
	for lang, table := range global {
		if table == nil {
			continue
		}
		entry, ok := item.Locales[lang]
		if !ok {
			entry = fallback
		}
		table[item.ID+" Name"] = entry.Name
		table[item.ID+" ShortName"] = entry.ShortName
		table[item.ID+" Description"] = entry.Description
	}
}
