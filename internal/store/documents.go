package store

import (
	"encoding/json"
	"slices"
	"strings"

	"painter/internal/locales"
	"painter/internal/tables"
)

// Documents flattens the tables into index rows, sorted by kind, key and locale.
func Documents(db *tables.Database) []Document {
	var docs []Document
	reference := db.Locales.Global[locales.Reference]

	for _, key := range sortedKeys(db.Templates.Quests) {
		docs = append(docs, Document{
			Kind:  KindQuest,
			Key:   key,
			Title: firstNonEmpty(reference[key+" name"], key),
			Body:  strings.Join(jsonStrings(db.Templates.Quests[key]), " "),
		})
	}

	for _, lang := range sortedKeys(db.Locales.Global) {
		table := db.Locales.Global[lang]
		for _, key := range sortedKeys(table) {
			docs = append(docs, Document{
				Kind:   KindLocale,
				Key:    key,
				Locale: lang,
				Title:  key,
				Body:   table[key],
			})
		}
	}

	for _, id := range sortedKeys(db.Templates.Items) {
		item := db.Templates.Items[id]
		if item == nil {
			continue
		}
		docs = append(docs, Document{
			Kind:  KindItem,
			Key:   id,
			Title: firstNonEmpty(reference[id+" Name"], item.Name),
			Body:  strings.Join([]string{item.Name, reference[id+" ShortName"], reference[id+" Description"]}, " "),
		})
	}

	for _, id := range sortedKeys(db.Traders) {
		docs = append(docs, Document{
			Kind:  KindTrader,
			Key:   id,
			Title: firstNonEmpty(reference[id+" Nickname"], id),
			Body:  strings.Join([]string{reference[id+" FullName"], reference[id+" Location"], reference[id+" Description"]}, " "),
		})
	}

	return docs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// jsonStrings collects every string value in raw, depth first, in key order.
func jsonStrings(raw json.RawMessage) []string {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}
	var out []string
	var walk func(v any)
	walk = func(v any) {
		switch t := v.(type) {
		case string:
			if t != "" {
				out = append(out, t)
			}
		case []any:
			for _, e := range t {
				walk(e)
			}
		case map[string]any:
			for _, key := range sortedKeys(t) {
				walk(t[key])
			}
		}
	}
	walk(value)
	return out
}
