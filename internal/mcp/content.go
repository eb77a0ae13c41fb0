package mcp

import (
	"context"
	"encoding/json"
	"slices"
	"strings"

	"painter/internal/config"
	"painter/internal/locales"
	"painter/internal/store"
	"painter/internal/tables"
)

// Content is the read side of the patched tables the tools expose.
type Content interface {
	Quest(id string) (json.RawMessage, bool)
	LocaleString(lang, key string) (string, bool)
	Languages() []Language
	CustomItems() []CustomItemStatus
	Trader(id string) (*TraderView, bool)
	// Reference is the language lookups default to.
	Reference() string
}

type Searcher interface {
	Search(ctx context.Context, query, kind, locale string) ([]store.SearchResult, error)
}

type Language struct {
	Code    string
	Name    string
	Strings int
}

type CustomItemStatus struct {
	ID          string
	Group       string
	Name        string
	Clone       string
	Created     bool
	FleaPrice   int
	Blacklisted bool
}

type TraderView struct {
	ID          string
	Base        json.RawMessage
	QuestAssort tables.QuestAssort
	Strings     map[string]string
	UpdateTime  *tables.MinMax
	OnRagfair   bool
}

type TableContent struct {
	db      *tables.Database
	configs *tables.Configs
	catalog *config.Catalog
}

var _ Content = (*TableContent)(nil)

func NewTableContent(db *tables.Database, configs *tables.Configs, catalog *config.Catalog) *TableContent {
	return &TableContent{db: db, configs: configs, catalog: catalog}
}

func (c *TableContent) Reference() string {
	if c.catalog == nil || c.catalog.Reference() == "" {
		return locales.Reference
	}
	return c.catalog.Reference()
}

func (c *TableContent) Quest(id string) (json.RawMessage, bool) {
	raw, ok := c.db.Templates.Quests[id]
	return raw, ok
}

func (c *TableContent) LocaleString(lang, key string) (string, bool) {
	table, ok := c.db.Locales.Global[lang]
	if !ok {
		return "", false
	}
	value, ok := table[key]
	return value, ok
}

func (c *TableContent) Languages() []Language {
	out := make([]Language, 0, len(c.db.Locales.Global))
	for code, table := range c.db.Locales.Global {
		out = append(out, Language{Code: code, Name: locales.DisplayName(code), Strings: len(table)})
	}
	slices.SortFunc(out, func(a, b Language) int {
		return strings.Compare(a.Code, b.Code)
	})
	return out
}

func (c *TableContent) CustomItems() []CustomItemStatus {
	if c.catalog == nil {
		return nil
	}
	lang := c.Reference()
	reference := c.db.Locales.Global[lang]
	out := make([]CustomItemStatus, 0, len(c.catalog.Items))
	for _, item := range c.catalog.Items {
		_, created := c.db.Templates.Items[item.ID]
		name := reference[item.ID+" Name"]
		if name == "" {
			name = item.Locales[lang].Name
		}
		out = append(out, CustomItemStatus{
			ID:          item.ID,
			Group:       item.Group,
			Name:        name,
			Clone:       item.Clone,
			Created:     created,
			FleaPrice:   c.db.Templates.Prices[item.ID],
			Blacklisted: slices.Contains(c.configs.Item.LootableItemBlacklist, item.ID),
		})
	}
	return out
}

func (c *TableContent) Trader(id string) (*TraderView, bool) {
	trader, ok := c.db.Traders[id]
	if !ok || trader == nil {
		return nil, false
	}

	view := &TraderView{
		ID:          id,
		Base:        trader.Base,
		QuestAssort: trader.QuestAssort,
		Strings:     make(map[string]string),
		OnRagfair:   c.configs.Ragfair.Traders[id],
	}
	reference := c.db.Locales.Global[c.Reference()]
	for _, field := range []string{"FullName", "FirstName", "Nickname", "Location", "Description"} {
		if value, ok := reference[id+" "+field]; ok {
			view.Strings[field] = value
		}
	}
	for _, record := range c.configs.Trader.UpdateTime {
		if record.TraderID == id {
			seconds := record.Seconds
			view.UpdateTime = &seconds
		}
	}
	return view, true
}
