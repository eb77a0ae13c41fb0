// Package tables models the host server's in-memory database and config tables.
// The mod receives these by reference and mutates them in place; nothing here
// owns their lifetime.
package tables

import (
	"encoding/json"
	"iter"
)

// ContentTable maps an opaque key to a structured record (quests, trader data).
type ContentTable map[string]json.RawMessage

// LocaleSet maps a language code to that language's display strings.
type LocaleSet map[string]map[string]string

type Database struct {
	Templates  Templates
	Locales    Locales
	Traders    map[string]*Trader
	TraderKeys map[string]string
}

type Templates struct {
	Items    map[string]*ItemTemplate
	Quests   ContentTable
	Handbook Handbook
	Prices   map[string]int
}

type Locales struct {
	Global LocaleSet
}

type Trader struct {
	Assort      json.RawMessage `json:"assort"`
	Base        json.RawMessage `json:"base"`
	QuestAssort QuestAssort     `json:"questassort"`
}

type QuestAssort struct {
	Started map[string]string `json:"started"`
	Success map[string]string `json:"success"`
	Fail    map[string]string `json:"fail"`
}

type Handbook struct {
	Categories []json.RawMessage `json:"Categories"`
	Items      []HandbookItem    `json:"Items"`
}

type HandbookItem struct {
	ID       string `json:"Id"`
	ParentID string `json:"ParentId"`
	Price    int    `json:"Price"`
}

func NewDatabase() *Database {
	return &Database{
		Templates: Templates{
			Items:  make(map[string]*ItemTemplate),
			Quests: make(ContentTable),
			Prices: make(map[string]int),
		},
		Locales:    Locales{Global: make(LocaleSet)},
		Traders:    make(map[string]*Trader),
		TraderKeys: make(map[string]string),
	}
}

// Upsert replaces the entry with the same id or appends a new one.
func (h *Handbook) Upsert(item HandbookItem) {
	for i := range h.Items {
		if h.Items[i].ID == item.ID {
			h.Items[i] = item
			return
		}
	}
	h.Items = append(h.Items, item)
}

func (h *Handbook) Find(id string) (HandbookItem, bool) {
	for _, item := range h.Items {
		if item.ID == id {
			return item, true
		}
	}
	return HandbookItem{}, false
}

// Overlay writes every pair of src onto dst, last write wins, and returns the
// number of pairs written.
func Overlay[V any](dst map[string]V, src iter.Seq2[string, V]) int {
	written := 0
	for key, value := range src {
		dst[key] = value
		written++
	}
	return written
}
