package store

const (
	KindQuest  = "quest"
	KindLocale = "locale"
	KindItem   = "item"
	KindTrader = "trader"
)

var Kinds = []string{KindQuest, KindLocale, KindItem, KindTrader}

// Document is one searchable row. Locale is empty for language-neutral kinds.
type Document struct {
	Kind   string
	Key    string
	Locale string
	Title  string
	Body   string
}

type SearchResult struct {
	Kind    string
	Key     string
	Locale  string
	Title   string
	Score   float64
	Snippet string
}
