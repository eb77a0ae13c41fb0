package store

import (
	"context"

	"painter/internal/tables"
)

// Index is a rebuildable full-text view over the patched host tables.
type Index interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	Index(ctx context.Context, db *tables.Database) (int, error)
	Rebuild(ctx context.Context, docs []Document) error

	GetDocument(ctx context.Context, kind, key, locale string) (*Document, error)
	CountByKind(ctx context.Context) (map[string]int, error)
	Search(ctx context.Context, query, kind, locale string) ([]SearchResult, error)
}
