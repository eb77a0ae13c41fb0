package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"painter/internal/store"
	"painter/internal/tables"
)

// Index replaces the index contents with the documents built from db.
func (c *Client) Index(ctx context.Context, db *tables.Database) (int, error) {
	docs := store.Documents(db)
	if err := c.Rebuild(ctx, docs); err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (c *Client) Rebuild(ctx context.Context, docs []store.Document) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO documents (kind, key, locale, title, body)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (kind, key, locale) DO UPDATE SET
		title = excluded.title,
		body = excluded.body
	`)
	if err != nil {
		return fmt.Errorf("preparing document insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range docs {
		if _, err := stmt.ExecContext(ctx, d.Kind, d.Key, d.Locale, d.Title, d.Body); err != nil {
			return fmt.Errorf("inserting %s %s: %w", d.Kind, d.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing documents: %w", err)
	}
	return nil
}

func (c *Client) GetDocument(ctx context.Context, kind, key, locale string) (*store.Document, error) {
	query := `
	SELECT kind, key, locale, title, body
	FROM documents
	WHERE kind = ? AND key = ? AND locale = ?
	`

	var d store.Document
	err := c.db.QueryRowContext(ctx, query, kind, key, locale).Scan(&d.Kind, &d.Key, &d.Locale, &d.Title, &d.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return &d, nil
}

func (c *Client) CountByKind(ctx context.Context) (map[string]int, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM documents GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("counting documents: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[kind] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating counts: %w", err)
	}
	return counts, nil
}
