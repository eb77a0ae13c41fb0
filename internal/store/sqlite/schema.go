package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS documents (
		id     INTEGER PRIMARY KEY AUTOINCREMENT,
		kind   TEXT NOT NULL,
		key    TEXT NOT NULL,
		locale TEXT NOT NULL DEFAULT '',
		title  TEXT NOT NULL DEFAULT '',
		body   TEXT NOT NULL DEFAULT '',
		CONSTRAINT uq_document UNIQUE (kind, key, locale)
	);

	CREATE INDEX IF NOT EXISTS idx_documents_kind ON documents (kind);
	CREATE INDEX IF NOT EXISTS idx_documents_locale ON documents (locale);
	CREATE INDEX IF NOT EXISTS idx_documents_kind_locale ON documents (kind, locale);

	CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
		key,
		title,
		body,
		content=documents,
		content_rowid=id
	);

	CREATE TRIGGER IF NOT EXISTS documents_ai AFTER INSERT ON documents BEGIN
		INSERT INTO documents_fts(rowid, key, title, body)
		VALUES (new.id, new.key, new.title, new.body);
	END;

	CREATE TRIGGER IF NOT EXISTS documents_ad AFTER DELETE ON documents BEGIN
		INSERT INTO documents_fts(documents_fts, rowid, key, title, body)
		VALUES ('delete', old.id, old.key, old.title, old.body);
	END;

	CREATE TRIGGER IF NOT EXISTS documents_au AFTER UPDATE ON documents BEGIN
		INSERT INTO documents_fts(documents_fts, rowid, key, title, body)
		VALUES ('delete', old.id, old.key, old.title, old.body);
		INSERT INTO documents_fts(rowid, key, title, body)
		VALUES (new.id, new.key, new.title, new.body);
	END;
	`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	statements := splitStatements(ddl)
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}

// splitStatements splits on trailing semicolons, keeping trigger bodies
// (BEGIN ... END;) in one statement.
func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder
	inBody := false

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		upper := strings.ToUpper(stripped)
		switch {
		case strings.HasSuffix(upper, " BEGIN"):
			inBody = true
		case inBody && upper == "END;":
			inBody = false
			statements = append(statements, current.String())
			current.Reset()
		case !inBody && strings.HasSuffix(stripped, ";"):
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if strings.TrimSpace(current.String()) != "" {
		statements = append(statements, current.String())
	}

	return statements
}
