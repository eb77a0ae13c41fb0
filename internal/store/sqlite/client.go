package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"painter/internal/store"

	_ "modernc.org/sqlite"
)

var _ store.Index = (*Client)(nil)

type Client struct {
	db *sql.DB
}

func New(ctx context.Context, dsn string) (*Client, error) {
	driverDSN, err := parseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing sqlite DSN: %w", err)
	}

	db, err := sql.Open("sqlite", driverDSN)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// Every connection to :memory: opens a separate database.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}

	pragmas := []string{"PRAGMA busy_timeout = 30000;"}
	if !isMemory(driverDSN) {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL;")
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
		}
	}

	return &Client{db: db}, nil
}

// Open connects and ensures the schema in one step.
func Open(ctx context.Context, dsn string) (*Client, error) {
	client, err := New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := client.EnsureSchema(ctx); err != nil {
		client.Close(ctx)
		return nil, err
	}
	return client, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.db.Close()
}
