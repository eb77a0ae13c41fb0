package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"painter/internal/mcp"
	"painter/internal/store/sqlite"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP inspection server over stdio",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := loadSession(configPath)
	if err != nil {
		return err
	}
	defer s.close()

	index, err := openIndex(ctx, s)
	if err != nil {
		return err
	}
	defer index.Close(ctx)

	server := mcp.NewServer(mcp.NewTableContent(s.db, s.configs, s.catalog), index, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}

// openIndex opens the configured search index and fills it from the session's tables.
func openIndex(ctx context.Context, s *session) (*sqlite.Client, error) {
	index, err := sqlite.Open(ctx, s.cfg.Index.DSN)
	if err != nil {
		return nil, err
	}
	n, err := index.Index(ctx, s.db)
	if err != nil {
		index.Close(ctx)
		return nil, err
	}
	s.log.Debug("search index built", zap.Int("documents", n))
	return index, nil
}
