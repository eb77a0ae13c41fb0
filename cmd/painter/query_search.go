package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func querySearchCmd() *cobra.Command {
	var kind string
	var locale string
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search quests, locale strings, items and traders",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuerySearch(strings.Join(args, " "), kind, locale)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "quest, locale, item or trader")
	cmd.Flags().StringVar(&locale, "locale", "", "Language to filter locale strings")
	return cmd
}

func runQuerySearch(query, kind, locale string) error {
	ctx := context.Background()

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

	results, err := index.Search(ctx, query, kind, locale)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stdout, "No matches found.")
		return nil
	}

	for _, result := range results {
		location := result.Key
		if result.Locale != "" {
			location = fmt.Sprintf("%s [%s]", result.Key, result.Locale)
		}
		fmt.Fprintf(os.Stdout, "%s (%s) %s score=%.2f\n", result.Title, result.Kind, location, result.Score)
	}
	return nil
}
