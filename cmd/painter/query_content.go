package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"painter/internal/mcp"
)

func queryQuestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quest <id>",
		Short: "Print a quest record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(configPath)
			if err != nil {
				return err
			}
			defer s.close()

			raw, ok := mcp.NewTableContent(s.db, s.configs, s.catalog).Quest(args[0])
			if !ok {
				fmt.Fprintf(os.Stdout, "No quest found for %q.\n", args[0])
				return nil
			}
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, raw, "", "  "); err != nil {
				return fmt.Errorf("formatting quest %s: %w", args[0], err)
			}
			fmt.Fprintln(os.Stdout, pretty.String())
			return nil
		},
	}
}

func queryLocaleCmd() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "locale <key>",
		Short: "Print one display string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(configPath)
			if err != nil {
				return err
			}
			defer s.close()

			content := mcp.NewTableContent(s.db, s.configs, s.catalog)
			if lang == "" {
				lang = content.Reference()
			}
			value, ok := content.LocaleString(lang, args[0])
			if !ok {
				fmt.Fprintf(os.Stdout, "No %s string for %q.\n", lang, args[0])
				return nil
			}
			fmt.Fprintln(os.Stdout, value)
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "Server language code (default: the reference language)")
	return cmd
}

func queryItemsCmd() *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List the mod's custom items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(configPath)
			if err != nil {
				return err
			}
			defer s.close()

			for _, item := range mcp.NewTableContent(s.db, s.configs, s.catalog).CustomItems() {
				if group != "" && item.Group != group {
					continue
				}
				status := "created"
				if !item.Created {
					status = "not created"
				}
				fmt.Fprintf(os.Stdout, "%s %s (%s) [%s] price=%d blacklisted=%t\n",
					item.ID, item.Name, item.Group, status, item.FleaPrice, item.Blacklisted)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "figurine or lootbox")
	return cmd
}

func queryTraderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trader [id]",
		Short: "Show the trader's display strings and refresh window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(configPath)
			if err != nil {
				return err
			}
			defer s.close()

			id := s.report.TraderID
			if len(args) == 1 {
				id = args[0]
			}
			trader, ok := mcp.NewTableContent(s.db, s.configs, s.catalog).Trader(id)
			if !ok {
				fmt.Fprintf(os.Stdout, "No trader found for %q.\n", id)
				return nil
			}

			fmt.Fprintf(os.Stdout, "ID: %s\n", trader.ID)
			for _, field := range slices.Sorted(maps.Keys(trader.Strings)) {
				fmt.Fprintf(os.Stdout, "%s: %s\n", field, trader.Strings[field])
			}
			if trader.UpdateTime != nil {
				fmt.Fprintf(os.Stdout, "Refresh: %d-%ds\n", trader.UpdateTime.Min, trader.UpdateTime.Max)
			}
			fmt.Fprintf(os.Stdout, "On ragfair: %t\n", trader.OnRagfair)
			fmt.Fprintf(os.Stdout, "Quest unlocks: %d started, %d success, %d fail\n",
				len(trader.QuestAssort.Started), len(trader.QuestAssort.Success), len(trader.QuestAssort.Fail))
			return nil
		},
	}
}

func queryLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List loaded languages with their string counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(configPath)
			if err != nil {
				return err
			}
			defer s.close()

			for _, lang := range mcp.NewTableContent(s.db, s.configs, s.catalog).Languages() {
				fmt.Fprintf(os.Stdout, "%s %s (%d strings)\n", lang.Code, lang.Name, lang.Strings)
			}
			return nil
		},
	}
}
