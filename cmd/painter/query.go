package main

import "github.com/spf13/cobra"

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Inspect the patched tables from the CLI",
	}
	cmd.AddCommand(queryQuestCmd())
	cmd.AddCommand(queryLocaleCmd())
	cmd.AddCommand(queryItemsCmd())
	cmd.AddCommand(queryTraderCmd())
	cmd.AddCommand(queryLanguagesCmd())
	cmd.AddCommand(querySearchCmd())
	return cmd
}
