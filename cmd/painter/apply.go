package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"painter/internal/mod"
	"painter/internal/validate"
)

func applyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Apply the mod to a host snapshot and report what changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(configPath)
			if err != nil {
				return err
			}
			defer s.close()

			printReport(os.Stdout, s.report)
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Apply the mod and run consistency checks on the patched tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(configPath)
			if err != nil {
				return err
			}
			defer s.close()

			report, err := s.validate()
			if err != nil {
				return err
			}
			return printValidation(os.Stdout, report)
		},
	}
}

func printReport(out io.Writer, report *mod.Report) {
	fmt.Fprintln(out, "Mod applied.")
	fmt.Fprintf(out, "  Trader:         %s\n", report.TraderID)
	fmt.Fprintf(out, "  Avatar route:   %s\n", report.AvatarRoute)
	if report.Quests != nil {
		fmt.Fprintf(out, "  Quest files:    %d (%d skipped)\n", report.Quests.FilesLoaded, report.Quests.FilesSkipped)
		fmt.Fprintf(out, "  Quests merged:  %d\n", report.Quests.KeysMerged)
	}
	if report.Locales != nil {
		fmt.Fprintf(out, "  Locale keys:    %d\n", report.Locales.KeysMerged)
		fmt.Fprintf(out, "  Backfilled:     %d\n", report.Locales.Backfilled)
		if len(report.Locales.MissingLanguages) > 0 {
			fmt.Fprintf(out, "  Not loaded:     %v\n", report.Locales.MissingLanguages)
		}
	}
	fmt.Fprintf(out, "  Quest images:   %d\n", report.QuestImages)
	if report.Items != nil {
		fmt.Fprintf(out, "  Custom items:   %d\n", len(report.Items.Created))
		fmt.Fprintf(out, "  Blacklisted:    %d\n", len(report.Items.Blacklisted))
		fmt.Fprintf(out, "  Loot pools:     %d\n", len(report.Items.LootPools))
		for _, id := range slices.Sorted(maps.Keys(report.Items.HallOfFame)) {
			fmt.Fprintf(out, "  Hall of fame:   %s (%d containers)\n", id, report.Items.HallOfFame[id])
		}
	}
}

func printValidation(out io.Writer, report *validate.Report) error {
	var errorIssues []validate.Issue
	var warnIssues []validate.Issue
	for _, issue := range report.Issues {
		switch issue.Severity {
		case validate.SeverityError:
			errorIssues = append(errorIssues, issue)
		case validate.SeverityWarn:
			warnIssues = append(warnIssues, issue)
		}
	}

	if len(errorIssues) == 0 && len(warnIssues) == 0 {
		fmt.Fprintln(out, "No issues found.")
		return nil
	}

	if len(errorIssues) > 0 {
		fmt.Fprintf(out, "Errors (%d):\n", len(errorIssues))
		printIssues(out, errorIssues)
	}
	if len(warnIssues) > 0 {
		if len(errorIssues) > 0 {
			fmt.Fprintln(out, "")
		}
		fmt.Fprintf(out, "Warnings (%d):\n", len(warnIssues))
		printIssues(out, warnIssues)
	}

	if len(errorIssues) > 0 {
		return fmt.Errorf("check found errors")
	}
	return nil
}

func printIssues(out io.Writer, issues []validate.Issue) {
	for _, issue := range issues {
		location := issue.Subject
		if issue.Language != "" {
			location = fmt.Sprintf("%s [%s]", issue.Subject, issue.Language)
		}
		fmt.Fprintf(out, "  - %s: %s (%s)\n", location, issue.Message, issue.Code)
	}
}
