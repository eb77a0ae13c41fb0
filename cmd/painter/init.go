package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"painter/internal/config"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default painter.yaml and items.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(configPath, filepath.Join(filepath.Dir(configPath), "items.yaml"))
		},
	}
}

func runInit(configPath, catalogPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}
	if _, err := os.Stat(catalogPath); err == nil {
		return fmt.Errorf("%s already exists", catalogPath)
	}

	if err := os.WriteFile(configPath, config.DefaultModConfig(), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}
	if err := os.WriteFile(catalogPath, config.DefaultCatalog(), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", catalogPath, err)
	}

	fmt.Fprintf(os.Stdout, "Wrote %s and %s.\n", configPath, catalogPath)
	return nil
}
