package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"painter/internal/watch"
)

func watchCmd() *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-apply the mod and re-run checks whenever its db or res files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before reloading")
	return cmd
}

func runWatch(debounce time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := loadSession(configPath)
	if err != nil {
		return err
	}
	defer s.close()
	reportCheck(s)

	reload := func(ctx context.Context, changed []string) error {
		s.log.Debug("files changed", zap.Strings("paths", changed))
		if err := s.reload(); err != nil {
			return err
		}
		reportCheck(s)
		return nil
	}

	w, err := watch.New([]string{s.cfg.ModPath("db"), s.cfg.ModPath("res")}, reload, s.log)
	if err != nil {
		return err
	}
	w.SetDebounce(debounce)

	fmt.Fprintf(os.Stdout, "Watching %s for changes.\n", s.cfg.Paths.Mod)
	return w.Run(ctx)
}

func reportCheck(s *session) {
	printReport(os.Stdout, s.report)
	report, err := s.validate()
	if err != nil {
		s.log.Error("check failed", zap.Error(err))
		return
	}
	// Issues are reported, not fatal, while watching.
	_ = printValidation(os.Stdout, report)
}
