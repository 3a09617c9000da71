package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"slidecast/internal/staging"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage leftover render sessions in the work directory",
	}

	sessionsCmd.AddCommand(newSessionsListCommand(ctx))
	sessionsCmd.AddCommand(newSessionsCleanCommand(ctx))

	return sessionsCmd
}

func newSessionsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List session directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			sessions, err := staging.ListSessions(cfg.Paths.WorkDir)
			if err != nil {
				return fmt.Errorf("list sessions: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No session directories found")
				return nil
			}

			var totalSize int64
			rows := make([][]string, 0, len(sessions))
			for _, session := range sessions {
				totalSize += session.Size
				rows = append(rows, []string{
					session.Name,
					humanize.Time(session.ModTime),
					humanize.Bytes(uint64(session.Size)),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Session", "Modified", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			fmt.Fprintf(out, "%d session(s), %s total\n", len(sessions), humanize.Bytes(uint64(totalSize)))
			return nil
		},
	}
}

func newSessionsCleanCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove session directories older than a cutoff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			result := staging.CleanStale(cfg.Paths.WorkDir, olderThan, logger)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed %d session(s)\n", len(result.Removed))
			for _, failure := range result.Errors {
				fmt.Fprintf(out, "failed: %s: %v\n", failure.Path, failure.Error)
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d session(s) could not be removed", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 24*time.Hour, "Remove sessions last modified before this age")
	return cmd
}
