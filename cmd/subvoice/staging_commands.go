package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"subvoice/internal/staging"
)

func newStagingCommand(ctx *commandContext) *cobra.Command {
	stagingCmd := &cobra.Command{
		Use:   "staging",
		Short: "Manage the per-run scratch area",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	stagingCmd.AddCommand(newStagingListCommand(ctx))
	stagingCmd.AddCommand(newStagingCleanCommand(ctx))
	return stagingCmd
}

func newStagingListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scratch directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dirs, err := staging.ListDirectories(cfg.Paths.StagingDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(dirs) == 0 {
				fmt.Fprintln(out, "Scratch area is empty")
				return nil
			}
			rows := make([][]string, 0, len(dirs))
			for _, dir := range dirs {
				rows = append(rows, []string{
					dir.Name,
					dir.ModTime.Local().Format("2006-01-02 15:04"),
					fmt.Sprintf("%.1f MiB", float64(dir.Size)/(1024*1024)),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Directory", "Modified", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}

func newStagingCleanCommand(ctx *commandContext) *cobra.Command {
	var maxAgeHours int

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove scratch directories left behind by interrupted runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			result := staging.CleanStale(cfg.Paths.StagingDir, time.Duration(maxAgeHours)*time.Hour, nil)
			out := cmd.OutOrStdout()
			for _, removed := range result.Removed {
				fmt.Fprintf(out, "Removed %s\n", removed)
			}
			for _, failure := range result.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed to remove %s: %v\n", failure.Path, failure.Error)
			}
			fmt.Fprintf(out, "Removed %d scratch directories\n", len(result.Removed))
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d scratch directories could not be removed", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxAgeHours, "max-age", 24, "Remove run directories older than this many hours")
	return cmd
}
