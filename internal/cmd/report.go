package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewReportCommand creates the report command
func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Rebuild the HTML report from the artifacts on disk",
		Long: `Rebuild the HTML report from the artifacts already on disk without
running the transform. Stale images that belong to no iteration are
removed as part of the pass.

With --dry-run nothing is deleted or written: stale images are listed
and a summary of what the report would contain is printed.`,
		Args: cobra.NoArgs,
		RunE: reportCommand,
	}

	addConfigFlags(cmd)
	cmd.Flags().Bool("dry-run", false, "List stale files without deleting them or writing the report")

	return cmd
}

// reportCommand implements the report command logic
func reportCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	log, closeLog, err := newLogger(cfg, out)
	if err != nil {
		return err
	}
	defer closeLog()

	subjects, _, err := loadSubjects(cfg, nil, out)
	if err != nil {
		return err
	}

	agg, err := newAggregator(cfg, log, dryRun)
	if err != nil {
		return err
	}

	if dryRun {
		_, summary, err := agg.Build(subjects)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Dry run: %d of %d subject(s) would be reported, %d stale file(s) would be pruned\n",
			summary.Reported, summary.Subjects, summary.Pruned)
		return nil
	}

	_, _, err = agg.Emit(subjects)
	return err
}
