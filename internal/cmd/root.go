package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for flowtests
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flowtests",
		Short: "Visual regression harness for image transforms",
		Long: `Flowtests runs an external image transform over a list of subjects,
collects the images and metric lines each run produces, prunes stale
artifacts and renders a single HTML comparison page with a summary of
the metrics across subjects.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewReportCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewValidateCommand())

	return cmd
}
