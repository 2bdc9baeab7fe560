package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/flowtests/internal/config"
	"github.com/harrison/flowtests/internal/parser"
	"github.com/harrison/flowtests/internal/runner"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and the subject list",
		Long: `Load the configuration and parse the subject list, checking for:
  - Malformed subject lines (reported with their line number)
  - Duplicate subject names
  - Invalid configuration values

Subjects whose resource directory is missing are listed as warnings;
'flowtests run' skips them.

Exit code: 0 if valid, 1 if errors found`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return validateWithOutput(cfg, cmd.OutOrStdout())
		},
	}

	addConfigFlags(cmd)
	cmd.Flags().String("resource-root", "", "Directory containing the subject applications")

	return cmd
}

// validateWithOutput validates cfg and its subject list, writing a report to output
func validateWithOutput(cfg *config.Config, output io.Writer) error {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(output, "✗ Validation failed: %v\n", err)
		return fmt.Errorf("invalid configuration: %w", err)
	}

	subjects, err := parser.ParseSubjectFile(cfg.SubjectList)
	if err != nil {
		fmt.Fprintf(output, "✗ Validation failed: %v\n", err)
		return err
	}

	fmt.Fprintf(output, "Parsed %d subject(s) from %s\n", len(subjects), cfg.SubjectList)

	if cfg.ResourceRoot != "" {
		inv := runner.NewInvoker(cfg.TransformPath, cfg.ResourceRoot, cfg.Timeout)
		for _, subject := range subjects {
			if err := inv.CheckResources(subject); err != nil {
				fmt.Fprintf(output, "  warning: %s: %v\n", subject.RawName, err)
			}
		}
	}

	fmt.Fprintln(output, "✓ Subject list is valid")
	return nil
}
