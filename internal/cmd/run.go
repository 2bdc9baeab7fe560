package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrison/flowtests/internal/config"
	"github.com/harrison/flowtests/internal/display"
	"github.com/harrison/flowtests/internal/filelock"
	"github.com/harrison/flowtests/internal/history"
	"github.com/harrison/flowtests/internal/logger"
	"github.com/harrison/flowtests/internal/models"
	"github.com/harrison/flowtests/internal/runner"
)

// runLockName is the lock file in the artifacts directory held for the
// duration of a run.
const runLockName = ".flowtests.lock"

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [subject...]",
		Short: "Run the transform for each subject and write the report",
		Long: `Run the transform for every subject in the subject list, or only for
the subjects named on the command line. The report always covers the
whole subject list.

Before each subject runs, the report is rewritten from whatever is on
disk, so it stays browsable while the run is in progress. After the last
subject the report is written once more with the fresh results.

Subjects whose resource directory is missing are skipped with a warning;
their existing artifacts stay in the report.

Configuration is loaded from .flowtests/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  flowtests run                      # All subjects
  flowtests run Finder Safari        # Only these subjects
  flowtests run --timeout 2m         # Bound each transform run
  flowtests run --history            # Record metrics for 'flowtests history'`,
		RunE: runCommand,
	}

	addConfigFlags(cmd)
	cmd.Flags().String("transform", "", "Path to the transform binary")
	cmd.Flags().String("resource-root", "", "Directory containing the subject applications")
	cmd.Flags().String("timeout", "", "Maximum time for one transform run (e.g., 30s, 5m)")
	cmd.Flags().Bool("history", false, "Record this run's metrics in the history database")

	return cmd
}

// runCommand implements the run command logic
func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateForRun(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	out := cmd.OutOrStdout()

	log, closeLog, err := newLogger(cfg, out)
	if err != nil {
		return err
	}
	defer closeLog()

	subjects, selected, err := loadSubjects(cfg, args, out)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		fmt.Fprintln(out, "No subjects to run")
		return nil
	}

	if err := os.MkdirAll(cfg.ArtifactsDir, 0755); err != nil {
		return fmt.Errorf("failed to create artifacts directory: %w", err)
	}
	runLock := filelock.NewFileLock(filepath.Join(cfg.ArtifactsDir, runLockName))
	locked, err := runLock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another run is in progress (lock held on %s)", runLock.Path())
	}
	defer runLock.Unlock()

	agg, err := newAggregator(cfg, log, false)
	if err != nil {
		return err
	}

	inv := runner.NewInvoker(cfg.TransformPath, cfg.ResourceRoot, cfg.Timeout)
	progress := display.NewProgressIndicator(out, len(selected))
	progress.Start()

	// Only selected subjects are transformed; every report pass covers all of them
	failed := 0
	for _, subject := range selected {
		progress.Step(subject.RawName)

		if err := inv.CheckResources(subject); err != nil {
			if !errors.Is(err, runner.ErrMissingResources) {
				return err
			}
			display.WarnMissingResources(subject.RawName, inv.ResourceDir(subject)).Display(out)
			log.LogWarn(fmt.Sprintf("Skipping %s", inv.ResourceDir(subject)))
			continue
		}

		// Index what is there before this subject's artifacts are replaced
		if _, _, err := agg.Emit(subjects); err != nil {
			return err
		}

		log.LogTransformStart(subject, inv.ResourceDir(subject))
		result, err := inv.Invoke(cmd.Context(), subject, agg.SubjectDir(subject), out)
		if err != nil {
			return fmt.Errorf("run transform for %s: %w", subject.RawName, err)
		}
		log.LogTransformComplete(subject, result.Duration, result.Error)
		if result.Error != nil {
			failed++
		}
	}

	doc, _, err := agg.Emit(subjects)
	if err != nil {
		return err
	}

	if cfg.History.Enabled {
		if err := recordHistory(cmd, cfg, doc.Metrics, log); err != nil {
			return err
		}
	}

	progress.Complete(failed)
	if failed > 0 {
		return fmt.Errorf("%d subject(s) failed", failed)
	}
	return nil
}

// recordHistory stores the final pass's metrics under a new run id
func recordHistory(cmd *cobra.Command, cfg *config.Config, metrics *models.Metrics, log logger.Logger) error {
	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	runID, err := store.RecordRun(cmd.Context(), cfg.ReportPath, metrics)
	if err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	log.LogInfo(fmt.Sprintf("Recorded metrics for %d subject(s) as run %s", metrics.Len(), runID))
	return nil
}

