package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/flowtests/internal/artifact"
	"github.com/harrison/flowtests/internal/config"
	"github.com/harrison/flowtests/internal/display"
	"github.com/harrison/flowtests/internal/logger"
	"github.com/harrison/flowtests/internal/models"
	"github.com/harrison/flowtests/internal/parser"
	"github.com/harrison/flowtests/internal/report"
)

// addConfigFlags registers the flags shared by every subcommand that reads
// the configuration.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: .flowtests/config.yaml)")
	cmd.Flags().String("subjects", "", "Subject list file")
	cmd.Flags().String("artifacts-dir", "", "Directory holding one sub-directory per subject")
	cmd.Flags().String("report", "", "HTML report path")
	cmd.Flags().String("log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.Flags().String("log-dir", "", "Directory for run logs")
}

// changedString returns a pointer to the flag value when it was set on the
// command line, nil otherwise.
func changedString(cmd *cobra.Command, name string) *string {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// loadConfig loads the config file and merges command line flags over it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	overrides := config.FlagOverrides{
		SubjectList:   changedString(cmd, "subjects"),
		ArtifactsDir:  changedString(cmd, "artifacts-dir"),
		ReportPath:    changedString(cmd, "report"),
		TransformPath: changedString(cmd, "transform"),
		ResourceRoot:  changedString(cmd, "resource-root"),
		LogLevel:      changedString(cmd, "log-level"),
		LogDir:        changedString(cmd, "log-dir"),
	}

	if timeoutStr := changedString(cmd, "timeout"); timeoutStr != nil {
		timeout, err := time.ParseDuration(*timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", *timeoutStr, err)
		}
		overrides.Timeout = &timeout
	}

	if cmd.Flags().Lookup("history") != nil && cmd.Flags().Changed("history") {
		history, _ := cmd.Flags().GetBool("history")
		overrides.History = &history
	}

	cfg.MergeWithFlags(overrides)
	return cfg, nil
}

// newLogger builds the console logger plus, when a log directory is
// configured, a file logger. The returned func closes the file logger.
func newLogger(cfg *config.Config, out io.Writer) (logger.Logger, func(), error) {
	console := logger.NewConsoleLogger(out, cfg.LogLevel)
	if cfg.LogDir == "" {
		return console, func() {}, nil
	}

	fileLogger, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file logger: %w", err)
	}
	closer := func() {
		if err := fileLogger.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
	}
	return logger.NewMultiLogger(console, fileLogger), closer, nil
}

// loadSubjects parses the subject list. It returns every subject, which is
// what the report always covers, and the subjects selected by the names
// given on the command line, warning about names that match nothing.
func loadSubjects(cfg *config.Config, whitelist []string, out io.Writer) (all, selected []models.Subject, err error) {
	all, err = parser.ParseSubjectFile(cfg.SubjectList)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse subject list: %w", err)
	}

	if unknown := parser.Unknown(all, whitelist); len(unknown) > 0 {
		display.WarnUnknownSubjects(unknown).Display(out)
	}

	return all, parser.Filter(all, whitelist), nil
}

// newAggregator builds the report aggregator for cfg, rendering the
// optional markdown header.
func newAggregator(cfg *config.Config, log report.Logger, dryRun bool) (*report.Aggregator, error) {
	var intro string
	if cfg.HeaderMarkdown != "" {
		data, err := os.ReadFile(cfg.HeaderMarkdown)
		if err != nil {
			return nil, fmt.Errorf("failed to read header markdown: %w", err)
		}
		intro, err = report.RenderIntro(data)
		if err != nil {
			return nil, fmt.Errorf("failed to render header markdown: %w", err)
		}
	}

	return &report.Aggregator{
		Store:        artifact.NewFSStore(),
		ArtifactsDir: cfg.ArtifactsDir,
		ReportPath:   cfg.ReportPath,
		Intro:        intro,
		DryRun:       dryRun,
		Logger:       log,
	}, nil
}
