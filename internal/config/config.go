package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// HistoryConfig represents metric history configuration
type HistoryConfig struct {
	// Enabled records every run's metrics in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the SQLite history database
	DBPath string `yaml:"db_path"`
}

// Config represents flowtests configuration options
type Config struct {
	// SubjectList is the line-oriented subject list file
	SubjectList string `yaml:"subject_list"`

	// ArtifactsDir holds one directory per subject
	ArtifactsDir string `yaml:"artifacts_dir"`

	// ReportPath is the HTML report written by every pass
	ReportPath string `yaml:"report_path"`

	// TransformPath is the external transform binary
	TransformPath string `yaml:"transform_path"`

	// ResourceRoot is where "<app>/Contents/Resources" directories live
	ResourceRoot string `yaml:"resource_root"`

	// Timeout bounds a single transform invocation (0 = no limit)
	Timeout time.Duration `yaml:"timeout"`

	// HeaderMarkdown is an optional markdown file rendered at the top of the report
	HeaderMarkdown string `yaml:"header_markdown"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written (empty = console only)
	LogDir string `yaml:"log_dir"`

	// History contains metric history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		SubjectList:   "flowtests.txt",
		ArtifactsDir:  "flowtests",
		ReportPath:    "flowtests.html",
		TransformPath: "./flow",
		ResourceRoot:  "/Applications",
		Timeout:       10 * time.Minute,
		LogLevel:      "info",
		LogDir:        ".flowtests/logs",
		History: HistoryConfig{
			Enabled: false,
			DBPath:  ".flowtests/history.db",
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Use a temporary struct to handle duration parsing
	type yamlConfig struct {
		SubjectList    string        `yaml:"subject_list"`
		ArtifactsDir   string        `yaml:"artifacts_dir"`
		ReportPath     string        `yaml:"report_path"`
		TransformPath  string        `yaml:"transform_path"`
		ResourceRoot   string        `yaml:"resource_root"`
		Timeout        string        `yaml:"timeout"`
		HeaderMarkdown string        `yaml:"header_markdown"`
		LogLevel       string        `yaml:"log_level"`
		LogDir         *string       `yaml:"log_dir"`
		History        HistoryConfig `yaml:"history"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if yamlCfg.SubjectList != "" {
		cfg.SubjectList = yamlCfg.SubjectList
	}
	if yamlCfg.ArtifactsDir != "" {
		cfg.ArtifactsDir = yamlCfg.ArtifactsDir
	}
	if yamlCfg.ReportPath != "" {
		cfg.ReportPath = yamlCfg.ReportPath
	}
	if yamlCfg.TransformPath != "" {
		cfg.TransformPath = yamlCfg.TransformPath
	}
	if yamlCfg.ResourceRoot != "" {
		cfg.ResourceRoot = yamlCfg.ResourceRoot
	}
	if yamlCfg.Timeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", yamlCfg.Timeout, err)
		}
		cfg.Timeout = timeout
	}
	if yamlCfg.HeaderMarkdown != "" {
		cfg.HeaderMarkdown = yamlCfg.HeaderMarkdown
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	// An explicit empty log_dir disables file logging
	if yamlCfg.LogDir != nil {
		cfg.LogDir = *yamlCfg.LogDir
	}

	// Only fields present in the history section override defaults
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if historySection, exists := rawMap["history"]; exists && historySection != nil {
			historyMap, _ := historySection.(map[string]interface{})

			if _, exists := historyMap["enabled"]; exists {
				cfg.History.Enabled = yamlCfg.History.Enabled
			}
			if _, exists := historyMap["db_path"]; exists {
				cfg.History.DBPath = yamlCfg.History.DBPath
			}
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .flowtests/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".flowtests", "config.yaml"))
}

// FlagOverrides carries CLI flag values; nil fields were not set on the command line
type FlagOverrides struct {
	SubjectList   *string
	ArtifactsDir  *string
	ReportPath    *string
	TransformPath *string
	ResourceRoot  *string
	Timeout       *time.Duration
	LogLevel      *string
	LogDir        *string
	History       *bool
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(f FlagOverrides) {
	if f.SubjectList != nil {
		c.SubjectList = *f.SubjectList
	}
	if f.ArtifactsDir != nil {
		c.ArtifactsDir = *f.ArtifactsDir
	}
	if f.ReportPath != nil {
		c.ReportPath = *f.ReportPath
	}
	if f.TransformPath != nil {
		c.TransformPath = *f.TransformPath
	}
	if f.ResourceRoot != nil {
		c.ResourceRoot = *f.ResourceRoot
	}
	if f.Timeout != nil {
		c.Timeout = *f.Timeout
	}
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
	if f.LogDir != nil {
		c.LogDir = *f.LogDir
	}
	if f.History != nil {
		c.History.Enabled = *f.History
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.SubjectList == "" {
		return fmt.Errorf("subject_list cannot be empty")
	}
	if c.ArtifactsDir == "" {
		return fmt.Errorf("artifacts_dir cannot be empty")
	}
	if c.ReportPath == "" {
		return fmt.Errorf("report_path cannot be empty")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	// Timeout can be 0 (no timeout) or positive, negative is invalid
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}

	return nil
}

// ValidateForRun additionally checks the settings only needed to invoke the transform
func (c *Config) ValidateForRun() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.TransformPath == "" {
		return fmt.Errorf("transform_path cannot be empty")
	}
	if c.ResourceRoot == "" {
		return fmt.Errorf("resource_root cannot be empty")
	}
	return nil
}
