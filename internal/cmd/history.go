package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/flowtests/internal/display"
	"github.com/harrison/flowtests/internal/history"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <subject>",
		Short: "Show the recorded metrics of a subject across runs",
		Long: `Show the metric tables recorded for a subject by 'flowtests run --history'
(or history.enabled in the config), newest run first.`,
		Args: cobra.ExactArgs(1),
		RunE: historyCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .flowtests/config.yaml)")
	cmd.Flags().String("db", "", "History database path (overrides history.db_path)")

	return cmd
}

// historyCommand implements the history command logic
func historyCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dbPath := cfg.History.DBPath
	if v := changedString(cmd, "db"); v != nil {
		dbPath = *v
	}

	out := cmd.OutOrStdout()
	subject := args[0]

	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(out, "No history recorded yet (%s does not exist)\n", dbPath)
		return nil
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	records, err := store.SubjectHistory(cmd.Context(), subject)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintf(out, "No history for %s\n", subject)
		return nil
	}

	renderHistory(out, records)
	return nil
}

// renderHistory prints one row per recorded size key
func renderHistory(out io.Writer, records []history.SubjectRecord) {
	table := display.Table{Headers: []string{"RUN", "STARTED", "SIZE", "VALUES"}}
	for _, rec := range records {
		started := rec.Run.StartedAt.Local().Format("2006-01-02 15:04:05")
		for _, entry := range rec.Table {
			values := make([]string, len(entry.Value))
			for i, v := range entry.Value {
				values[i] = strconv.FormatFloat(v, 'g', -1, 64)
			}
			table.Rows = append(table.Rows, []string{
				rec.Run.ID[:8],
				started,
				strconv.Itoa(entry.Key),
				strings.Join(values, " "),
			})
		}
	}
	table.Render(out, display.ColorEnabled(out))
}
