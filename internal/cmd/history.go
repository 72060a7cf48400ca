package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dendrascience/dupecull/internal/config"
	"github.com/dendrascience/dupecull/internal/history"
	"github.com/dendrascience/dupecull/internal/report"
)

// NewHistoryCmd creates and returns the history subcommand. It reads
// the deletion history database written by scans run with --delete.
func NewHistoryCmd() *cobra.Command {
	var (
		dbPath     string
		configPath string
		limit      int
		failedOnly bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show deletions recorded by previous runs",
		Long: `Show recent records from the deletion history database.

Scans run with --delete append one record per deletion attempt when
history_path is set in the config file. This command lists the most
recent records, newest first, along with the total bytes freed so far.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, dbPath, configPath, limit, failedOnly)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the history database")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records to show")
	cmd.Flags().BoolVar(&failedOnly, "failed-only", false, "Show only deletion attempts that failed")

	return cmd
}

func runHistory(cmd *cobra.Command, dbPath, configPath string, limit int, failedOnly bool) error {
	if dbPath == "" && configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		dbPath = cfg.HistoryPath
	}
	if dbPath == "" {
		return errors.New("no history database: pass --db or set history_path in the config file")
	}

	db, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	var records []history.Record
	if failedOnly {
		records, err = db.Failures(limit)
	} else {
		records, err = db.Recent(limit)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "no records")
		return nil
	}

	for _, rec := range records {
		line := fmt.Sprintf("%s  %-17s  %s",
			rec.Timestamp.Format(time.RFC3339), rec.Outcome, rec.Path)
		if rec.ErrorMsg != "" {
			line += "  (" + rec.ErrorMsg + ")"
		}
		fmt.Fprintln(out, line)
	}

	freed, err := db.TotalFreed()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "total freed: %s\n", report.Human(freed))
	return nil
}
