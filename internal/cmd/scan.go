package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dendrascience/dupecull/internal/config"
	"github.com/dendrascience/dupecull/internal/dupe"
	"github.com/dendrascience/dupecull/internal/history"
	"github.com/dendrascience/dupecull/internal/logging"
	"github.com/dendrascience/dupecull/internal/metrics"
	"github.com/dendrascience/dupecull/internal/report"
	"github.com/dendrascience/dupecull/internal/walk"
	"github.com/dendrascience/dupecull/version"
)

// scanOptions holds the flags of the root scan command.
type scanOptions struct {
	showDuplicates bool
	deleteFiles    bool
	assumeYes      bool
	workers        int
	algorithm      string
	exclude        []string
	jsonOut        bool
	configPath     string
	metricsAddr    string
	logLevel       string
	logFormat      string
}

// resolveConfig merges the optional config file with the command line.
// Flags set explicitly win over file values.
func resolveConfig(cmd *cobra.Command, opts scanOptions) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("algorithm") {
		cfg.Algorithm = opts.algorithm
	}
	if flags.Changed("exclude") {
		cfg.Exclude = opts.exclude
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = opts.metricsAddr
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = opts.logFormat
	}

	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers cannot be negative: %d", cfg.Workers)
	}
	return cfg, nil
}

func runScan(cmd *cobra.Command, root string, opts scanOptions) error {
	start := time.Now()

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	if err := logging.Init(cfg.Log); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Sync()

	algo, err := dupe.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return err
	}

	// Collaborators that must work before any file is touched.
	var db *history.DB
	if opts.deleteFiles && cfg.HistoryPath != "" {
		db, err = history.Open(cfg.HistoryPath)
		if err != nil {
			return fmt.Errorf("open history db: %w", err)
		}
		defer db.Close()
	}

	metricsOn := cfg.MetricsAddr != ""
	if metricsOn {
		metrics.Init()
		if err := metrics.StartServer(cfg.MetricsAddr); err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		defer metrics.Shutdown(context.Background())
	}

	found, err := walk.Collect(root, cfg.Exclude)
	if err != nil {
		return err
	}
	for _, skip := range found.Skipped {
		logging.Warn("cannot read", zap.String("path", skip.Path), zap.Error(skip.Err))
	}

	dispatcher := &dupe.Dispatcher{Workers: cfg.Workers, Algorithm: algo}
	results := dispatcher.Run(found.Paths())
	for _, skip := range dispatcher.Skipped() {
		logging.Warn("cannot fingerprint", zap.String("path", skip.Path), zap.Error(skip.Err))
	}

	sizes := found.Sizes()
	groups := dupe.Group(results)
	decisions := dupe.ResolveAll(groups)

	var redundant int
	var reclaimable int64
	for _, d := range decisions {
		redundant += len(d.Delete)
		for _, p := range d.Delete {
			reclaimable += sizes[p]
		}
	}

	skipped := len(found.Skipped) + len(dispatcher.Skipped())
	summary := report.Summary{
		Root:             found.Root,
		Algorithm:        string(algo),
		FilesScanned:     len(results),
		FilesSkipped:     skipped,
		DuplicateGroups:  len(decisions),
		DuplicateFiles:   redundant,
		ReclaimableBytes: reclaimable,
		ElapsedMS:        time.Since(start).Milliseconds(),
	}

	logging.Info("scan complete",
		zap.Int("files", len(results)),
		zap.Int("skipped", skipped),
		zap.Int("groups", len(decisions)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if metricsOn {
		metrics.FilesHashedTotal.Add(float64(len(results)))
		for _, res := range results {
			metrics.BytesHashedTotal.Add(float64(sizes[res.Path]))
		}
		metrics.FilesSkippedTotal.Add(float64(skipped))
		metrics.DuplicateGroups.Set(float64(len(decisions)))
	}

	out := cmd.OutOrStdout()
	rep := report.New(out)

	if opts.jsonOut {
		manifest := report.Manifest{
			GeneratedAt: time.Now().UTC(),
			Version:     version.GetVersion(),
			Summary:     summary,
			Groups:      decisions,
		}
		if err := report.WriteJSON(out, manifest); err != nil {
			return err
		}
	} else {
		if opts.showDuplicates {
			rep.Decisions(decisions, sizes)
		}
		rep.Summary(summary)
	}

	if !opts.deleteFiles || redundant == 0 {
		return nil
	}

	// Flatten the per-group delete lists in decision order so the
	// deletion pass and its report are reproducible.
	doomed := make([]string, 0, redundant)
	origin := make(map[string]dupe.Decision, redundant)
	for _, d := range decisions {
		for _, p := range d.Delete {
			doomed = append(doomed, p)
			origin[p] = d
		}
	}

	if !opts.assumeYes {
		promptOut := out
		if opts.jsonOut {
			// Keep stdout parseable; talk to the user on stderr.
			promptOut = cmd.ErrOrStderr()
		}
		stdin := bufio.NewScanner(cmd.InOrStdin())
		first := fmt.Sprintf("delete %d files, freeing %s?", len(doomed), report.Human(reclaimable))
		if !confirm(stdin, promptOut, first) || !confirm(stdin, promptOut, "really delete?") {
			fmt.Fprintln(promptOut, "aborted, nothing deleted")
			return nil
		}
	}

	delResults := dupe.DeleteAll(dupe.OSRemover{}, doomed)

	var deleted int
	var freed int64
	for _, res := range delResults {
		if res.Outcome == dupe.Deleted {
			deleted++
			freed += sizes[res.Path]
			logging.Debug("deleted", zap.String("path", res.Path))
		} else {
			logging.Warn("delete failed",
				zap.String("path", res.Path),
				zap.String("outcome", res.Outcome.String()),
				zap.Error(res.Err),
			)
		}
		if db != nil {
			d := origin[res.Path]
			if err := db.Record(res, d.Fingerprint, d.Keep, sizes[res.Path]); err != nil {
				logging.Error("history record", zap.String("path", res.Path), zap.Error(err))
			}
		}
	}

	if !opts.jsonOut {
		rep.Deletions(delResults, sizes)
	}

	if metricsOn {
		metrics.FilesDeletedTotal.Add(float64(deleted))
		metrics.BytesFreedTotal.Add(float64(freed))
	}

	logging.Info("deletion complete",
		zap.Int("deleted", deleted),
		zap.Int("failed", len(delResults)-deleted),
		zap.Int64("freed", freed),
	)
	return nil
}

// confirm prints prompt and reads one line from in. Only an explicit
// y or yes counts; anything else, including EOF, declines.
func confirm(in *bufio.Scanner, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	if !in.Scan() {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(in.Text())) {
	case "y", "yes":
		return true
	}
	return false
}
