package cmd

import (
	"github.com/dendrascience/dupecull/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the
// dupecull CLI. The root command itself runs a scan; utility
// subcommands hang off it.
func NewRootCmd() *cobra.Command {
	var opts scanOptions

	rootCmd := &cobra.Command{
		Use:   "dupecull DIRECTORY",
		Short: "dupecull - find and remove duplicate files in a directory tree",
		Long: `dupecull scans a directory tree, fingerprints every regular file, and
reports groups of files whose content is identical. With --delete it
keeps the copy closest to the root of the tree (ties broken
alphabetically) and removes the rest, after asking twice.

Files that cannot be read are skipped and reported; they never abort a
scan. Fingerprints are content hashes, so distinct files that collide
would be grouped together; with the default 64-bit hash this is
astronomically unlikely but not impossible.

Use subcommands for everything else:
  - seed: generate a test tree with a controlled duplicate ratio
  - history: show deletions recorded in the history database`,
		Version: version.GetFullVersion(),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args[0], opts)
		},
	}

	rootCmd.Flags().BoolVarP(&opts.showDuplicates, "show-duplicates", "s", false, "Print every duplicate group, not just the summary")
	rootCmd.Flags().BoolVarP(&opts.deleteFiles, "delete", "d", false, "Delete redundant copies, keeping the shallowest path per group")
	rootCmd.Flags().BoolVarP(&opts.assumeYes, "yes", "y", false, "Skip the interactive confirmation before deleting")
	rootCmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Number of hashing workers (0 = one per CPU)")
	rootCmd.Flags().StringVar(&opts.algorithm, "algorithm", "xxh64", "Fingerprint algorithm: xxh64, md5, or sha256")
	rootCmd.Flags().StringSliceVar(&opts.exclude, "exclude", nil, "Base-name globs to skip (repeatable)")
	rootCmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Write a JSON manifest to stdout instead of text output")
	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	rootCmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the scan")
	rootCmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&opts.logFormat, "log-format", "console", "Log encoding: console or json")

	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	seedCmd := NewSeedCmd()
	historyCmd := NewHistoryCmd()

	seedCmd.GroupID = groupUtilities
	historyCmd.GroupID = groupUtilities

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(historyCmd)

	return rootCmd
}
