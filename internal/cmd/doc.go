// Package cmd provides the command-line interface implementation for dupecull.
//
// This package contains the root scan command and the subcommand
// implementations for the dupecull CLI tool. It uses the Cobra library
// for command structure and Fang for beautiful styling.
//
// The package is organized into the following commands:
//   - root: scans a directory tree and reports or deletes duplicates
//   - seed: test tree generation with a controlled duplicate ratio
//   - history: queries the SQLite deletion history
//
// Each command is implemented as a separate file with its own
// constructor function that returns a *cobra.Command. The scan pipeline
// itself lives in the walk and dupe packages; this package wires it to
// flags, configuration, confirmation prompting, reporting, and the
// optional history and metrics collaborators.
package cmd
