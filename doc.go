// Package main provides the dupecull command-line interface.
//
// dupecull finds duplicate files in a directory tree by fingerprinting
// file content with a fast hash, then optionally deletes the redundant
// copies, keeping the path closest to the root of the tree. Hashing is
// spread across a worker pool sized to the machine, and unreadable
// files are skipped rather than aborting the scan.
//
// The main binary runs a scan by default and supports subcommands:
//   - seed: Generate a test tree with a controlled duplicate ratio
//   - history: Query the SQLite deletion history
package main
