package dupe

import "errors"

// Sentinel errors for package dupe.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Fingerprint errors
	ErrUnknownAlgorithm = errors.New("unknown fingerprint algorithm")
	ErrNotRegular       = errors.New("not a regular file")
)
