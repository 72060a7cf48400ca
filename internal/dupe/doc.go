// Package dupe implements the concurrent fingerprinting engine and
// duplicate-resolution policy at the heart of dupecull.
//
// The package takes a flat list of regular-file paths (produced by the
// walker), fingerprints their contents across a fixed pool of workers,
// groups files whose fingerprints match, and decides deterministically
// which member of each group survives. It also carries out the
// resulting deletions, one outcome per candidate.
//
// Key Components:
//
// Fingerprinting:
//   - Algorithm selects the content digest (xxh64 default, md5, sha256)
//   - Streaming chunked reads bound memory for arbitrarily large files
//   - Unreadable files are skipped per file, never failing a batch
//
// Work Distribution:
//   - Dispatcher fans paths out over a fixed worker pool sized from the
//     host CPU count, overridable down to a single worker
//   - One-shot fork/join batch: Run returns only after every worker has
//     drained the shared queue and every result has been collected
//   - No result is lost or duplicated under any interleaving
//
// Duplicate Resolution:
//   - Group indexes results by fingerprint and keeps shared ones
//   - Resolve picks the shallowest path as the keeper, breaking ties
//     lexicographically so reruns always agree
//   - DeleteAll removes candidates independently and reports a
//     per-path outcome, never touching paths it was not handed
//
// Fingerprints are duplicate-detection keys, not security primitives.
// Equal fingerprints are treated as identical content with no
// byte-for-byte confirmation; the collision probability of the offered
// digests is negligible for local file sets, but it is not zero.
package dupe
