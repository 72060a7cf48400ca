package dupe

import (
	"crypto/md5"
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// chunkSize is the buffer size used when streaming file contents
// through a digest, so memory stays bounded regardless of file size.
const chunkSize = 64 * 1024

// Algorithm selects the digest used to fingerprint file contents.
type Algorithm string

const (
	// XXH64 is the default: non-cryptographic and by far the fastest.
	XXH64 Algorithm = "xxh64"
	// MD5 for interoperability with md5sum-based inventories.
	MD5 Algorithm = "md5"
	// SHA256 for when fingerprints leave the machine or live in history.
	SHA256 Algorithm = "sha256"
)

// ParseAlgorithm validates a user-supplied algorithm name. The empty
// string selects the default.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case "":
		return XXH64, nil
	case XXH64, MD5, SHA256:
		return Algorithm(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

func (a Algorithm) digest() hash.Hash {
	switch a {
	case MD5:
		return md5.New()
	case SHA256:
		return sha256.New()
	default:
		return xxhash.New()
	}
}

// SumFile calculates the content fingerprint of the file at path.
// It returns the digest as a hexadecimal string.
//
// Any error (missing file, permission, not a regular file) is returned
// for the caller to classify. SumFile never modifies anything on disk.
func (a Algorithm) SumFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return a.sum(file)
}

// sum streams r through the digest in chunkSize reads, including the
// final short chunk.
func (a Algorithm) sum(r io.Reader) (string, error) {
	h := a.digest()
	if _, err := io.CopyBuffer(h, r, make([]byte, chunkSize)); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
