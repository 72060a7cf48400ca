package dupe

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// DefaultWorkers is the pool size used when CPU detection reports
// nothing usable.
const DefaultWorkers = 4

// FileResult pairs a file path with the fingerprint computed from its
// contents. Results exist only for files that could be read.
type FileResult struct {
	Path        string
	Fingerprint string
}

// FileError records a file the dispatcher had to skip and why.
type FileError struct {
	Path string
	Err  error
}

// Dispatcher fans a batch of file paths out across a fixed pool of
// hashing workers and collects the results.
//
// The batch is one-shot: Run seeds the work queue with every path,
// waits for all workers to drain it, and returns the collected
// results. There is no cancellation and no per-file timeout; an
// unreadable file only shrinks the result set, it never fails the
// batch.
type Dispatcher struct {
	// Workers is the pool size. Zero or negative selects the host CPU
	// count, falling back to DefaultWorkers if detection reports less
	// than one. A pool of one degenerates to sequential hashing.
	Workers int
	// Algorithm is the fingerprint digest. The zero value is XXH64.
	Algorithm Algorithm

	hashed  atomic.Int64
	skipped atomic.Int64
	skips   []FileError
}

func (d *Dispatcher) poolSize() int {
	if d.Workers > 0 {
		return d.Workers
	}
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return DefaultWorkers
}

func hashWorker(a Algorithm, paths <-chan string, results chan<- FileResult, skips chan<- FileError, wg *sync.WaitGroup) {
	defer wg.Done()

	for path := range paths {
		sum, err := a.SumFile(path)
		if err != nil {
			skips <- FileError{Path: path, Err: err}
			continue
		}
		results <- FileResult{Path: path, Fingerprint: sum}
	}
}

// Run fingerprints every path and returns one FileResult per readable
// file, in no particular order. It blocks until every worker has
// exited; every input is processed exactly once and no result is lost
// or duplicated under any interleaving. Paths that could not be read
// are available from Skipped afterwards.
func (d *Dispatcher) Run(paths []string) []FileResult {
	workers := d.poolSize()
	pathChan := make(chan string, workers)
	resultChan := make(chan FileResult, workers)
	skipChan := make(chan FileError, workers)

	var wg sync.WaitGroup

	// Start workers
	wg.Add(workers)
	for range workers {
		go hashWorker(d.Algorithm, pathChan, resultChan, skipChan, &wg)
	}

	// Seed the queue
	go func() {
		defer close(pathChan)
		for _, path := range paths {
			pathChan <- path
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
		close(skipChan)
	}()

	results := make([]FileResult, 0, len(paths))
	d.skips = d.skips[:0]

	var chansClosed bool
	for !chansClosed {
		select {
		case res, ok := <-resultChan:
			if !ok {
				chansClosed = true
				continue
			}
			d.hashed.Add(1)
			results = append(results, res)
		case skip, ok := <-skipChan:
			if !ok {
				chansClosed = true
				continue
			}
			d.skipped.Add(1)
			d.skips = append(d.skips, skip)
		}
	}

	// Whichever channel didn't end the loop may still hold buffered
	// entries; ranging a closed channel drains them.
	for res := range resultChan {
		d.hashed.Add(1)
		results = append(results, res)
	}
	for skip := range skipChan {
		d.skipped.Add(1)
		d.skips = append(d.skips, skip)
	}

	return results
}

// Skipped reports the files the most recent Run could not read.
func (d *Dispatcher) Skipped() []FileError {
	return d.skips
}

// Hashed returns the number of files fingerprinted so far. Safe to
// read while Run is in flight.
func (d *Dispatcher) Hashed() int64 {
	return d.hashed.Load()
}

// SkipCount returns the number of files skipped so far. Safe to read
// while Run is in flight.
func (d *Dispatcher) SkipCount() int64 {
	return d.skipped.Load()
}
