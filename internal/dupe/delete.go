package dupe

import "os"

// Outcome classifies one deletion attempt.
type Outcome int

const (
	Deleted Outcome = iota
	NotFound
	PermissionDenied
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Deleted:
		return "deleted"
	case NotFound:
		return "not found"
	case PermissionDenied:
		return "permission denied"
	default:
		return "failed"
	}
}

// DeleteResult records what happened to one delete candidate.
type DeleteResult struct {
	Path    string
	Outcome Outcome
	Err     error
}

// Remover abstracts file removal so deletion can be exercised against
// a fake filesystem in tests.
type Remover interface {
	Remove(path string) error
}

// OSRemover removes files from the local filesystem.
type OSRemover struct{}

func (OSRemover) Remove(path string) error {
	return os.Remove(path)
}

// DeleteAll attempts to remove every path it is given, and only those.
// It returns one result per input path, in input order. A failure on
// one path never stops the attempts on the rest. DeleteAll does not
// re-derive groups or keepers; excluding the kept path is the caller's
// job.
func DeleteAll(r Remover, paths []string) []DeleteResult {
	results := make([]DeleteResult, 0, len(paths))
	for _, path := range paths {
		err := r.Remove(path)
		switch {
		case err == nil:
			results = append(results, DeleteResult{Path: path, Outcome: Deleted})
		case os.IsNotExist(err):
			results = append(results, DeleteResult{Path: path, Outcome: NotFound, Err: err})
		case os.IsPermission(err):
			results = append(results, DeleteResult{Path: path, Outcome: PermissionDenied, Err: err})
		default:
			results = append(results, DeleteResult{Path: path, Outcome: Failed, Err: err})
		}
	}
	return results
}
