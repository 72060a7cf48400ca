package dupe

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type fakeRemover struct {
	calls []string
	errs  map[string]error
}

func (f *fakeRemover) Remove(path string) error {
	f.calls = append(f.calls, path)
	if err, ok := f.errs[path]; ok {
		return err
	}
	return nil
}

func TestDeleteAllOutcomes(t *testing.T) {
	fake := &fakeRemover{errs: map[string]error{
		"/gone.txt":   os.ErrNotExist,
		"/locked.txt": os.ErrPermission,
		"/bad.txt":    errors.New("device error"),
	}}
	paths := []string{"/ok.txt", "/gone.txt", "/locked.txt", "/bad.txt"}

	results := DeleteAll(fake, paths)

	if len(results) != len(paths) {
		t.Fatalf("DeleteAll() returned %d results, want %d", len(results), len(paths))
	}

	wantOutcomes := []Outcome{Deleted, NotFound, PermissionDenied, Failed}
	for i, res := range results {
		if res.Path != paths[i] {
			t.Errorf("result %d path = %s, want %s", i, res.Path, paths[i])
		}
		if res.Outcome != wantOutcomes[i] {
			t.Errorf("result %d outcome = %v, want %v", i, res.Outcome, wantOutcomes[i])
		}
	}
	if results[0].Err != nil {
		t.Errorf("deleted outcome carries error %v, want nil", results[0].Err)
	}
	if results[3].Err == nil {
		t.Errorf("failed outcome must carry its error")
	}
}

func TestDeleteAllNoShortCircuit(t *testing.T) {
	fake := &fakeRemover{errs: map[string]error{
		"/first.txt": os.ErrNotExist,
	}}
	paths := []string{"/first.txt", "/second.txt", "/third.txt"}

	results := DeleteAll(fake, paths)

	if !reflect.DeepEqual(fake.calls, paths) {
		t.Errorf("Remove calls = %v, want every path attempted: %v", fake.calls, paths)
	}
	if results[1].Outcome != Deleted || results[2].Outcome != Deleted {
		t.Errorf("later paths not deleted after early failure: %+v", results)
	}
}

func TestDeleteAllOnlyTouchesGivenPaths(t *testing.T) {
	fake := &fakeRemover{}
	paths := []string{"/dup/b.txt", "/dup/c.txt"}

	DeleteAll(fake, paths)

	if !reflect.DeepEqual(fake.calls, paths) {
		t.Errorf("Remove calls = %v, want exactly %v", fake.calls, paths)
	}
}

func TestDeleteAllEmpty(t *testing.T) {
	fake := &fakeRemover{}
	if results := DeleteAll(fake, nil); len(results) != 0 {
		t.Errorf("DeleteAll(nil) = %v, want no results", results)
	}
	if len(fake.calls) != 0 {
		t.Errorf("DeleteAll(nil) attempted removals: %v", fake.calls)
	}
}

func TestDeleteAllOnDisk(t *testing.T) {
	tmpDir := t.TempDir()

	keep := filepath.Join(tmpDir, "keep.txt")
	doomedA := filepath.Join(tmpDir, "doomed_a.txt")
	doomedB := filepath.Join(tmpDir, "doomed_b.txt")
	vanished := filepath.Join(tmpDir, "vanished.txt")
	for _, path := range []string{keep, doomedA, doomedB} {
		os.WriteFile(path, []byte("dup"), 0644)
	}

	results := DeleteAll(OSRemover{}, []string{doomedA, vanished, doomedB})

	wantOutcomes := []Outcome{Deleted, NotFound, Deleted}
	for i, res := range results {
		if res.Outcome != wantOutcomes[i] {
			t.Errorf("result %d (%s) outcome = %v, want %v", i, res.Path, res.Outcome, wantOutcomes[i])
		}
	}

	for _, path := range []string{doomedA, doomedB} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("%s still exists after deletion", path)
		}
	}
	if _, err := os.Stat(keep); err != nil {
		t.Errorf("untouched file %s missing: %v", keep, err)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{Deleted, "deleted"},
		{NotFound, "not found"},
		{PermissionDenied, "permission denied"},
		{Failed, "failed"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
