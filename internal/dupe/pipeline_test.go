package dupe

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// End-to-end over the real filesystem: hash, group, resolve, delete.
func TestDuplicatePipeline(t *testing.T) {
	tmpDir, paths := writeTree(t, map[string]string{
		"a/x.txt":     "hi",
		"a/b/y.txt":   "hi",
		"a/b/c/z.txt": "bye",
	})

	d := &Dispatcher{Workers: 2}
	results := d.Run(paths)
	if len(results) != 3 {
		t.Fatalf("Run() returned %d results, want 3", len(results))
	}

	groups := Group(results)
	if len(groups) != 1 {
		t.Fatalf("Group() produced %d groups, want 1", len(groups))
	}

	decisions := ResolveAll(groups)
	if len(decisions) != 1 {
		t.Fatalf("ResolveAll() produced %d decisions, want 1", len(decisions))
	}

	keepPath := filepath.Join(tmpDir, "a/x.txt")
	deletePath := filepath.Join(tmpDir, "a/b/y.txt")
	if decisions[0].Keep != keepPath {
		t.Errorf("keep = %s, want %s", decisions[0].Keep, keepPath)
	}
	if !reflect.DeepEqual(decisions[0].Delete, []string{deletePath}) {
		t.Errorf("delete = %v, want [%s]", decisions[0].Delete, deletePath)
	}

	outcomes := DeleteAll(OSRemover{}, decisions[0].Delete)
	if len(outcomes) != 1 || outcomes[0].Outcome != Deleted {
		t.Fatalf("DeleteAll() = %+v, want one deleted outcome", outcomes)
	}

	if _, err := os.Stat(keepPath); err != nil {
		t.Errorf("kept file missing after deletion: %v", err)
	}
	if _, err := os.Stat(deletePath); !os.IsNotExist(err) {
		t.Errorf("duplicate %s still present", deletePath)
	}
	unique := filepath.Join(tmpDir, "a/b/c/z.txt")
	if _, err := os.Stat(unique); err != nil {
		t.Errorf("unique file missing after deletion: %v", err)
	}
}

// One unreadable file must shrink the result set without forming
// groups or triggering deletions.
func TestPipelineUnreadableFile(t *testing.T) {
	_, paths := writeTree(t, map[string]string{"normal.txt": "data"})
	unreadable := filepath.Join(filepath.Dir(paths[0]), "gone.txt")

	d := &Dispatcher{Workers: 2}
	results := d.Run(append(paths, unreadable))

	if len(results) != 1 {
		t.Fatalf("Run() returned %d results, want 1", len(results))
	}
	if groups := Group(results); len(groups) != 0 {
		t.Errorf("Group() = %v, want no groups", groups)
	}
}
