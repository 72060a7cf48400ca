package dupe

import (
	"path/filepath"
	"sort"
	"strings"
)

// Decision is the keep/delete split for one duplicate group. Keep is
// always a member of the group, and Delete holds exactly the remaining
// members, ordered for reproducible reporting.
type Decision struct {
	Fingerprint string   `json:"fingerprint"`
	Keep        string   `json:"keep"`
	Delete      []string `json:"delete"`
}

// Depth counts the path-separator components of a cleaned path.
// Shallower paths order first, so duplicates collapse toward the top
// of the tree.
func Depth(path string) int {
	return strings.Count(filepath.Clean(path), string(filepath.Separator))
}

// Resolve picks which member of a duplicate group survives. The
// shallowest path wins; ties fall to lexicographic order, so the same
// group yields the same keeper no matter how its members were
// assembled. Resolve performs no I/O and never invents paths.
func Resolve(fingerprint string, paths []string) Decision {
	if len(paths) == 0 {
		return Decision{Fingerprint: fingerprint}
	}

	ordered := make([]string, len(paths))
	for i, path := range paths {
		ordered[i] = filepath.Clean(path)
	}
	sort.Slice(ordered, func(i, j int) bool {
		di, dj := Depth(ordered[i]), Depth(ordered[j])
		if di != dj {
			return di < dj
		}
		return ordered[i] < ordered[j]
	})

	return Decision{
		Fingerprint: fingerprint,
		Keep:        ordered[0],
		Delete:      ordered[1:],
	}
}

// ResolveAll resolves every group, ordered by fingerprint so repeated
// runs report identically.
func ResolveAll(groups map[string][]string) []Decision {
	prints := make([]string, 0, len(groups))
	for print := range groups {
		prints = append(prints, print)
	}
	sort.Strings(prints)

	decisions := make([]Decision, 0, len(prints))
	for _, print := range prints {
		decisions = append(decisions, Resolve(print, groups[print]))
	}
	return decisions
}
