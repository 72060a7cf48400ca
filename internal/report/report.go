// Package report renders scan results for people and for machines.
// Terminal output goes through a Reporter; the JSON manifest goes
// through WriteJSON. Operational logging lives elsewhere.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/taigrr/colorhash"

	"github.com/dendrascience/dupecull/internal/dupe"
)

var (
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

// palette holds the colors used for group headers. Each fingerprint
// maps to a stable palette entry so reruns color groups identically.
var palette = []*color.Color{
	color.New(color.FgCyan, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgMagenta, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

func groupColor(fingerprint string) *color.Color {
	return palette[colorhash.HashString(fingerprint)%len(palette)]
}

// Summary aggregates the counters of one scan.
type Summary struct {
	Root             string `json:"root"`
	Algorithm        string `json:"algorithm"`
	FilesScanned     int    `json:"files_scanned"`
	FilesSkipped     int    `json:"files_skipped"`
	DuplicateGroups  int    `json:"duplicate_groups"`
	DuplicateFiles   int    `json:"duplicate_files"`
	ReclaimableBytes int64  `json:"reclaimable_bytes"`
	ElapsedMS        int64  `json:"elapsed_ms"`
}

// Reporter writes human-readable scan output to a single writer.
type Reporter struct {
	w io.Writer
}

// New returns a Reporter writing to w.
func New(w io.Writer) Reporter {
	return Reporter{w: w}
}

// Decisions prints one block per duplicate group: a colored header,
// the path being kept, and the paths slated for deletion. sizes maps
// each path to its byte size.
func (r Reporter) Decisions(decisions []dupe.Decision, sizes map[string]int64) {
	for _, d := range decisions {
		copies := 1 + len(d.Delete)
		groupColor(d.Fingerprint).Fprintf(
			r.w,
			"%s  %d copies @ %s each\n",
			d.Fingerprint,
			copies,
			Human(sizes[d.Keep]),
		)
		green.Fprintf(r.w, "  keep    %s\n", d.Keep)
		for _, p := range d.Delete {
			fmt.Fprintf(r.w, "  delete  %s\n", p)
		}
	}
}

// Summary prints the end-of-scan counters.
func (r Reporter) Summary(s Summary) {
	fmt.Fprintf(
		r.w,
		"scanned %d files (%d skipped) under %s in %dms\n",
		s.FilesScanned,
		s.FilesSkipped,
		s.Root,
		s.ElapsedMS,
	)
	if s.DuplicateGroups == 0 {
		fmt.Fprintln(r.w, "no duplicates found")
		return
	}
	bold.Fprintf(
		r.w,
		"%d duplicate groups, %d redundant copies, %s reclaimable\n",
		s.DuplicateGroups,
		s.DuplicateFiles,
		Human(s.ReclaimableBytes),
	)
}

// Deletions prints one line per deletion attempt and a closing tally.
func (r Reporter) Deletions(results []dupe.DeleteResult, sizes map[string]int64) {
	var deleted int
	var freed int64
	for _, res := range results {
		switch res.Outcome {
		case dupe.Deleted:
			deleted++
			freed += sizes[res.Path]
			green.Fprintf(r.w, "deleted %s (%s)\n", res.Path, Human(sizes[res.Path]))
		case dupe.NotFound:
			fmt.Fprintf(r.w, "not found %s\n", res.Path)
		default:
			red.Fprintf(r.w, "failed %s: %v\n", res.Path, res.Err)
		}
	}
	bold.Fprintf(r.w, "deleted %d of %d files, freed %s\n", deleted, len(results), Human(freed))
}

// Human renders a byte count with a metric suffix.
func Human(n int64) string {
	const (
		K = 1_000
		M = 1_000_000
		G = 1_000_000_000
		T = 1_000_000_000_000
	)
	switch {
	case n >= T:
		return fmt.Sprintf("%.0fT", float64(n)/T)
	case n >= G:
		return fmt.Sprintf("%.0fG", float64(n)/G)
	case n >= M:
		return fmt.Sprintf("%.0fM", float64(n)/M)
	case n >= K:
		return fmt.Sprintf("%.0fK", float64(n)/K)
	default:
		return fmt.Sprintf("%d", n)
	}
}
