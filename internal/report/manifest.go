package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/dendrascience/dupecull/internal/dupe"
)

// Manifest is the machine-readable scan result emitted by --json. It
// carries everything a follow-up script needs: which groups exist,
// what would be kept and deleted, and the scan counters.
type Manifest struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Version     string          `json:"version"`
	Summary     Summary         `json:"summary"`
	Groups      []dupe.Decision `json:"groups"`
}

// WriteJSON encodes the manifest to w.
func WriteJSON(w io.Writer, m Manifest) error {
	return json.NewEncoder(w).Encode(m)
}
