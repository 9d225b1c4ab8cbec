package output

import (
	"encoding/json"
	"io"

	"github.com/quantmind-br/reposnap-go/internal/domain"
)

// JSONEncoder renders the snapshot as an ordered array of record objects.
type JSONEncoder struct{}

func (e *JSONEncoder) Name() string { return "json" }

func (e *JSONEncoder) Ext() string { return "json" }

// Encode writes the records as indented JSON. HTML escaping is disabled so
// content passes through as the Unicode it was read as.
func (e *JSONEncoder) Encode(w io.Writer, snap *domain.Snapshot) error {
	records := snap.Records
	if records == nil {
		records = domain.ScanResult{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
