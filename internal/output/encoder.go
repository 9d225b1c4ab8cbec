package output

import (
	"io"

	"github.com/quantmind-br/reposnap-go/internal/domain"
)

// Encoder renders a snapshot into one textual format. Encoders are pure:
// the same snapshot always yields the same bytes, and the snapshot is
// never mutated.
type Encoder interface {
	// Name returns the format name used for selection ("json", "md", "txt")
	Name() string
	// Ext returns the artifact file extension, without the dot
	Ext() string
	// Encode writes the rendered snapshot to w
	Encode(w io.Writer, snap *domain.Snapshot) error
}

// Encoders returns the encoder for each requested format name, in the
// requested order. Unknown names return domain.ErrNoEncoder.
func Encoders(formats []string) ([]Encoder, error) {
	all := map[string]Encoder{
		"json": &JSONEncoder{},
		"md":   &MarkdownEncoder{},
		"txt":  &TextEncoder{},
	}

	encoders := make([]Encoder, 0, len(formats))
	for _, f := range formats {
		enc, ok := all[f]
		if !ok {
			return nil, domain.ErrNoEncoder
		}
		encoders = append(encoders, enc)
	}
	return encoders, nil
}
