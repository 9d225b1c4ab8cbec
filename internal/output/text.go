package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/quantmind-br/reposnap-go/internal/domain"
)

// TextEncoder renders the snapshot as labeled plain-text blocks.
type TextEncoder struct{}

func (e *TextEncoder) Name() string { return "txt" }

func (e *TextEncoder) Ext() string { return "txt" }

func (e *TextEncoder) Encode(w io.Writer, snap *domain.Snapshot) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Repository: %s\n", snap.RepoName)
	fmt.Fprintf(&b, "Files: %d\n\n", len(snap.Records))

	for i, rec := range snap.Records {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Filename: %s\n", rec.Filename)
		fmt.Fprintf(&b, "Path: %s\n", rec.Path)
		fmt.Fprintf(&b, "Content:\n%s\n", rec.Content)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
