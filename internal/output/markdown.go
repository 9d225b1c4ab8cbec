package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/quantmind-br/reposnap-go/internal/domain"
)

// MarkdownEncoder renders the snapshot as a document with a file table and
// a fenced content block per record.
type MarkdownEncoder struct{}

func (e *MarkdownEncoder) Name() string { return "md" }

func (e *MarkdownEncoder) Ext() string { return "md" }

func (e *MarkdownEncoder) Encode(w io.Writer, snap *domain.Snapshot) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Repository: %s\n\n", snap.RepoName)
	fmt.Fprintf(&b, "%d files.\n\n", len(snap.Records))
	b.WriteString("| Filename | Path |\n")
	b.WriteString("| --- | --- |\n")

	for _, rec := range snap.Records {
		fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(rec.Filename), escapeCell(rec.Path))
		fence := fenceFor(rec.Content)
		b.WriteString("\n")
		b.WriteString(fence)
		b.WriteString("\n")
		b.WriteString(rec.Content)
		if rec.Content != "" && !strings.HasSuffix(rec.Content, "\n") {
			b.WriteString("\n")
		}
		b.WriteString(fence)
		b.WriteString("\n\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// fenceFor returns a backtick fence longer than any backtick run in the
// content, so the block stays literal no matter what it contains.
func fenceFor(content string) string {
	longest := 0
	run := 0
	for _, r := range content {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	size := longest + 1
	if size < 3 {
		size = 3
	}
	return strings.Repeat("`", size)
}

// escapeCell keeps table cells on one row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
