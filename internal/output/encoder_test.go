package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/reposnap-go/internal/domain"
)

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		RepoName:  "myrepo",
		RepoURL:   "https://example.com/org/myrepo",
		Branch:    "main",
		ScannedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Records: domain.ScanResult{
			domain.NewFileRecord("README.md", "hello"),
			domain.NewFileRecord("src/main.go", "package main\n"),
			domain.NewFileRecord("assets/logo.png", ""),
		},
	}
}

func TestEncodersSelection(t *testing.T) {
	t.Parallel()

	encoders, err := Encoders([]string{"json", "md", "txt"})
	require.NoError(t, err)
	require.Len(t, encoders, 3)
	assert.Equal(t, "json", encoders[0].Name())
	assert.Equal(t, "md", encoders[1].Name())
	assert.Equal(t, "txt", encoders[2].Name())

	encoders, err = Encoders([]string{"txt"})
	require.NoError(t, err)
	require.Len(t, encoders, 1)
	assert.Equal(t, "txt", encoders[0].Name())

	_, err = Encoders([]string{"xml"})
	assert.ErrorIs(t, err, domain.ErrNoEncoder)
}

func TestJSONEncoderRoundTrip(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	var buf bytes.Buffer
	require.NoError(t, (&JSONEncoder{}).Encode(&buf, snap))

	var decoded []domain.FileRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded, len(snap.Records))
	for i, rec := range snap.Records {
		assert.Equal(t, rec.Filename, decoded[i].Filename)
		assert.Equal(t, rec.Path, decoded[i].Path)
		assert.Equal(t, rec.Content, decoded[i].Content)
	}
}

func TestJSONEncoderPreservesUnicode(t *testing.T) {
	t.Parallel()

	snap := &domain.Snapshot{
		RepoName: "u",
		Records: domain.ScanResult{
			domain.NewFileRecord("jp.txt", "日本語 <b>&amp;</b> 🎉"),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, (&JSONEncoder{}).Encode(&buf, snap))

	out := buf.String()
	assert.Contains(t, out, "日本語")
	assert.Contains(t, out, "<b>&amp;</b>")
	assert.NotContains(t, out, `\u003c`)
}

func TestJSONEncoderDeterministic(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	var a, b bytes.Buffer
	require.NoError(t, (&JSONEncoder{}).Encode(&a, snap))
	require.NoError(t, (&JSONEncoder{}).Encode(&b, snap))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestJSONEncoderEmptyResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, (&JSONEncoder{}).Encode(&buf, &domain.Snapshot{RepoName: "empty"}))
	assert.Equal(t, "[]\n", buf.String())
}

func TestMarkdownEncoder(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownEncoder{}).Encode(&buf, snap))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Repository: myrepo\n"))
	assert.Contains(t, out, "| README.md | README.md |")
	assert.Contains(t, out, "| main.go | src/main.go |")

	// one table row per record
	rows := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "| ") && !strings.HasPrefix(line, "| Filename") && !strings.HasPrefix(line, "| ---") {
			rows++
		}
	}
	assert.Equal(t, len(snap.Records), rows)
	assert.Contains(t, out, "hello")
}

func TestMarkdownEncoderFenceExpansion(t *testing.T) {
	t.Parallel()

	snap := &domain.Snapshot{
		RepoName: "fences",
		Records: domain.ScanResult{
			domain.NewFileRecord("doc.md", "before\n```go\ncode\n```\nafter"),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, (&MarkdownEncoder{}).Encode(&buf, snap))
	out := buf.String()

	// the wrapping fence must be longer than the embedded triple fence
	assert.Contains(t, out, "````\n")
	assert.Contains(t, out, "```go\ncode\n```")
}

func TestFenceFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "```", fenceFor("no fences"))
	assert.Equal(t, "```", fenceFor(""))
	assert.Equal(t, "````", fenceFor("has ``` inside"))
	assert.Equal(t, "``````", fenceFor("weird `````"))
}

func TestTextEncoder(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	var buf bytes.Buffer
	require.NoError(t, (&TextEncoder{}).Encode(&buf, snap))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Repository: myrepo\n"))
	assert.Equal(t, len(snap.Records), strings.Count(out, "Filename: "))
	assert.Equal(t, len(snap.Records), strings.Count(out, "Path: "))
	assert.Equal(t, len(snap.Records), strings.Count(out, "Content:\n"))
	assert.Contains(t, out, "Filename: README.md\nPath: README.md\nContent:\nhello\n")
}

// Every encoding carries every record exactly once, in scan order.
func TestCrossEncodingConsistency(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()

	var jsonBuf, mdBuf, txtBuf bytes.Buffer
	require.NoError(t, (&JSONEncoder{}).Encode(&jsonBuf, snap))
	require.NoError(t, (&MarkdownEncoder{}).Encode(&mdBuf, snap))
	require.NoError(t, (&TextEncoder{}).Encode(&txtBuf, snap))

	var decoded []domain.FileRecord
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &decoded))
	assert.Len(t, decoded, len(snap.Records))

	md := mdBuf.String()
	txt := txtBuf.String()

	prevMD, prevTxt := -1, -1
	for i, rec := range snap.Records {
		assert.Equal(t, rec.Path, decoded[i].Path)

		posMD := strings.Index(md, "| "+rec.Path+" |")
		require.GreaterOrEqual(t, posMD, 0, "record %s missing from markdown", rec.Path)
		assert.Greater(t, posMD, prevMD, "record %s out of order in markdown", rec.Path)
		prevMD = posMD

		posTxt := strings.Index(txt, "Path: "+rec.Path+"\n")
		require.GreaterOrEqual(t, posTxt, 0, "record %s missing from text", rec.Path)
		assert.Greater(t, posTxt, prevTxt, "record %s out of order in text", rec.Path)
		prevTxt = posTxt
	}
}
