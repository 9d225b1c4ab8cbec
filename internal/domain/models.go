package domain

import (
	"strings"
	"time"
)

// FileRecord represents one file discovered during a repository scan.
// Records are created by the scanner and never mutated afterwards.
type FileRecord struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Content  string `json:"content"`
}

// NewFileRecord builds a record from a slash-normalized relative path.
// Filename is always the last segment of Path.
func NewFileRecord(relPath, content string) FileRecord {
	name := relPath
	if idx := strings.LastIndex(relPath, "/"); idx >= 0 {
		name = relPath[idx+1:]
	}
	return FileRecord{
		Filename: name,
		Path:     relPath,
		Content:  content,
	}
}

// ScanResult is the ordered collection of records produced by one scan.
// Order is directory-walk discovery order and is stable within a run.
type ScanResult []FileRecord

// Paths returns the relative path of every record, in scan order.
func (r ScanResult) Paths() []string {
	paths := make([]string, len(r))
	for i, rec := range r {
		paths[i] = rec.Path
	}
	return paths
}

// Snapshot is the unit handed to the serializers: one scan's records plus
// the identity of the repository they came from.
type Snapshot struct {
	RepoName  string
	RepoURL   string
	Branch    string
	ScannedAt time.Time
	Records   ScanResult
}

// ScanStats summarizes one traversal for diagnostics.
type ScanStats struct {
	Files        int
	HiddenFiles  int
	HiddenDirs   int
	ReadFailures int
	WalkFailures int
}
