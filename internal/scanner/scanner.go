package scanner

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/quantmind-br/reposnap-go/internal/domain"
	"github.com/quantmind-br/reposnap-go/internal/utils"
)

// Scanner walks a repository working tree and collects one FileRecord per
// eligible file. Entries whose name starts with "." are skipped, directories
// included, so .git and the like never get visited.
type Scanner struct {
	logger      *utils.Logger
	maxFileSize int64
	progress    bool
}

// ScannerOptions contains options for creating a Scanner
type ScannerOptions struct {
	Logger      *utils.Logger
	MaxFileSize int64 // 0 = unlimited
	Progress    bool
}

// NewScanner creates a new Scanner
func NewScanner(opts ScannerOptions) *Scanner {
	return &Scanner{
		logger:      opts.Logger,
		maxFileSize: opts.MaxFileSize,
		progress:    opts.Progress,
	}
}

// Scan traverses root and returns a record for every eligible file, in
// directory-walk order. Unreadable or non-text files degrade to an empty
// content string and a warning; only a broken walk aborts the scan.
func (s *Scanner) Scan(root string) (domain.ScanResult, *domain.ScanStats, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("scan root is not a directory: %s", root)
	}

	paths, stats, err := s.collectPaths(root)
	if err != nil {
		return nil, nil, err
	}

	bar := utils.NewSilentProgressBar(len(paths))
	if s.progress {
		bar = utils.NewProgressBar(len(paths), utils.DescScanning)
	}

	result := make(domain.ScanResult, 0, len(paths))
	for _, path := range paths {
		content, err := s.readText(path)
		if err != nil {
			stats.ReadFailures++
			if s.logger != nil {
				s.logger.Warn().Err(err).Str("file", path).Msg("Could not read file as text")
			}
			content = ""
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, nil, fmt.Errorf("relative path for %s: %w", path, err)
		}

		result = append(result, domain.NewFileRecord(filepath.ToSlash(rel), content))
		_ = bar.Add(1)
	}

	if s.logger != nil {
		s.logger.Info().
			Int("files", stats.Files).
			Int("hidden_files", stats.HiddenFiles).
			Int("hidden_dirs", stats.HiddenDirs).
			Int("read_failures", stats.ReadFailures).
			Int("walk_failures", stats.WalkFailures).
			Msg("Scan completed")
	}

	return result, stats, nil
}

// collectPaths walks the tree applying the hidden-entry exclusion rule.
func (s *Scanner) collectPaths(root string) ([]string, *domain.ScanStats, error) {
	var paths []string
	stats := &domain.ScanStats{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// An unreadable directory degrades to a warning; its
			// subtree is skipped and the walk continues.
			stats.WalkFailures++
			if s.logger != nil {
				s.logger.Warn().Err(err).Str("path", path).Msg("Could not walk directory entry")
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		hidden := strings.HasPrefix(d.Name(), ".") && path != root

		if d.IsDir() {
			if hidden {
				stats.HiddenDirs++
				return fs.SkipDir
			}
			return nil
		}

		if hidden {
			stats.HiddenFiles++
			return nil
		}

		paths = append(paths, path)
		stats.Files++
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return paths, stats, nil
}

// readText reads path and returns its content as UTF-8 text. Binary
// content (NUL bytes or invalid UTF-8) is rejected with a ReadError so the
// caller can degrade the record instead of embedding garbage.
func (s *Scanner) readText(path string) (string, error) {
	if s.maxFileSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return "", domain.NewReadError(path, err)
		}
		if info.Size() > s.maxFileSize {
			return "", domain.NewReadError(path, fmt.Errorf("file exceeds max size (%d bytes)", info.Size()))
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", domain.NewReadError(path, err)
	}

	if bytes.IndexByte(raw, 0) >= 0 {
		return "", domain.NewReadError(path, fmt.Errorf("binary content"))
	}
	if !utf8.Valid(bytes.TrimPrefix(raw, utf8BOM)) {
		return "", domain.NewReadError(path, fmt.Errorf("invalid UTF-8"))
	}

	decoded, err := decodeUTF8(raw)
	if err != nil {
		return "", domain.NewReadError(path, err)
	}

	return decoded, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeUTF8 strips a leading byte-order mark if present.
func decodeUTF8(raw []byte) (string, error) {
	decoder := unicode.UTF8BOM.NewDecoder()
	reader := transform.NewReader(bytes.NewReader(raw), decoder)
	out, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
