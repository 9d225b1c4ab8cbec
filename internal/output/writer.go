package output

import (
	"os"
	"path/filepath"

	"github.com/quantmind-br/reposnap-go/internal/domain"
	"github.com/quantmind-br/reposnap-go/internal/utils"
)

// Writer renders a snapshot through each configured encoder and writes one
// artifact per encoder into the output directory.
type Writer struct {
	baseDir  string
	encoders []Encoder
	logger   *utils.Logger
	dryRun   bool
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	BaseDir  string
	Encoders []Encoder
	Logger   *utils.Logger
	DryRun   bool
}

// NewWriter creates a new output writer
func NewWriter(opts WriterOptions) *Writer {
	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = "."
	}
	return &Writer{
		baseDir:  baseDir,
		encoders: opts.Encoders,
		logger:   opts.Logger,
		dryRun:   opts.DryRun,
	}
}

// ArtifactPath returns the output path for one encoder's artifact.
func (w *Writer) ArtifactPath(snap *domain.Snapshot, enc Encoder) string {
	return filepath.Join(w.baseDir, snap.RepoName+"."+enc.Ext())
}

// WriteAll runs every encoder against the snapshot. One encoder failing is
// logged and skipped; the rest still run. The returned slice holds the
// per-encoder WriteErrors, empty on full success.
func (w *Writer) WriteAll(snap *domain.Snapshot) []error {
	var failures []error

	for _, enc := range w.encoders {
		path := w.ArtifactPath(snap, enc)

		if w.dryRun {
			if w.logger != nil {
				w.logger.Info().Str("artifact", path).Str("format", enc.Name()).Msg("Dry run, skipping write")
			}
			continue
		}

		if err := w.writeOne(snap, enc, path); err != nil {
			werr := domain.NewWriteError(path, err)
			failures = append(failures, werr)
			if w.logger != nil {
				w.logger.Error().Err(err).Str("artifact", path).Msg("Failed to write artifact")
			}
			continue
		}

		if w.logger != nil {
			w.logger.Info().Str("artifact", path).Str("format", enc.Name()).Msg("Artifact written")
		}
	}

	return failures
}

func (w *Writer) writeOne(snap *domain.Snapshot, enc Encoder, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := enc.Encode(f, snap); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
