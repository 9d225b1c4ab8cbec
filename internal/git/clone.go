package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	gogit "github.com/go-git/go-git/v5"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/quantmind-br/reposnap-go/internal/domain"
	"github.com/quantmind-br/reposnap-go/internal/utils"
)

// CloneFetcher fetches repositories with a shallow git clone.
type CloneFetcher struct {
	client     Client
	logger     *utils.Logger
	depth      int
	maxRetries int
}

// CloneFetcherOptions contains options for creating a CloneFetcher
type CloneFetcherOptions struct {
	Client     Client
	Logger     *utils.Logger
	Depth      int
	MaxRetries int
}

// NewCloneFetcher creates a new CloneFetcher
func NewCloneFetcher(opts CloneFetcherOptions) *CloneFetcher {
	client := opts.Client
	if client == nil {
		client = NewClient()
	}
	depth := opts.Depth
	if depth <= 0 {
		depth = 1
	}
	return &CloneFetcher{
		client:     client,
		logger:     opts.Logger,
		depth:      depth,
		maxRetries: opts.MaxRetries,
	}
}

func (f *CloneFetcher) Name() string {
	return "clone"
}

// Fetch clones the repository into destDir, retrying transient failures
// with exponential backoff. Auth failures and cancellations are permanent.
func (f *CloneFetcher) Fetch(ctx context.Context, url, destDir string) (*FetchResult, error) {
	if url == "" {
		return nil, domain.NewFetchError(url, domain.ErrEmptyURL)
	}

	if f.logger != nil {
		f.logger.Info().Str("url", url).Str("dest", destDir).Msg("Cloning repository")
	}

	cloneOpts := &gogit.CloneOptions{
		URL:   url,
		Depth: f.depth,
	}

	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cloneOpts.Auth = &githttp.BasicAuth{
			Username: "token",
			Password: token,
		}
	}

	var repo *gogit.Repository
	attempts := 0

	operation := func() error {
		attempts++
		var err error
		repo, err = f.client.PlainCloneContext(ctx, destDir, false, cloneOpts)
		if err == nil {
			return nil
		}
		if !domain.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		if f.logger != nil {
			f.logger.Warn().Err(err).Int("attempt", attempts).Msg("Clone failed, retrying")
		}
		// A partial clone leaves the destination non-empty; reset it
		// so the next attempt starts clean.
		if cleanErr := resetDir(destDir); cleanErr != nil {
			return backoff.Permanent(cleanErr)
		}
		return err
	}

	if err := backoff.Retry(operation, f.newBackoff(ctx)); err != nil {
		return nil, domain.NewFetchError(url, err)
	}

	return &FetchResult{
		LocalPath: destDir,
		Branch:    detectBranch(repo),
		Attempts:  attempts,
	}, nil
}

func (f *CloneFetcher) newBackoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 1 * time.Second
	b.MaxInterval = 30 * time.Second
	b.Multiplier = 2.0
	b.Reset()

	retries := f.maxRetries
	if retries <= 0 {
		retries = 3
	}

	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

// detectBranch reads the checked-out branch from HEAD, defaulting to "main".
func detectBranch(repo *gogit.Repository) string {
	if repo == nil {
		return "main"
	}
	head, err := repo.Head()
	if err != nil {
		return "main"
	}
	refName := head.Name().String()
	if strings.HasPrefix(refName, "refs/heads/") {
		return strings.TrimPrefix(refName, "refs/heads/")
	}
	return "main"
}

// resetDir empties dir without removing it, preserving its permissions.
func resetDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
