package git

import (
	"context"

	gogit "github.com/go-git/go-git/v5"
)

// Client defines the interface for Git operations
type Client interface {
	PlainCloneContext(ctx context.Context, path string, isBare bool, o *gogit.CloneOptions) (*gogit.Repository, error)
}

// Fetcher materializes a remote repository into a local directory.
type Fetcher interface {
	// Fetch clones the repository at url into destDir, which must exist
	// and be empty. It returns the checked-out branch name.
	Fetch(ctx context.Context, url, destDir string) (*FetchResult, error)
	Name() string
}

// FetchResult describes one successful repository acquisition.
type FetchResult struct {
	LocalPath string
	Branch    string
	Attempts  int
}
