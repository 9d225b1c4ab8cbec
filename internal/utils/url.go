package utils

import (
	"net/url"
	"strings"
)

// DefaultRepoName is used when no name can be derived from the URL.
const DefaultRepoName = "repository"

// RepoNameFromURL derives a short name from a repository location, suitable
// as a filename stem for the output artifacts. It never fails: a URL with no
// usable path segment degrades to DefaultRepoName.
//
// Handles both https-style URLs and scp-style remotes (git@host:org/repo.git).
func RepoNameFromURL(rawURL string) string {
	raw := strings.TrimSpace(rawURL)

	// scp-style remotes have no scheme; everything after the colon is the path
	if strings.HasPrefix(raw, "git@") {
		if idx := strings.Index(raw, ":"); idx >= 0 {
			raw = raw[idx+1:]
		}
		return nameFromPath(raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nameFromPath(raw)
	}
	return nameFromPath(u.Path)
}

func nameFromPath(path string) string {
	path = strings.Trim(path, "/")
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		path = path[idx+1:]
	}
	path = strings.TrimSuffix(path, ".git")
	if path == "" {
		return DefaultRepoName
	}
	return path
}
