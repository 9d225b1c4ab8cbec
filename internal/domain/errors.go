package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Sentinel errors
var (
	// ErrEmptyURL indicates no repository location was provided
	ErrEmptyURL = errors.New("repository URL is empty")

	// ErrNoEncoder indicates an unknown output format was requested
	ErrNoEncoder = errors.New("no encoder for format")

	// ErrAuthFailed indicates the remote rejected our credentials
	ErrAuthFailed = errors.New("authentication failed")
)

// FetchError represents a fatal failure while acquiring the repository.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError
func NewFetchError(url string, err error) *FetchError {
	return &FetchError{URL: url, Err: err}
}

// ReadError represents a recoverable per-file failure during scanning.
// The scan continues; the record's content degrades to an empty string.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read error for %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// NewReadError creates a new ReadError
func NewReadError(path string, err error) *ReadError {
	return &ReadError{Path: path, Err: err}
}

// WriteError represents a recoverable per-artifact failure during
// serialization. Other artifacts still get written.
type WriteError struct {
	Artifact string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write error for %s: %v", e.Artifact, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// NewWriteError creates a new WriteError
func NewWriteError(artifact string, err error) *WriteError {
	return &WriteError{Artifact: artifact, Err: err}
}

// IsRetryable reports whether a clone failure is worth retrying.
// Authentication failures and cancelled contexts are permanent.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, transport.ErrAuthenticationRequired) ||
		errors.Is(err, transport.ErrAuthorizationFailed) ||
		errors.Is(err, ErrAuthFailed) {
		return false
	}
	if errors.Is(err, transport.ErrRepositoryNotFound) {
		return false
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "temporar") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "unexpected eof") ||
		strings.Contains(msg, "connection refused")
}
