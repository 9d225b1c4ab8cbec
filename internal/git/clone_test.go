package git

import (
	"context"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/reposnap-go/internal/domain"
)

// MockClient mocks the Client interface
type MockClient struct {
	mock.Mock
}

func (m *MockClient) PlainCloneContext(ctx context.Context, path string, isBare bool, o *gogit.CloneOptions) (*gogit.Repository, error) {
	args := m.Called(ctx, path, isBare, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gogit.Repository), args.Error(1)
}

func TestCloneFetcherSuccess(t *testing.T) {
	t.Parallel()

	client := &MockClient{}
	client.On("PlainCloneContext", mock.Anything, mock.Anything, false, mock.Anything).
		Return(nil, nil).Once()

	f := NewCloneFetcher(CloneFetcherOptions{Client: client})
	res, err := f.Fetch(context.Background(), "https://example.com/org/myrepo", t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, "main", res.Branch)
	client.AssertExpectations(t)
}

func TestCloneFetcherShallowByDefault(t *testing.T) {
	t.Parallel()

	client := &MockClient{}
	client.On("PlainCloneContext", mock.Anything, mock.Anything, false,
		mock.MatchedBy(func(o *gogit.CloneOptions) bool {
			return o.Depth == 1 && o.URL == "https://example.com/org/myrepo"
		})).Return(nil, nil).Once()

	f := NewCloneFetcher(CloneFetcherOptions{Client: client})
	_, err := f.Fetch(context.Background(), "https://example.com/org/myrepo", t.TempDir())

	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestCloneFetcherAuthFailureIsPermanent(t *testing.T) {
	t.Parallel()

	client := &MockClient{}
	client.On("PlainCloneContext", mock.Anything, mock.Anything, false, mock.Anything).
		Return(nil, transport.ErrAuthenticationRequired).Once()

	f := NewCloneFetcher(CloneFetcherOptions{Client: client, MaxRetries: 5})
	_, err := f.Fetch(context.Background(), "https://example.com/org/private", t.TempDir())

	require.Error(t, err)
	var ferr *domain.FetchError
	assert.ErrorAs(t, err, &ferr)
	assert.ErrorIs(t, err, transport.ErrAuthenticationRequired)

	// a permanent error never retries
	client.AssertNumberOfCalls(t, "PlainCloneContext", 1)
}

func TestCloneFetcherEmptyURL(t *testing.T) {
	t.Parallel()

	f := NewCloneFetcher(CloneFetcherOptions{Client: &MockClient{}})
	_, err := f.Fetch(context.Background(), "", t.TempDir())

	assert.ErrorIs(t, err, domain.ErrEmptyURL)
}

func TestCloneFetcherCancelledContext(t *testing.T) {
	t.Parallel()

	client := &MockClient{}
	client.On("PlainCloneContext", mock.Anything, mock.Anything, false, mock.Anything).
		Return(nil, context.Canceled)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewCloneFetcher(CloneFetcherOptions{Client: client})
	_, err := f.Fetch(ctx, "https://example.com/org/myrepo", t.TempDir())

	require.Error(t, err)
	var ferr *domain.FetchError
	assert.ErrorAs(t, err, &ferr)
}
