package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/go-while/go-newsfeed/internal/models"
)

type MockBackend struct{ mock.Mock }

func (m *MockBackend) Name() string { return "mock" }

func (m *MockBackend) QueryArticles(ctx context.Context) ([]*models.Article, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Article), args.Error(1)
}

func (m *MockBackend) QueryArticle(ctx context.Context, id string) (*models.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

type recordingObserver struct {
	calls []string
}

func (o *recordingObserver) ObserveStoreCall(op, status string, _ time.Duration) {
	o.calls = append(o.calls, op+":"+status)
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestListArticlesSortsNewestFirst(t *testing.T) {
	backend := new(MockBackend)
	// Backend hands rows back in the wrong order; the store must not trust it.
	backend.On("QueryArticles", mock.Anything).Return([]*models.Article{
		{ID: "old", CreatedAt: day(1)},
		{ID: "new", CreatedAt: day(3)},
		nil,
		{ID: "mid", CreatedAt: day(2)},
	}, nil)
	obs := &recordingObserver{}

	res := New(backend, nil, obs).ListArticles(context.Background())

	require.Equal(t, StatusOK, res.Status)
	require.NoError(t, res.Err)
	ids := make([]string, 0, len(res.Articles))
	for _, a := range res.Articles {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"new", "mid", "old"}, ids)
	assert.Equal(t, []string{"list:ok"}, obs.calls)
	backend.AssertExpectations(t)
}

func TestListArticlesOutcomes(t *testing.T) {
	boom := errors.New("connection refused")
	testCases := []struct {
		name     string
		rows     []*models.Article
		err      error
		expected Status
	}{
		{"empty", []*models.Article{}, nil, StatusEmpty},
		{"nil rows", nil, nil, StatusEmpty},
		{"not configured", nil, ErrNotConfigured, StatusNotConfigured},
		{"failure", nil, boom, StatusFailed},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			backend := new(MockBackend)
			backend.On("QueryArticles", mock.Anything).Return(tc.rows, tc.err)

			res := New(backend, nil, nil).ListArticles(context.Background())

			assert.Equal(t, tc.expected, res.Status)
			assert.NotNil(t, res.Articles)
			assert.Empty(t, res.Articles)
			if tc.err != nil {
				assert.ErrorIs(t, res.Err, tc.err)
			} else {
				assert.NoError(t, res.Err)
			}
		})
	}
}

func TestGetArticleOutcomes(t *testing.T) {
	article := &models.Article{ID: "a1", Title: "A"}
	apiNotFound := &APIError{StatusCode: 406, Code: CodeNoRows, Message: "JSON object requested, multiple (or no) rows returned"}
	testCases := []struct {
		name     string
		article  *models.Article
		err      error
		expected Status
	}{
		{"found", article, nil, StatusOK},
		{"sentinel not found", nil, ErrNotFound, StatusNotFound},
		{"PGRST116", nil, apiNotFound, StatusNotFound},
		{"nil without error", nil, nil, StatusNotFound},
		{"not configured", nil, ErrNotConfigured, StatusNotConfigured},
		{"failure", nil, &APIError{StatusCode: 500, Message: "boom"}, StatusFailed},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			backend := new(MockBackend)
			backend.On("QueryArticle", mock.Anything, "a1").Return(tc.article, tc.err)

			res := New(backend, nil, nil).GetArticle(context.Background(), "a1")

			assert.Equal(t, tc.expected, res.Status)
			if tc.expected == StatusOK {
				assert.Same(t, article, res.Article)
			} else {
				assert.Nil(t, res.Article)
			}
			if tc.expected == StatusNotFound {
				assert.NoError(t, res.Err)
			}
		})
	}
}

func TestGetArticleEmptyIDSkipsBackend(t *testing.T) {
	backend := new(MockBackend)
	obs := &recordingObserver{}

	res := New(backend, nil, obs).GetArticle(context.Background(), "")

	assert.Equal(t, StatusNotFound, res.Status)
	assert.Nil(t, res.Article)
	backend.AssertNotCalled(t, "QueryArticle", mock.Anything, mock.Anything)
	assert.Equal(t, []string{"get:not_found"}, obs.calls)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "empty", StatusEmpty.String())
	assert.Equal(t, "not_found", StatusNotFound.String())
	assert.Equal(t, "not_configured", StatusNotConfigured.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", Status(99).String())
}

func TestStoreTimeoutBoundsBackendCalls(t *testing.T) {
	backend := new(MockBackend)
	waitForCancel := func(args mock.Arguments) {
		<-args.Get(0).(context.Context).Done()
	}
	backend.On("QueryArticles", mock.Anything).Run(waitForCancel).Return(nil, context.DeadlineExceeded)
	backend.On("QueryArticle", mock.Anything, "slow").Run(waitForCancel).Return(nil, context.DeadlineExceeded)

	s := New(backend, nil, nil).SetTimeout(20 * time.Millisecond)

	start := time.Now()
	list := s.ListArticles(context.Background())
	assert.Equal(t, StatusFailed, list.Status)
	assert.ErrorIs(t, list.Err, context.DeadlineExceeded)

	got := s.GetArticle(context.Background(), "slow")
	assert.Equal(t, StatusFailed, got.Status)
	assert.Less(t, time.Since(start), 5*time.Second)
	backend.AssertExpectations(t)
}

func TestStoreWithoutTimeoutKeepsCallerContext(t *testing.T) {
	backend := new(MockBackend)
	backend.On("QueryArticles", mock.Anything).Run(func(args mock.Arguments) {
		_, ok := args.Get(0).(context.Context).Deadline()
		assert.False(t, ok)
	}).Return([]*models.Article{}, nil)

	res := New(backend, nil, nil).SetTimeout(0).ListArticles(context.Background())

	assert.Equal(t, StatusEmpty, res.Status)
}
