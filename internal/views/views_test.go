package views

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-while/go-newsfeed/internal/models"
	"github.com/go-while/go-newsfeed/internal/store"
)

// fakeSource serves fixed results and counts calls.
type fakeSource struct {
	list     store.ListResult
	articles map[string]store.ArticleResult
	calls    int
}

func (f *fakeSource) ListArticles(context.Context) store.ListResult {
	f.calls++
	return f.list
}

func (f *fakeSource) GetArticle(_ context.Context, id string) store.ArticleResult {
	f.calls++
	if res, ok := f.articles[id]; ok {
		return res
	}
	return store.ArticleResult{Status: store.StatusNotFound}
}

func sampleArticles(n int) []*models.Article {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	out := make([]*models.Article, 0, n)
	for i := n; i > 0; i-- {
		out = append(out, &models.Article{
			ID:        string(rune('a' + i - 1)),
			Title:     "Title " + string(rune('A'+i-1)),
			Snippet:   "snippet",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return out
}

func TestListViewRendersAllCardsInOrder(t *testing.T) {
	articles := sampleArticles(4)
	src := &fakeSource{list: store.ListResult{Articles: articles, Status: store.StatusOK}}
	v := NewListView()
	assert.Equal(t, StateLoading, v.State())

	v.Load(context.Background(), src)

	require.Equal(t, StateSuccess, v.State())
	require.Len(t, v.Cards(), 4)
	for i, c := range v.Cards() {
		assert.Equal(t, articles[i].ID, c.ID)
		assert.Equal(t, "/article/"+articles[i].ID, c.Href)
	}
	assert.False(t, v.Empty())
	assert.Empty(t, v.Message())
	assert.Equal(t, 1, src.calls)
}

func TestListViewOutcomes(t *testing.T) {
	testCases := []struct {
		name    string
		res     store.ListResult
		state   State
		failure Failure
		message string
	}{
		{"empty", store.ListResult{Articles: []*models.Article{}, Status: store.StatusEmpty}, StateSuccess, FailureNone, MsgListEmpty},
		{"not configured", store.ListResult{Status: store.StatusNotConfigured, Err: store.ErrNotConfigured}, StateError, FailureNotConfigured, MsgListNotConfigured},
		{"failed", store.ListResult{Status: store.StatusFailed, Err: errors.New("dial tcp: refused")}, StateError, FailureFetch, MsgListFailed},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewListView()
			v.Load(context.Background(), &fakeSource{list: tc.res})

			assert.Equal(t, tc.state, v.State())
			assert.Equal(t, tc.failure, v.Failure())
			assert.Equal(t, tc.message, v.Message())
			assert.Empty(t, v.Cards())
		})
	}
}

func TestListViewEmptyIsNotAnError(t *testing.T) {
	v := NewListView()
	v.Load(context.Background(), &fakeSource{list: store.ListResult{Articles: []*models.Article{}, Status: store.StatusEmpty}})

	assert.True(t, v.Empty())
	assert.Equal(t, StateSuccess, v.State())
	assert.Equal(t, FailureNone, v.Failure())
}

func TestListViewDiscardsStaleResult(t *testing.T) {
	v := NewListView()
	first := v.Enter()
	second := v.Enter()

	stale := store.ListResult{Status: store.StatusFailed, Err: errors.New("late")}
	assert.False(t, v.Resolve(first, stale))
	assert.Equal(t, StateLoading, v.State())

	fresh := store.ListResult{Articles: sampleArticles(2), Status: store.StatusOK}
	assert.True(t, v.Resolve(second, fresh))
	assert.Len(t, v.Cards(), 2)

	// a second answer for the same ticket is ignored
	assert.False(t, v.Resolve(second, stale))
	assert.Equal(t, StateSuccess, v.State())
}

func TestListViewZeroTicketIsNeverCurrent(t *testing.T) {
	v := NewListView()
	assert.False(t, v.Resolve(Ticket{}, store.ListResult{Status: store.StatusOK}))
}

func TestDetailViewMissingID(t *testing.T) {
	src := &fakeSource{}
	v := NewDetailView()

	v.Load(context.Background(), src, "")

	assert.Equal(t, StateError, v.State())
	assert.Equal(t, FailureMissingID, v.Failure())
	assert.Equal(t, MsgMissingID, v.Message())
	assert.Equal(t, 0, src.calls)
}

func TestDetailViewOutcomes(t *testing.T) {
	article := &models.Article{ID: "7", Title: "A", Snippet: "B", Content: "C", ImageURL: "u"}
	src := &fakeSource{articles: map[string]store.ArticleResult{
		"7":    {Article: article, Status: store.StatusOK},
		"cfg":  {Status: store.StatusNotConfigured, Err: store.ErrNotConfigured},
		"boom": {Status: store.StatusFailed, Err: errors.New("boom")},
	}}
	testCases := []struct {
		id      string
		state   State
		failure Failure
		message string
	}{
		{"7", StateSuccess, FailureNone, ""},
		{"404", StateError, FailureNotFound, `Article with ID "404" not found.`},
		{"cfg", StateError, FailureNotConfigured, MsgDetailNotConfigured},
		{"boom", StateError, FailureFetch, MsgDetailFailed},
	}
	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			v := NewDetailView()
			v.Load(context.Background(), src, tc.id)

			assert.Equal(t, tc.id, v.ID())
			assert.Equal(t, tc.state, v.State())
			assert.Equal(t, tc.failure, v.Failure())
			assert.Equal(t, tc.message, v.Message())
			if tc.state == StateSuccess {
				assert.Same(t, article, v.Article())
			} else {
				assert.Nil(t, v.Article())
			}
		})
	}
}

func TestDetailViewDiscardsResultForPreviousID(t *testing.T) {
	v := NewDetailView()
	oldTicket, ok := v.Enter("1")
	require.True(t, ok)
	newTicket, ok := v.Enter("2")
	require.True(t, ok)
	assert.Equal(t, "2", newTicket.ID())

	late := store.ArticleResult{Article: &models.Article{ID: "1"}, Status: store.StatusOK}
	assert.False(t, v.Resolve(oldTicket, late))
	assert.Equal(t, StateLoading, v.State())
	assert.Nil(t, v.Article())

	assert.True(t, v.Resolve(newTicket, store.ArticleResult{Article: &models.Article{ID: "2"}, Status: store.StatusOK}))
	assert.Equal(t, "2", v.Article().ID)
}

func TestDetailViewReenterResets(t *testing.T) {
	v := NewDetailView()
	v.Load(context.Background(), &fakeSource{}, "gone")
	require.Equal(t, StateError, v.State())

	_, ok := v.Enter("again")
	assert.True(t, ok)
	assert.Equal(t, StateLoading, v.State())
	assert.Equal(t, FailureNone, v.Failure())
	assert.Empty(t, v.Message())
}

func TestNewCardEscapesID(t *testing.T) {
	c := NewCard(&models.Article{ID: "a b", Title: "T", Snippet: "S", ImageURL: "https://img"})
	assert.Equal(t, Card{ID: "a b", Title: "T", Snippet: "S", ImageURL: "https://img", Href: "/article/a%20b"}, c)
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "success", StateSuccess.String())
	assert.Equal(t, "error", StateError.String())
	assert.Equal(t, "missing_id", FailureMissingID.String())
	assert.Equal(t, "fetch_failed", FailureFetch.String())
}

func TestNewCardAge(t *testing.T) {
	c := NewCard(&models.Article{ID: "1", CreatedAt: time.Now().Add(-2*time.Hour - time.Minute)})
	assert.Equal(t, "2 hours ago", c.Age)

	c = NewCard(&models.Article{ID: "2"})
	assert.Empty(t, c.Age)
}

func TestLeaveInvalidatesTickets(t *testing.T) {
	d := NewDetailView()
	dt, ok := d.Enter("7")
	require.True(t, ok)
	d.Leave()
	assert.False(t, d.Current(dt))
	assert.False(t, d.Resolve(dt, store.ArticleResult{Status: store.StatusFailed}))
	assert.Equal(t, "7", d.ID())

	l := NewListView()
	lt := l.Enter()
	l.Leave()
	assert.False(t, l.Resolve(lt, store.ListResult{Status: store.StatusFailed}))
	assert.Equal(t, StateLoading, l.State())
}
