// Package views holds the loading/success/error state of the list and detail screens.
// Views do not fetch on their own: a caller takes a Ticket from Enter, performs the
// fetch and hands the result back to Resolve together with that Ticket.
package views

import (
	"context"
	"fmt"

	"github.com/go-while/go-newsfeed/internal/store"
)

const PageTitle = "Sports & eSports News"

// User facing messages.
const (
	MsgListEmpty           = "No articles found. There are no articles in the database yet."
	MsgListNotConfigured   = "Failed to fetch articles. Please ensure the store client is correctly configured with valid credentials."
	MsgListFailed          = "An unexpected error occurred while fetching articles."
	MsgListHint            = "Please try again later or check your configuration."
	MsgMissingID           = "Article ID is missing."
	MsgDetailNotConfigured = "Failed to fetch the article. Please ensure the store client is correctly configured with valid credentials."
	MsgDetailFailed        = "An unexpected error occurred while fetching the article."
	MsgBack                = "← Back to News Feed"
)

// NotFoundMessage is shown when no article has the requested id.
func NotFoundMessage(id string) string {
	return fmt.Sprintf("Article with ID %q not found.", id)
}

// State of a view.
type State int

const (
	StateLoading State = iota
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Failure tells apart the reasons a view ended up in StateError.
type Failure int

const (
	FailureNone Failure = iota
	FailureMissingID
	FailureNotFound
	FailureNotConfigured
	FailureFetch
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureMissingID:
		return "missing_id"
	case FailureNotFound:
		return "not_found"
	case FailureNotConfigured:
		return "not_configured"
	case FailureFetch:
		return "fetch_failed"
	default:
		return "unknown"
	}
}

// Ticket identifies one fetch. A result is only applied when its ticket is still current.
type Ticket struct {
	gen uint64
	id  string
}

// ID is the input the fetch was started for, empty for the list.
func (t Ticket) ID() string { return t.id }

// Source is what the views load from; *store.Store implements it.
type Source interface {
	ListArticles(ctx context.Context) store.ListResult
	GetArticle(ctx context.Context, id string) store.ArticleResult
}
