package views

import (
	"context"

	"github.com/go-while/go-newsfeed/internal/models"
	"github.com/go-while/go-newsfeed/internal/store"
)

// DetailView is the state of the article screen for one id.
type DetailView struct {
	gen     uint64
	id      string
	state   State
	failure Failure
	article *models.Article
	message string
}

// NewDetailView returns a view in StateLoading that has not started a fetch yet.
func NewDetailView() *DetailView {
	return &DetailView{state: StateLoading}
}

// Enter switches the view to id. It returns false when there is nothing to fetch:
// an empty id puts the view straight into StateError with MsgMissingID.
// Any fetch started before is now stale.
func (v *DetailView) Enter(id string) (Ticket, bool) {
	v.gen++
	v.id = id
	v.article = nil
	v.failure = FailureNone
	v.message = ""
	t := Ticket{gen: v.gen, id: id}
	if id == "" {
		v.state, v.failure, v.message = StateError, FailureMissingID, MsgMissingID
		return t, false
	}
	v.state = StateLoading
	return t, true
}

// Leave marks the view as no longer shown. Tickets handed out before are stale,
// the displayed state is kept for a later Enter.
func (v *DetailView) Leave() {
	v.gen++
}

// Current reports whether t belongs to the latest Enter.
func (v *DetailView) Current(t Ticket) bool {
	return t.gen == v.gen && t.id == v.id && v.gen != 0
}

// Resolve applies res if t is current and reports whether it did.
func (v *DetailView) Resolve(t Ticket, res store.ArticleResult) bool {
	if !v.Current(t) || v.state != StateLoading {
		return false
	}
	switch {
	case res.Status == store.StatusOK && res.Article != nil:
		v.state, v.article = StateSuccess, res.Article
	case res.Status == store.StatusOK, res.Status == store.StatusNotFound:
		v.state, v.failure, v.message = StateError, FailureNotFound, NotFoundMessage(v.id)
	case res.Status == store.StatusNotConfigured:
		v.state, v.failure, v.message = StateError, FailureNotConfigured, MsgDetailNotConfigured
	default:
		v.state, v.failure, v.message = StateError, FailureFetch, MsgDetailFailed
	}
	return true
}

// Load runs a whole Enter/fetch/Resolve cycle synchronously.
func (v *DetailView) Load(ctx context.Context, src Source, id string) {
	t, fetch := v.Enter(id)
	if !fetch {
		return
	}
	v.Resolve(t, src.GetArticle(ctx, id))
}

func (v *DetailView) ID() string               { return v.id }
func (v *DetailView) State() State             { return v.state }
func (v *DetailView) Failure() Failure         { return v.failure }
func (v *DetailView) Article() *models.Article { return v.article }
func (v *DetailView) Message() string          { return v.message }
