package views

import (
	"context"

	"github.com/go-while/go-newsfeed/internal/store"
)

// ListView is the state of the article list screen.
type ListView struct {
	gen     uint64
	state   State
	failure Failure
	cards   []Card
	message string
}

// NewListView returns a view in StateLoading that has not started a fetch yet.
func NewListView() *ListView {
	return &ListView{state: StateLoading}
}

// Enter (re)starts the view. Any fetch started before is now stale.
func (v *ListView) Enter() Ticket {
	v.gen++
	v.state = StateLoading
	v.failure = FailureNone
	v.cards = nil
	v.message = ""
	return Ticket{gen: v.gen}
}

// Leave marks the view as no longer shown. Tickets handed out before are stale.
func (v *ListView) Leave() {
	v.gen++
}

// Current reports whether t belongs to the latest Enter.
func (v *ListView) Current(t Ticket) bool {
	return t.gen == v.gen && v.gen != 0
}

// Resolve applies res if t is current and reports whether it did.
func (v *ListView) Resolve(t Ticket, res store.ListResult) bool {
	if !v.Current(t) || v.state != StateLoading {
		return false
	}
	switch res.Status {
	case store.StatusOK:
		v.state = StateSuccess
		v.cards = NewCards(res.Articles)
		if len(v.cards) == 0 {
			v.message = MsgListEmpty
		}
	case store.StatusEmpty:
		v.state = StateSuccess
		v.cards = []Card{}
		v.message = MsgListEmpty
	case store.StatusNotConfigured:
		v.state, v.failure, v.message = StateError, FailureNotConfigured, MsgListNotConfigured
	default:
		v.state, v.failure, v.message = StateError, FailureFetch, MsgListFailed
	}
	return true
}

// Load runs a whole Enter/fetch/Resolve cycle synchronously.
func (v *ListView) Load(ctx context.Context, src Source) {
	t := v.Enter()
	v.Resolve(t, src.ListArticles(ctx))
}

func (v *ListView) State() State     { return v.state }
func (v *ListView) Failure() Failure { return v.failure }
func (v *ListView) Cards() []Card    { return v.cards }
func (v *ListView) Empty() bool      { return v.state == StateSuccess && len(v.cards) == 0 }
func (v *ListView) Message() string  { return v.message }
