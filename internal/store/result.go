package store

import "github.com/go-while/go-newsfeed/internal/models"

// Status classifies the outcome of a store call.
type Status int

const (
	StatusOK Status = iota
	StatusEmpty
	StatusNotFound
	StatusNotConfigured
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusNotFound:
		return "not_found"
	case StatusNotConfigured:
		return "not_configured"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ListResult is returned by Store.ListArticles.
// Articles is never nil; it is empty unless Status is StatusOK.
type ListResult struct {
	Articles []*models.Article
	Status   Status
	Err      error // set for StatusNotConfigured and StatusFailed
}

// ArticleResult is returned by Store.GetArticle.
// Article is nil unless Status is StatusOK.
type ArticleResult struct {
	Article *models.Article
	Status  Status
	Err     error // set for StatusNotConfigured and StatusFailed
}
