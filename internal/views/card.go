package views

import (
	"github.com/go-while/go-newsfeed/internal/models"
	"github.com/go-while/go-newsfeed/internal/router"
)

// Card is the summary tile for one article.
type Card struct {
	ID       string
	Title    string
	Snippet  string
	ImageURL string
	Href     string
	Age      string // "3 hours ago", empty without a timestamp
}

// NewCard maps an article's summary fields onto a Card.
func NewCard(a *models.Article) Card {
	c := Card{
		ID:       a.ID,
		Title:    a.Title,
		Snippet:  a.Snippet,
		ImageURL: a.ImageURL,
		Href:     router.ArticlePath(a.ID),
	}
	if !a.CreatedAt.IsZero() {
		c.Age = models.PrintTimeSinceHumanReadable(a.CreatedAt)
	}
	return c
}

// NewCards maps articles in order.
func NewCards(articles []*models.Article) []Card {
	cards := make([]Card, 0, len(articles))
	for _, a := range articles {
		if a == nil {
			continue
		}
		cards = append(cards, NewCard(a))
	}
	return cards
}
