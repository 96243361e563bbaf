// Package models defines core data structures for go-newsfeed
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Article is one row of the remote `articles` table. Read-only from this program's side.
type Article struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Snippet   string    `json:"snippet" db:"snippet"`
	Content   string    `json:"content" db:"content"`
	ImageURL  string    `json:"imageUrl" db:"imageUrl"`
	CreatedAt time.Time `json:"createdAt" db:"createdAt"`
	Category  string    `json:"category,omitempty" db:"category"` // optional, e.g. "Sports", "eSports"
}

// timestampLayouts lists the layouts accepted for createdAt, REST first then SQLite.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses a createdAt value as delivered by PostgREST or stored in SQLite.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp format: %q", s)
}

// articleJSON mirrors Article with nullable strings, PostgREST sends null for empty optional columns.
type articleJSON struct {
	ID        json.RawMessage `json:"id"`
	Title     *string         `json:"title"`
	Snippet   *string         `json:"snippet"`
	Content   *string         `json:"content"`
	ImageURL  *string         `json:"imageUrl"`
	CreatedAt *string         `json:"createdAt"`
	Category  *string         `json:"category"`
}

// UnmarshalJSON accepts string or numeric ids (serial primary keys) and null text columns.
func (a *Article) UnmarshalJSON(data []byte) error {
	var raw articleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}
	*a = Article{
		ID:       id,
		Title:    deref(raw.Title),
		Snippet:  deref(raw.Snippet),
		Content:  deref(raw.Content),
		ImageURL: deref(raw.ImageURL),
		Category: deref(raw.Category),
	}
	if raw.CreatedAt != nil && *raw.CreatedAt != "" {
		t, err := ParseTimestamp(*raw.CreatedAt)
		if err != nil {
			return fmt.Errorf("article %s: %w", id, err)
		}
		a.CreatedAt = t
	}
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", fmt.Errorf("article without id")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid article id %s: %w", string(raw), err)
	}
	return n.String(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
