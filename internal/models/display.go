package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DateLayout = "Jan 2, 2006"

var titleCaser = cases.Title(language.English)

// PublishedDate formats CreatedAt for the "Published on" line.
func (a *Article) PublishedDate() string {
	if a == nil || a.CreatedAt.IsZero() {
		return "unknown date"
	}
	return a.CreatedAt.Format(DateLayout)
}

// CategoryLabel returns the category for display. All-lowercase labels are title cased,
// mixed case labels such as "eSports" are kept as stored.
func (a *Article) CategoryLabel() string {
	if a == nil {
		return ""
	}
	cat := strings.TrimSpace(a.Category)
	if cat == "" {
		return ""
	}
	if cat == strings.ToLower(cat) {
		return titleCaser.String(cat)
	}
	return cat
}

// Truncate shortens s to max runes and appends an ellipsis when something was cut.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:max]), " ") + "..."
}

// PrintTimeSinceHumanReadable returns a coarse human readable distance from now.
func PrintTimeSinceHumanReadable(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	diff := time.Since(t)
	if diff < 0 {
		return "in the future"
	}
	totalDays := int(diff.Hours() / 24)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute") + " ago"
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour") + " ago"
	case totalDays < 30:
		return plural(totalDays, "day") + " ago"
	case totalDays < 365:
		return plural(totalDays/30, "month") + " ago"
	default:
		return plural(totalDays/365, "year") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
