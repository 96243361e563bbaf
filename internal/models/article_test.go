package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	testCases := []string{
		"2024-01-01T00:00:00Z",
		"2024-01-01T00:00:00+00:00",
		"2024-01-01T00:00:00.000000+00:00",
		"2024-01-01 00:00:00+00:00",
		"2024-01-01 00:00:00",
		"2024-01-01T00:00:00",
		"2024-01-01",
	}
	for _, in := range testCases {
		got, err := ParseTimestamp(in)
		if err != nil {
			t.Errorf("ParseTimestamp(%q): unexpected error %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseTimestamp(%q) = %s, want %s", in, got, want)
		}
	}

	_, err := ParseTimestamp("yesterday")
	assert.Error(t, err)
	_, err = ParseTimestamp("")
	assert.Error(t, err)
}

func TestArticleUnmarshalPostgREST(t *testing.T) {
	body := `{"id":"a1","title":"A","snippet":"B","content":"C","imageUrl":"u","createdAt":"2024-01-01T00:00:00+00:00","category":null}`
	var a Article
	require.NoError(t, json.Unmarshal([]byte(body), &a))

	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, "A", a.Title)
	assert.Equal(t, "B", a.Snippet)
	assert.Equal(t, "C", a.Content)
	assert.Equal(t, "u", a.ImageURL)
	assert.Equal(t, "", a.Category)
	assert.True(t, a.CreatedAt.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestArticleUnmarshalNumericID(t *testing.T) {
	var a Article
	require.NoError(t, json.Unmarshal([]byte(`{"id":42,"title":"x"}`), &a))
	assert.Equal(t, "42", a.ID)
	assert.True(t, a.CreatedAt.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"title":"no id"}`), &a))
	assert.Error(t, json.Unmarshal([]byte(`{"id":"x","createdAt":"soon"}`), &a))
}

func TestArticleMarshalRoundTrip(t *testing.T) {
	in := Article{
		ID:        "a1",
		Title:     "A",
		Snippet:   "B",
		Content:   "C",
		ImageURL:  "u",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Category:  "eSports",
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"createdAt":"2024-01-01T00:00:00Z"`)
	assert.Contains(t, string(data), `"imageUrl":"u"`)

	var out Article
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestDisplayHelpers(t *testing.T) {
	a := &Article{CreatedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), Category: "sports"}
	assert.Equal(t, "Mar 5, 2024", a.PublishedDate())
	assert.Equal(t, "Sports", a.CategoryLabel())

	a.Category = "eSports"
	assert.Equal(t, "eSports", a.CategoryLabel())
	a.Category = "  "
	assert.Equal(t, "", a.CategoryLabel())

	var nilArticle *Article
	assert.Equal(t, "unknown date", nilArticle.PublishedDate())
	assert.Equal(t, "", nilArticle.CategoryLabel())

	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab...", Truncate("abcdef", 2))
	assert.Equal(t, "héllo", Truncate("héllo", 5))

	assert.Equal(t, "never", PrintTimeSinceHumanReadable(time.Time{}))
	assert.Equal(t, "2 hours ago", PrintTimeSinceHumanReadable(time.Now().Add(-2*time.Hour-time.Minute)))
	assert.Equal(t, "1 day ago", PrintTimeSinceHumanReadable(time.Now().Add(-25*time.Hour)))
}
