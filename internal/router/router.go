// Package router maps request paths onto the two screens of the feed.
package router

import (
	"net/url"
	"strings"
)

// Route names a screen.
type Route int

const (
	RouteNotFound Route = iota
	RouteList
	RouteDetail
)

func (r Route) String() string {
	switch r {
	case RouteList:
		return "list"
	case RouteDetail:
		return "detail"
	default:
		return "not_found"
	}
}

const articlePrefix = "/article"

// Match is the outcome of Resolve.
type Match struct {
	Route Route
	ID    string // only for RouteDetail, may be empty
}

// Resolve maps a path to a screen.
//
//	/              -> RouteList
//	/article/{id}  -> RouteDetail with the unescaped id
//	/article       -> RouteDetail with an empty id
//	anything else  -> RouteNotFound
//
// A single trailing slash is tolerated everywhere.
func Resolve(path string) Match {
	if path == "" {
		path = "/"
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	switch {
	case path == "/":
		return Match{Route: RouteList}
	case path == articlePrefix:
		return Match{Route: RouteDetail}
	case strings.HasPrefix(path, articlePrefix+"/"):
		raw := strings.TrimPrefix(path, articlePrefix+"/")
		if strings.Contains(raw, "/") {
			return Match{Route: RouteNotFound}
		}
		id, err := url.PathUnescape(raw)
		if err != nil {
			return Match{Route: RouteNotFound}
		}
		return Match{Route: RouteDetail, ID: id}
	}
	return Match{Route: RouteNotFound}
}

// ListPath is the path of the article list.
func ListPath() string { return "/" }

// ArticlePath builds the detail path for id. Resolve(ArticlePath(id)).ID == id.
func ArticlePath(id string) string {
	return articlePrefix + "/" + url.PathEscape(id)
}
