package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/go-while/go-newsfeed/internal/router"
	"github.com/go-while/go-newsfeed/internal/views"
)

// homePage renders the article list ("/").
func (s *WebServer) homePage(c *gin.Context) {
	v := views.NewListView()
	v.Load(c.Request.Context(), s.Store)
	s.Metrics.ObservePageRender(router.RouteList.String(), v.State().String())

	data := FeedPageData{
		TemplateData: s.getBaseTemplateData(views.PageTitle),
		Cards:        v.Cards(),
		Empty:        v.Empty(),
	}
	if v.State() == views.StateError {
		data.Error = v.Message()
		data.Message = views.MsgListHint
	} else if v.Empty() {
		data.Message = v.Message()
	}
	s.renderTemplate(c, statusForFailure(v.Failure()), tmplFeed, data)
}

// resolvePage handles paths gin did not match, e.g. "/article/42/".
func (s *WebServer) resolvePage(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		s.renderError(c, http.StatusMethodNotAllowed, "Method not allowed", c.Request.Method)
		return
	}
	m := router.Resolve(c.Request.URL.EscapedPath())
	switch m.Route {
	case router.RouteList:
		s.homePage(c)
	case router.RouteDetail:
		s.renderArticle(c, m.ID)
	default:
		s.renderError(c, http.StatusNotFound, "Page not found", c.Request.URL.Path)
	}
}
