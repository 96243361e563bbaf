package web

import (
	"github.com/gin-gonic/gin"

	"github.com/go-while/go-newsfeed/internal/router"
	"github.com/go-while/go-newsfeed/internal/views"
)

// articlePage renders one article ("/article/:id"); without id it shows the missing-ID message.
func (s *WebServer) articlePage(c *gin.Context) {
	s.renderArticle(c, c.Param("id"))
}

func (s *WebServer) renderArticle(c *gin.Context, id string) {
	v := views.NewDetailView()
	v.Load(c.Request.Context(), s.Store, id)
	s.Metrics.ObservePageRender(router.RouteDetail.String(), v.State().String())

	data := ArticlePageData{
		TemplateData: s.getBaseTemplateData(views.PageTitle),
		ArticleID:    id,
	}
	if a := v.Article(); a != nil {
		data.Title = a.Title + " - " + views.PageTitle
		data.Headline = a.Title
		data.Published = a.PublishedDate()
		data.Category = a.CategoryLabel()
		data.ImageURL = a.ImageURL
		data.Content = a.Content
	} else {
		data.Error = v.Message()
	}
	s.renderTemplate(c, statusForFailure(v.Failure()), tmplArticle, data)
}
