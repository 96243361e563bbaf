package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-while/go-newsfeed/internal/config"
	"github.com/go-while/go-newsfeed/internal/views"
)

//go:embed templates/*.html
var templatesFS embed.FS

// page templates, each parsed together with base.html and the card partial
const (
	tmplFeed    = "feed.html"
	tmplArticle = "article.html"
	tmplError   = "error.html"
)

// loadPageTemplates parses every page once. The templates are embedded,
// so a parse error is a programming error and panics at startup.
func loadPageTemplates() map[string]*template.Template {
	pages := make(map[string]*template.Template)
	for _, name := range []string{tmplFeed, tmplArticle, tmplError} {
		pages[name] = template.Must(template.New(name).ParseFS(templatesFS,
			"templates/base.html", "templates/card.html", "templates/"+name))
	}
	return pages
}

// getBaseTemplateData creates a TemplateData struct with common information
func (s *WebServer) getBaseTemplateData(title string) TemplateData {
	now := time.Now()
	return TemplateData{
		Title:       title,
		SiteTitle:   views.PageTitle,
		AppVersion:  config.AppVersion,
		CurrentTime: now.Format("2006-01-02 15:04:05"),
		Year:        now.Year(),
	}
}

// renderError renders an error page
func (s *WebServer) renderError(c *gin.Context, statusCode int, message string, errstring string) {
	errorData := ErrorPageData{
		TemplateData: s.getBaseTemplateData("Error"),
		StatusCode:   statusCode,
		Error:        message,
	}
	s.Logger.Warn("Rendering error page",
		zap.Int("status", statusCode), zap.String("message", message), zap.String("detail", errstring))

	var buf bytes.Buffer
	if err := s.pages[tmplError].ExecuteTemplate(&buf, "base.html", errorData); err != nil {
		s.Logger.Error("Error rendering error template", zap.Error(err))
		c.String(statusCode, "Error: %s - %s", message, errstring)
		return
	}
	c.Data(statusCode, "text/html; charset=utf-8", buf.Bytes())
}

// renderTemplate renders a page with its status code. Output is buffered so a
// template failure still produces a clean 500 page.
func (s *WebServer) renderTemplate(c *gin.Context, statusCode int, templateName string, data any) {
	var buf bytes.Buffer
	if err := s.pages[templateName].ExecuteTemplate(&buf, "base.html", data); err != nil {
		s.Logger.Error("Error rendering template", zap.String("template", templateName), zap.Error(err))
		s.renderError(c, http.StatusInternalServerError, "Template error", err.Error())
		return
	}
	c.Data(statusCode, "text/html; charset=utf-8", buf.Bytes())
}

// statusForFailure maps a view failure onto the HTTP status of the page.
func statusForFailure(f views.Failure) int {
	switch f {
	case views.FailureNone:
		return http.StatusOK
	case views.FailureMissingID, views.FailureNotFound:
		return http.StatusNotFound
	case views.FailureNotConfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
