// Package web provides the HTTP server and HTML interface for go-newsfeed
package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/go-while/go-newsfeed/internal/config"
	"github.com/go-while/go-newsfeed/internal/platform/metrics"
	"github.com/go-while/go-newsfeed/internal/views"
)

// WebServer serves the feed and article pages
type WebServer struct {
	Store   views.Source
	Router  *gin.Engine
	Config  *config.WebConfig
	Metrics *metrics.Manager // may be nil
	Logger  *zap.Logger

	pages   map[string]*template.Template
	limiter *ipRateLimiter
	httpSrv *http.Server
}

// TemplateData represents common template data
type TemplateData struct {
	Title       string
	SiteTitle   string
	AppVersion  string
	CurrentTime string
	Year        int
}

// FeedPageData represents data for the article list
type FeedPageData struct {
	TemplateData
	Cards   []views.Card
	Empty   bool
	Error   string
	Message string
}

// ArticlePageData represents data for a single article
type ArticlePageData struct {
	TemplateData
	ArticleID string
	Headline  string
	Published string
	Category  string
	ImageURL  string
	Content   string
	Error     string
}

// ErrorPageData represents data for the generic error page
type ErrorPageData struct {
	TemplateData
	StatusCode int
	Error      string
}

// NewServer creates a new web server instance
func NewServer(src views.Source, webconfig *config.WebConfig, m *metrics.Manager, logger *zap.Logger) *WebServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if webconfig.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// ids may contain an escaped slash
	router.UseRawPath = true
	router.UnescapePathValues = true
	router.RedirectTrailingSlash = false

	if err := router.SetTrustedProxies(webconfig.TrustedProxies); err != nil {
		logger.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}

	// Configure security headers based on SSL setup
	secureConfig := secure.Config{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; img-src * data:; style-src 'self'; script-src 'self'",
		IsDevelopment:         webconfig.Debug,
	}

	// Only add SSL-specific headers if SSL is enabled on the application itself
	// (not when running behind a reverse proxy like nginx with SSL)
	if webconfig.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}

	server := &WebServer{
		Store:   src,
		Router:  router,
		Config:  webconfig,
		Metrics: m,
		Logger:  logger.With(zap.String("component", "web")),
		pages:   loadPageTemplates(),
		limiter: newIPRateLimiter(webconfig.RateLimitRPS, webconfig.RateLimitBurst),
	}

	router.Use(gin.Recovery())
	router.Use(secure.New(secureConfig))
	router.Use(server.ReverseProxyMiddleware())
	router.Use(server.ApacheLogFormat())

	server.setupRoutes()
	return server
}

// setupRoutes configures all HTTP routes
func (s *WebServer) setupRoutes() {
	// Static files first (highest priority)
	s.Router.GET("/static/*filepath", EmbeddedStaticHandler("/static"))
	s.Router.GET("/favicon.ico", EmbeddedFileHandler("static/favicon.svg"))
	s.Router.GET("/robots.txt", func(c *gin.Context) {
		c.String(http.StatusOK, "User-agent: *\nDisallow:\n")
	})
	s.Router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	if s.Metrics != nil {
		s.Router.GET("/metrics", gin.WrapH(s.Metrics.Handler()))
	}

	pages := s.Router.Group("/")
	pages.Use(s.RateLimitMiddleware())
	{
		pages.GET("/", s.homePage)
		pages.GET("/article", s.articlePage)     // missing id
		pages.GET("/article/", s.articlePage)    // missing id
		pages.GET("/article/:id", s.articlePage) // article detail
	}

	// Anything gin did not match goes through the path resolver,
	// which tolerates trailing slashes and renders 404 for the rest.
	s.Router.NoRoute(s.RateLimitMiddleware(), s.resolvePage)
	s.Router.NoMethod(func(c *gin.Context) {
		s.renderError(c, http.StatusMethodNotAllowed, "Method not allowed", c.Request.Method)
	})
	s.Router.HandleMethodNotAllowed = true
}

// Start starts the web server with SSL support if configured. It blocks until
// the server stops; after Shutdown it returns nil.
func (s *WebServer) Start() error {
	addr := ":" + strconv.Itoa(s.Config.ListenPort)
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           otelhttp.NewHandler(s.Router, "newsfeed-web"),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	var err error
	if s.Config.SSL {
		if s.Config.CertFile == "" || s.Config.KeyFile == "" {
			return errors.New("SSL enabled but cert_file or key_file not specified in config")
		}
		s.Logger.Info("Starting HTTPS server", zap.String("addr", addr))
		err = s.httpSrv.ListenAndServeTLS(s.Config.CertFile, s.Config.KeyFile)
	} else {
		s.Logger.Info("Starting HTTP server", zap.String("addr", addr))
		err = s.httpSrv.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops a running server.
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	if s.httpSrv == nil {
		return nil
	}
	s.Logger.Info("Shutting down web server")
	return s.httpSrv.Shutdown(ctx)
}

// ReverseProxyMiddleware handles X-Forwarded headers when running behind a reverse proxy
func (s *WebServer) ReverseProxyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Handle X-Forwarded-Proto to detect if the original request was HTTPS
		if proto := c.GetHeader("X-Forwarded-Proto"); proto == "https" {
			c.Request.URL.Scheme = "https"
		}

		// Handle X-Forwarded-Host to get the original host
		if host := c.GetHeader("X-Forwarded-Host"); host != "" {
			c.Request.Host = host
		}

		c.Next()
	}
}

// ApacheLogFormat writes one access log line per request through zap.
func (s *WebServer) ApacheLogFormat() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		s.Logger.Info("access",
			zap.String("client_ip", c.ClientIP()),
			zap.String("time", start.Format("02/Jan/2006:15:04:05 -0700")),
			zap.String("request", c.Request.Method+" "+path+" "+c.Request.Proto),
			zap.Int("status", c.Writer.Status()),
			zap.Int("size", c.Writer.Size()),
			zap.String("referer", c.Request.Referer()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
