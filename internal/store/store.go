// Package store is the data access layer: two read operations against the articles table,
// each returning a typed result instead of an error.
package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/go-while/go-newsfeed/internal/models"
)

const (
	opList = "list"
	opGet  = "get"
)

// Backend is a source of articles. Implementations return ErrNotFound when no row matches
// and ErrNotConfigured, without touching the network, when they lack credentials.
type Backend interface {
	Name() string
	QueryArticles(ctx context.Context) ([]*models.Article, error)
	QueryArticle(ctx context.Context, id string) (*models.Article, error)
}

// Observer receives one call per finished store operation.
type Observer interface {
	ObserveStoreCall(op, status string, elapsed time.Duration)
}

// Store wraps a Backend and classifies every outcome.
type Store struct {
	backend  Backend
	logger   *zap.Logger
	observer Observer
	tracer   trace.Tracer
	timeout  time.Duration
}

// New creates a Store. logger and observer may be nil.
func New(backend Backend, logger *zap.Logger, observer Observer) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend:  backend,
		logger:   logger.With(zap.String("backend", backend.Name())),
		observer: observer,
		tracer:   otel.Tracer("github.com/go-while/go-newsfeed/internal/store"),
	}
}

// SetTimeout bounds every backend call, 0 disables the bound.
func (s *Store) SetTimeout(d time.Duration) *Store {
	s.timeout = d
	return s
}

func (s *Store) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// ListArticles returns all articles, newest first.
func (s *Store) ListArticles(ctx context.Context) ListResult {
	ctx, span := s.tracer.Start(ctx, "store.ListArticles")
	defer span.End()
	start := time.Now()
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	articles, err := s.backend.QueryArticles(ctx)
	res := ListResult{Articles: []*models.Article{}}
	switch {
	case errors.Is(err, ErrNotConfigured):
		res.Status, res.Err = StatusNotConfigured, err
		s.logger.Warn("Cannot fetch articles: store credentials are not configured")
	case err != nil:
		res.Status, res.Err = StatusFailed, err
		s.logger.Error("Error fetching articles", zap.Error(err))
	default:
		articles = compact(articles)
		if len(articles) == 0 {
			res.Status = StatusEmpty
			s.logger.Info("Article list is empty")
		} else {
			SortNewestFirst(articles)
			res.Articles, res.Status = articles, StatusOK
			s.logger.Debug("Fetched articles", zap.Int("count", len(articles)))
		}
	}

	s.finish(span, opList, res.Status, res.Err, start)
	span.SetAttributes(attribute.Int("articles.count", len(res.Articles)))
	return res
}

// GetArticle returns the article with the given id.
func (s *Store) GetArticle(ctx context.Context, id string) ArticleResult {
	ctx, span := s.tracer.Start(ctx, "store.GetArticle", trace.WithAttributes(attribute.String("article.id", id)))
	defer span.End()
	start := time.Now()

	var res ArticleResult
	if id == "" {
		res.Status = StatusNotFound
		s.logger.Info("Article lookup without id")
		s.finish(span, opGet, res.Status, nil, start)
		return res
	}

	ctx, cancel := s.callContext(ctx)
	defer cancel()
	article, err := s.backend.QueryArticle(ctx, id)
	switch {
	case errors.Is(err, ErrNotConfigured):
		res.Status, res.Err = StatusNotConfigured, err
		s.logger.Warn("Cannot fetch article by id: store credentials are not configured", zap.String("article_id", id))
	case errors.Is(err, ErrNotFound), err == nil && article == nil:
		res.Status = StatusNotFound
		s.logger.Info("Article not found", zap.String("article_id", id))
	case err != nil:
		res.Status, res.Err = StatusFailed, err
		s.logger.Error("Error fetching article by id", zap.String("article_id", id), zap.Error(err))
	default:
		res.Article, res.Status = article, StatusOK
		s.logger.Debug("Fetched article", zap.String("article_id", id))
	}

	s.finish(span, opGet, res.Status, res.Err, start)
	return res
}

func (s *Store) finish(span trace.Span, op string, status Status, err error, start time.Time) {
	span.SetAttributes(attribute.String("store.status", status.String()))
	if err != nil && status == StatusFailed {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.observer != nil {
		s.observer.ObserveStoreCall(op, status.String(), time.Since(start))
	}
}

// SortNewestFirst orders articles by CreatedAt descending. Equal timestamps keep backend order.
func SortNewestFirst(articles []*models.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})
}

// compact drops nil entries a misbehaving backend might hand back.
func compact(articles []*models.Article) []*models.Article {
	out := articles[:0]
	for _, a := range articles {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}
