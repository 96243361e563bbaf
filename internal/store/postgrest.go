package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/go-while/go-newsfeed/internal/config"
	"github.com/go-while/go-newsfeed/internal/models"
)

const (
	restPath        = "/rest/v1/"
	objectMediaType = "application/vnd.pgrst.object+json"
	maxErrorBody    = 64 * 1024
)

// PostgRESTBackend reads articles through the Supabase REST interface.
type PostgRESTBackend struct {
	baseURL    string
	anonKey    string
	table      string
	configured bool
	httpClient *http.Client
	userAgent  string
}

// NewPostgRESTBackend creates the REST backend. With placeholder credentials every query
// returns ErrNotConfigured and no request is ever sent; a warning is logged once here.
// httpClient may be nil.
func NewPostgRESTBackend(cfg config.StoreConfig, httpClient *http.Client, logger *zap.Logger) *PostgRESTBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	table := cfg.Table
	if table == "" {
		table = config.DefaultTable
	}
	b := &PostgRESTBackend{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
		anonKey:    strings.TrimSpace(cfg.AnonKey),
		table:      table,
		configured: !cfg.IsPlaceholder(),
		httpClient: httpClient,
		userAgent:  "go-newsfeed/" + config.AppVersion,
	}
	if !b.configured {
		logger.Warn("Store credentials are set to placeholder values. " +
			"Set store.url and store.anon_key (or NEWSFEED_STORE_URL / NEWSFEED_STORE_ANON_KEY) to your project URL and anon key.")
	}
	return b
}

func (b *PostgRESTBackend) Name() string { return config.BackendPostgREST }

// QueryArticles runs select=*&order=createdAt.desc against the table.
func (b *PostgRESTBackend) QueryArticles(ctx context.Context) ([]*models.Article, error) {
	if !b.configured {
		return nil, ErrNotConfigured
	}
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "createdAt.desc")

	var articles []*models.Article
	if err := b.get(ctx, q, "application/json", &articles); err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	return articles, nil
}

// QueryArticle runs select=*&id=eq.{id} asking for a single JSON object.
func (b *PostgRESTBackend) QueryArticle(ctx context.Context, id string) (*models.Article, error) {
	if !b.configured {
		return nil, ErrNotConfigured
	}
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+id)

	article := &models.Article{}
	if err := b.get(ctx, q, objectMediaType, article); err != nil {
		return nil, fmt.Errorf("query article %q: %w", id, err)
	}
	return article, nil
}

func (b *PostgRESTBackend) get(ctx context.Context, q url.Values, accept string, dst any) error {
	endpoint := b.baseURL + restPath + url.PathEscape(b.table) + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", b.anonKey)
	req.Header.Set("Authorization", "Bearer "+b.anonKey)
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", b.userAgent)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || (apiErr.Code == "" && apiErr.Message == "") {
		apiErr.Code = ""
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}
	return apiErr
}
