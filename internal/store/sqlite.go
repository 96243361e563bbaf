package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver
	"go.uber.org/zap"

	"github.com/go-while/go-newsfeed/internal/config"
	"github.com/go-while/go-newsfeed/internal/models"
)

//go:embed migrations/*.sql
var embeddedMigrationsFS embed.FS

const articleColumns = `id, title, snippet, content, "imageUrl", "createdAt", category`

// SQLiteBackend reads articles from a local SQLite file with the remote table's columns.
type SQLiteBackend struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// OpenSQLiteBackend opens (creating if needed) the database at path and applies the schema.
func OpenSQLiteBackend(path string, logger *zap.Logger) (*SQLiteBackend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create data dir: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	b := &SQLiteBackend{db: db, path: path, logger: logger}
	if err := b.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("Opened SQLite article store", zap.String("path", path))
	return b, nil
}

// migrate applies every embedded migration in file name order. All statements are idempotent.
func (b *SQLiteBackend) migrate() error {
	files, err := fs.ReadDir(embeddedMigrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("sqlite: read embedded migrations: %w", err)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		if !f.IsDir() && filepath.Ext(f.Name()) == ".sql" {
			names = append(names, f.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		stmt, err := fs.ReadFile(embeddedMigrationsFS, "migrations/"+name)
		if err != nil {
			return fmt.Errorf("sqlite: read migration %s: %w", name, err)
		}
		if _, err := b.db.Exec(string(stmt)); err != nil {
			return fmt.Errorf("sqlite: apply migration %s: %w", name, err)
		}
		b.logger.Debug("Applied migration", zap.String("file", name))
	}
	return nil
}

func (b *SQLiteBackend) Name() string { return config.BackendSQLite }

// DB returns the underlying handle, for tooling and tests.
func (b *SQLiteBackend) DB() *sql.DB { return b.db }

// Close closes the database.
func (b *SQLiteBackend) Close() error { return b.db.Close() }

// QueryArticles returns all rows newest first.
func (b *SQLiteBackend) QueryArticles(ctx context.Context) ([]*models.Article, error) {
	rows, err := retryableQuery(ctx, b.db, b.logger,
		`SELECT `+articleColumns+` FROM articles ORDER BY "createdAt" DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query articles: %w", err)
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		a, err := scanArticle(rows.Scan)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate articles: %w", err)
	}
	return articles, nil
}

// QueryArticle returns the row with the given id or ErrNotFound.
func (b *SQLiteBackend) QueryArticle(ctx context.Context, id string) (*models.Article, error) {
	var (
		a         models.Article
		createdAt string
		category  sql.NullString
	)
	err := retryableQueryRowScan(ctx, b.db, b.logger,
		`SELECT `+articleColumns+` FROM articles WHERE id = ?`, []any{id},
		&a.ID, &a.Title, &a.Snippet, &a.Content, &a.ImageURL, &createdAt, &category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: query article %q: %w", id, err)
	}
	if err := fillArticle(&a, createdAt, category); err != nil {
		return nil, err
	}
	return &a, nil
}

func scanArticle(scan func(dest ...any) error) (*models.Article, error) {
	var (
		a         models.Article
		createdAt string
		category  sql.NullString
	)
	if err := scan(&a.ID, &a.Title, &a.Snippet, &a.Content, &a.ImageURL, &createdAt, &category); err != nil {
		return nil, fmt.Errorf("sqlite: scan article: %w", err)
	}
	if err := fillArticle(&a, createdAt, category); err != nil {
		return nil, err
	}
	return &a, nil
}

func fillArticle(a *models.Article, createdAt string, category sql.NullString) error {
	t, err := models.ParseTimestamp(createdAt)
	if err != nil {
		return fmt.Errorf("sqlite: article %s: %w", a.ID, err)
	}
	a.CreatedAt = t
	a.Category = category.String
	return nil
}
