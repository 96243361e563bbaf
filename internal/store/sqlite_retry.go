package store

import (
	"context"
	"database/sql"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	maxRetries = 50
	baseDelay  = 10 * time.Millisecond
	maxDelay   = 25 * time.Millisecond
)

// isRetryableError checks if the error is a retryable SQLite error
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked") ||
		strings.Contains(errStr, "busy")
}

// retryDelay is a linear backoff capped at maxDelay plus up to 50% jitter.
func retryDelay(attempt int) time.Duration {
	delay := time.Duration(attempt+1) * baseDelay
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay + time.Duration(rand.Int63n(int64(delay)/2))
}

// sleepCtx waits d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// retryableQuery executes a query that returns multiple rows with retry logic for lock conflicts
func retryableQuery(ctx context.Context, db *sql.DB, logger *zap.Logger, query string, args ...any) (*sql.Rows, error) {
	var rows *sql.Rows
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		rows, err = db.QueryContext(ctx, query, args...)
		if !isRetryableError(err) {
			return rows, err
		}
		logger.Warn("SQLite retry for query",
			zap.Int("attempt", attempt+1), zap.Int("max", maxRetries),
			zap.String("query", truncateString(query, 50)), zap.Error(err))
		if serr := sleepCtx(ctx, retryDelay(attempt)); serr != nil {
			return nil, serr
		}
	}
	return rows, err
}

// retryableQueryRowScan executes a QueryRow and Scan with retry logic for lock conflicts
func retryableQueryRowScan(ctx context.Context, db *sql.DB, logger *zap.Logger, query string, args []any, dest ...any) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = db.QueryRowContext(ctx, query, args...).Scan(dest...)
		if !isRetryableError(err) {
			return err
		}
		logger.Warn("SQLite retry for QueryRow scan",
			zap.Int("attempt", attempt+1), zap.Int("max", maxRetries),
			zap.String("query", truncateString(query, 50)), zap.Error(err))
		if serr := sleepCtx(ctx, retryDelay(attempt)); serr != nil {
			return serr
		}
	}
	return err
}

// truncateString truncates a string to the specified length
func truncateString(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length]
}
