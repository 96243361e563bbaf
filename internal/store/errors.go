package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by a Backend when no article matches the requested id.
	ErrNotFound = errors.New("article not found")

	// ErrNotConfigured is returned by a Backend whose credentials are missing or placeholders.
	// No network call has been made when this is returned.
	ErrNotConfigured = errors.New("store client is not configured")
)

// PostgREST error codes that mean "there is no such row".
const (
	CodeNoRows       = "PGRST116" // object requested, 0 (or >1) rows returned
	CodeInvalidInput = "22P02"    // id not valid for the column type, e.g. malformed uuid
)

// APIError is the JSON error body PostgREST returns with non-2xx responses.
type APIError struct {
	StatusCode int     `json:"-"`
	Code       string  `json:"code"`
	Message    string  `json:"message"`
	Details    *string `json:"details"`
	Hint       *string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("postgrest: http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("postgrest: http %d: %s (%s)", e.StatusCode, e.Message, e.Code)
}

// Is lets errors.Is(err, ErrNotFound) match the "no row" error codes.
func (e *APIError) Is(target error) bool {
	if target != ErrNotFound {
		return false
	}
	return e.Code == CodeNoRows || e.Code == CodeInvalidInput
}
