package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPlayerNotFound   = errors.New("player not found")
	ErrAnalysisNotFound = errors.New("analysis not found")

	// ErrConflict marks a write race on a ledger key. SQLite serializes
	// writers and status updates run in a single transaction, so this is
	// advisory: logged, resolved last-writer-wins, never surfaced to callers.
	ErrConflict = errors.New("concurrent update conflict")
)

// ValidationError reports rejected input with the offending field and value.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, fmt.Sprint(e.Value), e.Reason)
}

// UpstreamError wraps a scraper or LLM failure caught at the boundary. The
// ledger and board stay usable; callers report it without retrying writes.
type UpstreamError struct {
	Source string // "scraper" or "llm"
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s failure: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
