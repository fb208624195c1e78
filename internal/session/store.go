package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a session id has no record.
var ErrNotFound = errors.New("session not found")

// Store is the session registry. The orchestrator is the sole writer for
// a session id during its processing run; implementations only need to
// make individual operations atomic.
type Store interface {
	// Put inserts or replaces the record for sess.ID.
	Put(ctx context.Context, sess *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	// List returns metadata summaries for every stored session.
	List(ctx context.Context) ([]Summary, error)
	// All returns full records, used by the retention sweep and stats.
	All(ctx context.Context) ([]*Session, error)
	// Delete removes the record and returns it, or ErrNotFound.
	Delete(ctx context.Context, id string) (*Session, error)
	Count(ctx context.Context) (int, error)
}
