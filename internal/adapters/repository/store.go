// Package repository holds chat sessions for the lifetime of the process.
package repository

import (
	"context"

	"github.com/okian/gradebot/internal/domain/model"
)

// Eviction reasons passed to the eviction hook.
const (
	EvictCapacity = "capacity"
	EvictIdle     = "idle"
)

// Store provides access to live sessions.
type Store interface {
	// Create allocates a session with a fresh id.
	Create(ctx context.Context) (*model.Session, error)

	// Get returns a copy of the session. Returns ErrNotFound if unknown.
	Get(ctx context.Context, id string) (*model.Session, error)

	// Update runs fn on the live session. Calls are serialized, so fn may
	// mutate the session without further locking. fn must not retain it.
	Update(ctx context.Context, id string, fn func(*model.Session) error) error

	// Delete removes the session. Returns ErrNotFound if unknown.
	Delete(ctx context.Context, id string) error

	// Count returns the number of live sessions.
	Count(ctx context.Context) int
}
