// Package store persists world snapshots per session, so a hosting service
// can run one world per conversation. The core is single-threaded per world;
// backends carry their own synchronization.
package store

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/corecraft/worldkit/world"
)

// ErrNotFound is returned when a session has no stored world.
var ErrNotFound = errors.New("world not found")

// WorldStore persists worlds keyed by session ID. Load returns a private
// copy; mutations are not visible until saved back.
type WorldStore interface {
	Load(ctx context.Context, sessionID string) (*world.World, error)
	Save(ctx context.Context, sessionID string, w *world.World) error
	Delete(ctx context.Context, sessionID string) error
	List(ctx context.Context) ([]string, error)
}
