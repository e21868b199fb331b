// Package worldtools exposes the entity store operations as agent tools.
// Each tool parses its JSON arguments, runs the corresponding operation
// against a world obtained from a Source and renders the result as JSON.
package worldtools

import (
	"context"

	"github.com/corecraft/worldkit/store"
	"github.com/corecraft/worldkit/world"
)

// Source supplies the world a tool call operates on and accepts it back
// after a mutation. Implementations decide what a commit means: a no-op for
// an in-process world, a save for a persisted session.
type Source interface {
	World(ctx context.Context) (*world.World, error)
	Commit(ctx context.Context, w *world.World) error
}

type directSource struct {
	w *world.World
}

// Direct returns a Source over an in-process world. Mutations apply in
// place, so Commit is a no-op.
func Direct(w *world.World) Source {
	return &directSource{w: w}
}

func (s *directSource) World(context.Context) (*world.World, error) {
	return s.w, nil
}

func (s *directSource) Commit(context.Context, *world.World) error {
	return nil
}

type sessionSource struct {
	store     store.WorldStore
	sessionID string
}

// Session returns a Source that loads the session's world from a WorldStore
// on every call and saves it back on commit.
func Session(st store.WorldStore, sessionID string) Source {
	return &sessionSource{store: st, sessionID: sessionID}
}

func (s *sessionSource) World(ctx context.Context) (*world.World, error) {
	return s.store.Load(ctx, s.sessionID)
}

func (s *sessionSource) Commit(ctx context.Context, w *world.World) error {
	return s.store.Save(ctx, s.sessionID, w)
}
