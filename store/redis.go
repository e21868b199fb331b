package store

import (
	"context"
	"path"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/redis/go-redis/v9"

	"github.com/corecraft/worldkit/world"
)

var logger = xlog.NewPackageLogger("github.com/corecraft/worldkit", "store")

// The redis store implements the WorldStore interface using Redis as the
// backend. Each session's world is stored as one JSON snapshot.
// The keys namespace is organized as follows:
// - `/<prefix>/worldstore/<sessionID>` for the world snapshot
// - `/<prefix>/worldstore/sessions` for the set of known session IDs

type redisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) WorldStore {
	return &redisStore{
		client: client,
		prefix: prefix,
	}
}

func (m *redisStore) getRedisWorldKey(sessionID string) string {
	return path.Join(m.prefix, "worldstore", sessionID)
}

func (m *redisStore) getRedisSessionListKey() string {
	return path.Join(m.prefix, "worldstore", "sessions")
}

func (m *redisStore) Load(ctx context.Context, sessionID string) (*world.World, error) {
	data, err := m.client.Get(ctx, m.getRedisWorldKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.WithStack(ErrNotFound)
		}
		logger.ContextKV(ctx, xlog.ERROR, "reason", "GetRedisWorld", "session", sessionID, "err", err.Error())
		return nil, errors.Wrap(err, "failed to get world from Redis")
	}
	w, err := world.FromJSON(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal world")
	}
	return w, nil
}

func (m *redisStore) Save(ctx context.Context, sessionID string, w *world.World) error {
	data, err := w.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "failed to marshal world")
	}

	pipe := m.client.Pipeline()
	pipe.Set(ctx, m.getRedisWorldKey(sessionID), data, 0)
	pipe.SAdd(ctx, m.getRedisSessionListKey(), sessionID)
	_, err = pipe.Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to store world in Redis")
	}
	return nil
}

func (m *redisStore) Delete(ctx context.Context, sessionID string) error {
	pipe := m.client.Pipeline()
	pipe.Del(ctx, m.getRedisWorldKey(sessionID))
	pipe.SRem(ctx, m.getRedisSessionListKey(), sessionID)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete world from Redis")
	}
	return nil
}

func (m *redisStore) List(ctx context.Context) ([]string, error) {
	ids, err := m.client.SMembers(ctx, m.getRedisSessionListKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to list sessions from Redis")
	}
	return ids, nil
}
