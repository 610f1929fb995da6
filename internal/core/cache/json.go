package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

var nullEntry = []byte("null")

// GetOrLoadJSON is GetOrLoad for JSON values. A nil result from load is
// stored as "null" and comes back as nil, so absent records are cached too.
// An entry that no longer decodes into T is dropped and loaded again.
func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	encode := func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nullEntry, nil
		}
		return json.Marshal(v)
	}

	raw, err := c.GetOrLoad(ctx, key, ttl, encode)
	if err != nil {
		return nil, err
	}
	out, err := decodeJSON[T](raw)
	if err == nil {
		return out, nil
	}

	// stale shape, e.g. written by an older build
	if derr := c.Invalidate(ctx, key); derr != nil {
		return nil, fmt.Errorf("cache %s: %w", key, err)
	}
	raw, err = c.GetOrLoad(ctx, key, ttl, encode)
	if err != nil {
		return nil, err
	}
	return decodeJSON[T](raw)
}

func decodeJSON[T any](raw []byte) (*T, error) {
	if bytes.Equal(raw, nullEntry) {
		return nil, nil
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}
