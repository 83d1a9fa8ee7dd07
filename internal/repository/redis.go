package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// jsonStore keeps JSON documents under a key prefix. Every write refreshes
// the TTL so abandoned sessions expire on their own.
type jsonStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func (that *jsonStore) key(id string) string {
	return that.prefix + ":" + id
}

func (that *jsonStore) put(ctx context.Context, id string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal %s: %w", that.prefix, err)
	}

	if err = that.client.Set(ctx, that.key(id), data, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", that.prefix, err)
	}

	return nil
}

// get decodes the stored document into value. It reports found=false when
// the key is missing or expired.
func (that *jsonStore) get(ctx context.Context, id string, value any) (bool, error) {
	response, err := that.client.Get(ctx, that.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to get %s by id: %w", that.prefix, err)
	}

	if err = json.Unmarshal(response, value); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", that.prefix, err)
	}

	return true, nil
}

func (that *jsonStore) delete(ctx context.Context, id string) error {
	if err := that.client.Del(ctx, that.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s by id: %w", that.prefix, err)
	}

	return nil
}
