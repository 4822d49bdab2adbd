package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var (
	ErrRedisUnavailable = errors.New("redis unavailable")
)

// SlotPrefix namespaces slot keys so the store can share a Redis db.
const SlotPrefix = "share:slot"

// SlotRepository 以 Redis 字符串键保存各个 slot，值为整份 JSON 文本，不设过期。
type SlotRepository struct {
	rdb *redis.Client
}

func NewSlotRepository(rdb *redis.Client) *SlotRepository {
	if rdb == nil {
		rdb = Client
	}
	return &SlotRepository{rdb: rdb}
}

func (r *SlotRepository) key(name string) string {
	return fmt.Sprintf("%s:%s", SlotPrefix, name)
}

func (r *SlotRepository) Get(ctx context.Context, name string) (string, bool, error) {
	v, err := r.rdb.Get(ctx, r.key(name)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return v, true, nil
}

func (r *SlotRepository) Set(ctx context.Context, name, value string) error {
	if err := r.rdb.Set(ctx, r.key(name), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (r *SlotRepository) Delete(ctx context.Context, name string) error {
	if err := r.rdb.Del(ctx, r.key(name)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (r *SlotRepository) Close() error {
	if r.rdb == Client {
		return Close()
	}
	return r.rdb.Close()
}
