package pagestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PagesKey 是页面数组在 Redis 里的固定键。
const PagesKey = "coursecms:pages"

// RedisBlob 用单个 Redis 字符串键承载页面数组。
type RedisBlob struct {
	client *redis.Client
	key    string
}

func NewRedisBlob(client *redis.Client) *RedisBlob {
	return &RedisBlob{client: client, key: PagesKey}
}

func (b *RedisBlob) Read(ctx context.Context) ([]byte, error) {
	raw, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", b.key, err)
	}
	return raw, nil
}

func (b *RedisBlob) Write(ctx context.Context, data []byte) error {
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", b.key, err)
	}
	return nil
}
