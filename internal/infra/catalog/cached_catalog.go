package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cartservice/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// *redis.Client と memoryCache が満たす
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// read-through キャッシュ。キーは product:<id>
type CachedCatalog struct {
	cache    Cache
	upstream Source
	ttl      time.Duration
	// 上流なしのときだけリクエストの商品情報を受け付ける
	remembers bool
}

func NewCachedCatalog(cache Cache, upstream Source, ttl time.Duration) *CachedCatalog {
	_, none := upstream.(noSource)
	return &CachedCatalog{cache: cache, upstream: upstream, ttl: ttl, remembers: none}
}

func cacheKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func (c *CachedCatalog) Product(ctx context.Context, id string) (model.Product, error) {
	cached, err := c.cache.Get(ctx, cacheKey(id)).Result()
	switch {
	case err == nil:
		var p model.Product
		if jerr := json.Unmarshal([]byte(cached), &p); jerr == nil {
			return p, nil
		}
		// 壊れた値は上流で上書き
	case errors.Is(err, redis.Nil):
	default:
		return model.Product{}, fmt.Errorf("product cache: %w", err)
	}

	p, err := c.upstream.Product(ctx, id)
	if err != nil {
		return model.Product{}, err
	}

	if err := c.set(ctx, p, c.ttl); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 上流がある場合は何もしない（価格は上流が正）
// 上流なしの場合は唯一の情報源なので期限なしで保存する
func (c *CachedCatalog) Remember(ctx context.Context, p model.Product) error {
	if p.ID == "" {
		return errors.New("product id is empty")
	}
	if !c.remembers {
		return nil
	}
	return c.set(ctx, p, 0)
}

func (c *CachedCatalog) set(ctx context.Context, p model.Product, ttl time.Duration) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := c.cache.Set(ctx, cacheKey(p.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("product cache: %w", err)
	}
	return nil
}

var _ Catalog = (*CachedCatalog)(nil)
