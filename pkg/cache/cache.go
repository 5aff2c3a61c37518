package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss 表示缓存未命中 (key 不存在或已过期)
var ErrMiss = errors.New("cache miss")

// Cache 定义通用缓存接口
// 钱包会话的持久化也走这个接口，服务端用 Redis，CLI 和测试用内存实现。
type Cache interface {
	// Set 设置缓存, ttl 为 0 表示不过期
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Get 获取缓存，并将结果 Unmarshal 到 target 中
	Get(ctx context.Context, key string, target interface{}) error
	// Delete 删除缓存
	Delete(ctx context.Context, key string) error
}
