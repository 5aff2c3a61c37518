package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// 锁 key 统一挂在服务自己的命名空间下，避免和共享 Redis 里
// 其他服务的 key 冲突
const keyPrefix = "boundless:lock:"

// ErrNotHeld 表示释放了一把本实例没有持有的锁
var ErrNotHeld = errors.New("锁不归本实例持有")

// DistributedLock 定义分布式锁接口
type DistributedLock interface {
	// Acquire 尝试获取锁
	// key: 锁的唯一标识
	// ttl: 锁的过期时间
	// 返回: (是否成功, error)
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release 释放锁
	Release(ctx context.Context, key string) error
}

// RedisLock 基于 Redis SET NX 的实现。
// 每次 Acquire 生成一个归属 token，Release 用 Lua 比对后才删除:
// 锁过期后被其他实例抢走时，迟到的 Release 不会误删别人的锁。
type RedisLock struct {
	client *redis.Client

	mu     sync.Mutex
	tokens map[string]string
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func NewRedisLock(client *redis.Client) *RedisLock {
	return &RedisLock{client: client, tokens: make(map[string]string)}
}

func lockKey(key string) string {
	return keyPrefix + key
}

func (l *RedisLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	token := uuid.NewString()
	success, err := l.client.SetNX(ctx, lockKey(key), token, ttl).Result()
	if err != nil {
		return false, err
	}
	if success {
		l.mu.Lock()
		l.tokens[key] = token
		l.mu.Unlock()
	}
	return success, nil
}

func (l *RedisLock) Release(ctx context.Context, key string) error {
	l.mu.Lock()
	token, ok := l.tokens[key]
	delete(l.tokens, key)
	l.mu.Unlock()
	if !ok {
		return ErrNotHeld
	}

	deleted, err := releaseScript.Run(ctx, l.client, []string{lockKey(key)}, token).Int()
	if err != nil {
		return err
	}
	if deleted == 0 {
		// 锁已过期并被其他实例接手，不算错误但要让调用方知道
		return ErrNotHeld
	}
	return nil
}
