package lock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockKeyNamespaced(t *testing.T) {
	assert.Equal(t, "boundless:lock:chain:reconcile", lockKey("chain:reconcile"))
}

func TestReleaseWithoutAcquire(t *testing.T) {
	// 没拿到过锁就释放: 本地就能判定，不需要碰 Redis
	l := NewRedisLock(nil)
	err := l.Release(context.Background(), "chain:reconcile")
	assert.ErrorIs(t, err, ErrNotHeld)
}
