package cache

import (
	"Focus/config"
	"Focus/pkg/log"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// 只有持有者才能释放
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// UserLock 基于 redis 的分布式互斥锁，多实例部署时串行化同一用户的余额变更
type UserLock struct {
	redis *redis.Client
	ttl   time.Duration
	retry time.Duration
}

func NewUserLock(rds *redis.Client, conf *config.Config) *UserLock {
	return &UserLock{
		redis: rds,
		ttl:   conf.Reward.LockTTL(),
		retry: 10 * time.Millisecond,
	}
}

// Acquire 自旋抢锁直到成功或 ctx 结束
func (l *UserLock) Acquire(ctx context.Context, key string) (func(), error) {
	name := l.name(key)
	token := uuid.NewString()

	for {
		ok, err := l.redis.SetNX(ctx, name, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", name, err)
		}
		if ok {
			return func() { l.release(name, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}

func (l *UserLock) release(name, token string) {
	// 调用方的 ctx 可能已取消，释放不受其影响
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	n, err := unlockScript.Run(ctx, l.redis, []string{name}, token).Int()
	if err != nil {
		log.L.Warn("release lock failed", zap.String("key", name), zap.Error(err))
		return
	}
	if n == 0 {
		log.L.Warn("lock expired before release", zap.String("key", name))
	}
}

// reward:lock:{key}
func (l *UserLock) name(key string) string {
	return fmt.Sprintf("reward:lock:%s", key)
}
