package service

import (
	"Focus/config"
	"Focus/dao/cache"
	"Focus/models"
	"Focus/pkg/locker"
	"context"

	"github.com/redis/go-redis/v9"
)

// RewardCatalog 奖励目录，由目录服务维护，这里只读取和扣库存
type RewardCatalog interface {
	// Get 不存在时返回 gorm.ErrRecordNotFound
	Get(ctx context.Context, rewardID uint64) (*models.RewardItem, error)
	List(ctx context.Context, onlyActive bool) ([]models.RewardItem, error)
	// DecrementStock 库存已为 0 时返回 dao.ErrStockExhausted
	DecrementStock(ctx context.Context, rewardID uint64) error
}

type UserRepository interface {
	Exists(ctx context.Context, userID uint64) (bool, error)
}

// Locker 按 key 互斥，release 可重复调用
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, body []byte) error
}

func NewLocker(conf *config.Config, rds *redis.Client) Locker {
	if conf.Reward.LockDriver == config.LockDriverRedis {
		return cache.NewUserLock(rds, conf)
	}
	return locker.NewLocal()
}
