package cache

import (
	"Focus/config"
	"Focus/dao"
	"Focus/models"
	"Focus/pkg/jsonutil"
	"Focus/pkg/log"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RewardCache 奖励目录读缓存。库存以数据库为准，扣减后删除缓存。
type RewardCache struct {
	redis *redis.Client
	dao   *dao.Reward
	ttl   time.Duration
	group singleflight.Group
}

func NewRewardCache(rds *redis.Client, rewardDAO *dao.Reward, conf *config.Config) *RewardCache {
	return &RewardCache{
		redis: rds,
		dao:   rewardDAO,
		ttl:   conf.Reward.CacheTTL(),
	}
}

func (c *RewardCache) Get(ctx context.Context, rewardID uint64) (*models.RewardItem, error) {
	// 事务内读取权威数据
	if dao.InTx(ctx) {
		return c.dao.Get(ctx, rewardID)
	}

	key := c.name(rewardID)
	val, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		item := &models.RewardItem{}
		if err := jsonutil.Decode(val, item); err == nil {
			return item, nil
		}
		log.L.Warn("decode reward cache failed", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		log.L.Warn("read reward cache failed", zap.String("key", key), zap.Error(err))
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		item, err := c.dao.Get(ctx, rewardID)
		if err != nil {
			return nil, err
		}
		if err := c.redis.Set(ctx, key, jsonutil.Encode(item), c.ttl).Err(); err != nil {
			log.L.Warn("write reward cache failed", zap.String("key", key), zap.Error(err))
		}
		return item, nil
	})
	if err != nil {
		return nil, err
	}
	return clone(v.(*models.RewardItem)), nil
}

func (c *RewardCache) List(ctx context.Context, onlyActive bool) ([]models.RewardItem, error) {
	return c.dao.List(ctx, onlyActive)
}

func (c *RewardCache) DecrementStock(ctx context.Context, rewardID uint64) error {
	err := c.dao.DecrementStock(ctx, rewardID)
	c.Invalidate(ctx, rewardID)
	return err
}

func (c *RewardCache) Invalidate(ctx context.Context, rewardID uint64) {
	if err := c.redis.Del(context.WithoutCancel(ctx), c.name(rewardID)).Err(); err != nil {
		log.L.Warn("invalidate reward cache failed", zap.Uint64("reward_id", rewardID), zap.Error(err))
	}
}

// reward:item:{id}
func (c *RewardCache) name(rewardID uint64) string {
	return fmt.Sprintf("reward:item:%d", rewardID)
}

// singleflight 的结果被多个调用方共享，返回副本
func clone(item *models.RewardItem) *models.RewardItem {
	cp := *item
	if item.StockQuantity != nil {
		stock := *item.StockQuantity
		cp.StockQuantity = &stock
	}
	return &cp
}
