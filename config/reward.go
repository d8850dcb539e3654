package config

import "time"

const (
	LockDriverLocal = "local"
	LockDriverRedis = "redis"
)

// Reward 碎片经济相关配置
type Reward struct {
	LockDriver      string `json:"lock_driver" yaml:"lock_driver"`             // local | redis
	LockTTLMs       int    `json:"lock_ttl_ms" yaml:"lock_ttl_ms"`             // 分布式锁自动过期
	LockWaitMs      int    `json:"lock_wait_ms" yaml:"lock_wait_ms"`           // 抢锁最长等待
	LotteryCost     int64  `json:"lottery_cost" yaml:"lottery_cost"`           // 单次抽奖默认消耗碎片
	RandomSeed      int64  `json:"random_seed" yaml:"random_seed"`             // 0 表示按时间播种
	HashSalt        string `json:"hash_salt" yaml:"hash_salt"`                 // 兑换凭证编码盐值
	CatalogCacheTTL int    `json:"catalog_cache_ttl" yaml:"catalog_cache_ttl"` // 秒
	SnowflakeNode   int64  `json:"snowflake_node" yaml:"snowflake_node"`
}

func (r *Reward) applyDefaults() {
	if r.LockDriver == "" {
		r.LockDriver = LockDriverLocal
	}
	if r.LockTTLMs <= 0 {
		r.LockTTLMs = 5000
	}
	if r.LockWaitMs <= 0 {
		r.LockWaitMs = 3000
	}
	if r.LotteryCost <= 0 {
		r.LotteryCost = 5
	}
	if r.HashSalt == "" {
		r.HashSalt = "focus-reward"
	}
	if r.CatalogCacheTTL <= 0 {
		r.CatalogCacheTTL = 60
	}
	if r.SnowflakeNode <= 0 {
		r.SnowflakeNode = 1
	}
}

func (r *Reward) LockTTL() time.Duration {
	return time.Duration(r.LockTTLMs) * time.Millisecond
}

func (r *Reward) LockWait() time.Duration {
	return time.Duration(r.LockWaitMs) * time.Millisecond
}

func (r *Reward) CacheTTL() time.Duration {
	return time.Duration(r.CatalogCacheTTL) * time.Second
}
