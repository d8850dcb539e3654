package service

import (
	"Focus/models"
	"math"
)

// TierOdds 单个稀有度的概率，Bound 为累计上界
type TierOdds struct {
	Tier        models.RarityTier
	Probability float64
	Bound       float64
	Prizes      string
}

type TierTable []TierOdds

// DefaultTierTable 普通 70%，稀有 25%，史诗 4%，传说 1%
var DefaultTierTable = NewTierTable([]TierOdds{
	{Tier: models.TierCommon, Probability: 0.70, Prizes: "积分 5-20"},
	{Tier: models.TierRare, Probability: 0.25, Prizes: "60% 积分 20-50，40% 碎片 1"},
	{Tier: models.TierEpic, Probability: 0.04, Prizes: "70% 积分 50-100，30% 碎片 2-3"},
	{Tier: models.TierLegendary, Probability: 0.01, Prizes: "40% 积分 100-200，40% 碎片 3-5，20% 虚拟奖品"},
})

// NewTierTable 计算累计上界，按 1e-9 取整消除浮点累加误差
func NewTierTable(odds []TierOdds) TierTable {
	table := make(TierTable, len(odds))
	var sum float64
	for i, o := range odds {
		sum += o.Probability
		o.Bound = math.Round(sum*1e9) / 1e9
		table[i] = o
	}
	return table
}

// Select 第一个累计上界 >= r 的稀有度，越界时取最后一档
func (t TierTable) Select(r float64) models.RarityTier {
	for _, o := range t {
		if r <= o.Bound {
			return o.Tier
		}
	}
	return t[len(t)-1].Tier
}

type Prize struct {
	Kind   models.PrizeKind
	Amount int64
}

// GeneratePrize 先抽奖品类型再抽数量，随机数消耗顺序固定
func GeneratePrize(tier models.RarityTier, src RandomSource) Prize {
	switch tier {
	case models.TierRare:
		if src.NextUniform() < 0.6 {
			return Prize{Kind: models.PrizePoints, Amount: uniformInt(src, 20, 50)}
		}
		return Prize{Kind: models.PrizeFragment, Amount: 1}
	case models.TierEpic:
		if src.NextUniform() < 0.7 {
			return Prize{Kind: models.PrizePoints, Amount: uniformInt(src, 50, 100)}
		}
		return Prize{Kind: models.PrizeFragment, Amount: uniformInt(src, 2, 3)}
	case models.TierLegendary:
		u := src.NextUniform()
		switch {
		case u < 0.4:
			return Prize{Kind: models.PrizePoints, Amount: uniformInt(src, 100, 200)}
		case u < 0.8:
			return Prize{Kind: models.PrizeFragment, Amount: uniformInt(src, 3, 5)}
		default:
			return Prize{Kind: models.PrizeVirtual, Amount: 1}
		}
	default:
		return Prize{Kind: models.PrizePoints, Amount: uniformInt(src, 5, 20)}
	}
}

// uniformInt 闭区间 [lo, hi] 内的整数
func uniformInt(src RandomSource, lo, hi int64) int64 {
	n := lo + int64(src.NextUniform()*float64(hi-lo+1))
	if n > hi {
		return hi
	}
	return n
}
