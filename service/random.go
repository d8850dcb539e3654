package service

import (
	"math/rand"
	"sync"
	"time"
)

// RandomSource 返回 [0,1) 内的均匀随机数
type RandomSource interface {
	NextUniform() float64
}

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomSource seed 为 0 时按当前时间播种；固定 seed 用于测试复现
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) NextUniform() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

// recordingSource 记录本次抽奖用到的全部随机数
type recordingSource struct {
	src   RandomSource
	rolls []float64
}

func (r *recordingSource) NextUniform() float64 {
	u := r.src.NextUniform()
	r.rolls = append(r.rolls, u)
	return u
}
