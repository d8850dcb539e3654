package locker

import (
	"context"
	"sync"

	cmap "github.com/orcaman/concurrent-map/v2"
)

type entry struct {
	ch   chan struct{}
	refs int // 持有或等待该 key 的调用数，受 cmap 分片锁保护
}

// Local 进程内按 key 互斥，单实例部署使用
type Local struct {
	m cmap.ConcurrentMap[string, *entry]
}

func NewLocal() *Local {
	return &Local{m: cmap.New[*entry]()}
}

// Acquire 获取 key 对应的锁，ctx 取消时放弃等待
func (l *Local) Acquire(ctx context.Context, key string) (func(), error) {
	e := l.m.Upsert(key, nil, func(exist bool, old *entry, _ *entry) *entry {
		if !exist || old == nil {
			old = &entry{ch: make(chan struct{}, 1)}
		}
		old.refs++
		return old
	})

	select {
	case e.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.ch
				l.release(key)
			})
		}, nil
	case <-ctx.Done():
		l.release(key)
		return nil, ctx.Err()
	}
}

func (l *Local) release(key string) {
	l.m.RemoveCb(key, func(_ string, e *entry, exists bool) bool {
		if !exists {
			return false
		}
		e.refs--
		return e.refs <= 0
	})
}

// Len 当前被持有或等待的 key 数量
func (l *Local) Len() int {
	return l.m.Count()
}
