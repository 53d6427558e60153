package keylock

import (
	"sync"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// KeyLock 按 key 维度的互斥锁注册表。
// 同一个 key（红包ID、好感度键）同一时刻只允许一个持有者执行读-改-写，
// 不同 key 互不影响。引用计数归零后条目自动清理，不会随 key 数量无限增长。
type KeyLock struct {
	entries cmap.ConcurrentMap[string, *entry]
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func New() *KeyLock {
	return &KeyLock{
		entries: cmap.New[*entry](),
	}
}

// Lock 阻塞直到拿到 key 对应的锁，返回释放函数。
// 释放函数在所有退出路径上都必须被调用（defer unlock()）。
func (k *KeyLock) Lock(key string) (unlock func()) {
	e := k.entries.Upsert(key, nil, func(exist bool, cur, _ *entry) *entry {
		if !exist {
			cur = &entry{}
		}
		cur.refs++
		return cur
	})

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()
			k.entries.RemoveCb(key, func(_ string, v *entry, exists bool) bool {
				if !exists {
					return false
				}
				v.refs--
				return v.refs == 0
			})
		})
	}
}

// Len 当前注册表中活跃的 key 数量，仅用于测试与观测。
func (k *KeyLock) Len() int {
	return k.entries.Count()
}
