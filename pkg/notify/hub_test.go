package notify

import (
	"sync"
	"testing"
	"time"
)

func TestHubEvictStale(t *testing.T) {
	h := NewHub()
	h.Register("c1", 1, nil)
	h.Register("c2", 2, nil)

	// c1 刚发过心跳，c2 早已超时
	h.Touch("c1")
	if c, ok := h.clients.Get("c2"); ok {
		c.lastPing.Store(time.Now().Unix() - 120)
	} else {
		t.Fatal("c2 not registered")
	}

	h.evictStale(time.Now().Unix())

	if _, ok := h.clients.Get("c1"); !ok {
		t.Error("active client was evicted")
	}
	if _, ok := h.clients.Get("c2"); ok {
		t.Error("stale client survived eviction")
	}
	if got := h.OnlineCount(); got != 1 {
		t.Errorf("OnlineCount = %d, want 1", got)
	}
}

func TestHubTouchUnknownClient(t *testing.T) {
	h := NewHub()
	h.Touch("ghost") // 不存在的连接不应 panic
}

// 心跳刷新和清理协程并发执行时不允许有数据竞争
func TestHubTouchConcurrentWithEvict(t *testing.T) {
	h := NewHub()
	for i := 0; i < 8; i++ {
		h.Register("c"+string(rune('a'+i)), int64(i), nil)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				h.Touch("ca")
				h.Touch("cb")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				h.evictStale(time.Now().Unix())
			}
		}()
	}
	wg.Wait()

	// 所有连接都保持活跃，不应被误踢
	if got := h.OnlineCount(); got != 8 {
		t.Errorf("OnlineCount = %d, want 8", got)
	}
}
