package notify

import (
	"sync"
	"sync/atomic"
	"time"

	"LuckyChat/pkg/log"

	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/zap"
)

// Event 推送给客户端的统一信封
type Event struct {
	Event     string      `json:"event"`
	Payload   interface{} `json:"payload"`
	Timestamp int64       `json:"timestamp"` // 毫秒
}

type client struct {
	userID  int64
	conn    *websocket.Conn
	writeMu sync.Mutex
	// 读循环刷新、清理协程读取，必须原子访问
	lastPing atomic.Int64 // Unix 秒
}

func (c *client) send(ev *Event) error {
	// gorilla 的连接不允许并发写
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(ev)
}

// Hub 在线连接表。一个用户可以有多条连接（多端），按 clientID 索引。
type Hub struct {
	clients cmap.ConcurrentMap[string, *client]
}

func NewHub() *Hub {
	return &Hub{clients: cmap.New[*client]()}
}

// Register 登记一条新连接，返回的 clientID 用于注销
func (h *Hub) Register(clientID string, userID int64, conn *websocket.Conn) {
	c := &client{
		userID: userID,
		conn:   conn,
	}
	c.lastPing.Store(time.Now().Unix())
	h.clients.Set(clientID, c)
}

func (h *Hub) Unregister(clientID string) {
	if c, ok := h.clients.Get(clientID); ok {
		h.clients.Remove(clientID)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	}
}

// Touch 收到客户端心跳时刷新活跃时间
func (h *Hub) Touch(clientID string) {
	if c, ok := h.clients.Get(clientID); ok {
		c.lastPing.Store(time.Now().Unix())
	}
}

// Push 向某个用户的全部在线连接推送事件，离线时静默丢弃
func (h *Hub) Push(userID int64, event string, payload interface{}) {
	ev := &Event{
		Event:     event,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	}
	for item := range h.clients.IterBuffered() {
		if item.Val.userID != userID {
			continue
		}
		if err := item.Val.send(ev); err != nil {
			log.L.Warn("ws push failed, dropping client",
				zap.String("client_id", item.Key),
				zap.Int64("user_id", userID),
				zap.Error(err))
			h.Unregister(item.Key)
		}
	}
}

// Broadcast 向所有在线连接推送
func (h *Hub) Broadcast(event string, payload interface{}) {
	ev := &Event{
		Event:     event,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	}
	for item := range h.clients.IterBuffered() {
		if err := item.Val.send(ev); err != nil {
			h.Unregister(item.Key)
		}
	}
}

// StartChecker 周期清理心跳超时的假在线连接
func (h *Hub) StartChecker() {
	go func() {
		for {
			time.Sleep(30 * time.Second)
			h.evictStale(time.Now().Unix())
		}
	}()
}

// evictStale 踢掉超过 60 秒没有心跳的连接
func (h *Hub) evictStale(now int64) {
	for item := range h.clients.IterBuffered() {
		if now-item.Val.lastPing.Load() > 60 {
			h.Unregister(item.Key)
		}
	}
}

func (h *Hub) OnlineCount() int {
	return h.clients.Count()
}
