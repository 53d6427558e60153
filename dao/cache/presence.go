package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Presence WebSocket 在线状态，多实例部署时以 Redis 为准
type Presence struct {
	redis *redis.Client
}

func NewPresence(rds *redis.Client) *Presence {
	return &Presence{redis: rds}
}

func (p *Presence) key(userID int64) string {
	return fmt.Sprintf("ws:online:%d", userID)
}

func (p *Presence) Bind(ctx context.Context, userID int64, clientID string) error {
	return p.redis.SAdd(ctx, p.key(userID), clientID).Err()
}

func (p *Presence) UnBind(ctx context.Context, userID int64, clientID string) error {
	return p.redis.SRem(ctx, p.key(userID), clientID).Err()
}

// IsOnline 判断用户是否有存活连接
func (p *Presence) IsOnline(ctx context.Context, userID int64) bool {
	val, err := p.redis.SCard(ctx, p.key(userID)).Result()
	return err == nil && val > 0
}
