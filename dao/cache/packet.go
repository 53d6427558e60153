package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"LuckyChat/models"

	"github.com/redis/go-redis/v9"
)

const packetTTL = 5 * time.Minute

// PacketCache 红包详情缓存。写路径总是先落库再失效，读路径 read-through。
type PacketCache struct {
	redis *redis.Client
}

func NewPacketCache(rds *redis.Client) *PacketCache {
	return &PacketCache{redis: rds}
}

func (c *PacketCache) key(packetID string) string {
	return fmt.Sprintf("redpacket:%s", packetID)
}

func (c *PacketCache) Get(ctx context.Context, packetID string) (*models.RedPacket, bool) {
	raw, err := c.redis.Get(ctx, c.key(packetID)).Bytes()
	if err != nil {
		return nil, false
	}

	var packet models.RedPacket
	if err := json.Unmarshal(raw, &packet); err != nil {
		return nil, false
	}
	return &packet, true
}

func (c *PacketCache) Set(ctx context.Context, packet *models.RedPacket) error {
	raw, err := json.Marshal(packet)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, c.key(packet.ID), raw, packetTTL).Err()
}

func (c *PacketCache) Del(ctx context.Context, packetID string) error {
	return c.redis.Del(ctx, c.key(packetID)).Err()
}
