package dao

import (
	"context"
	"time"

	"LuckyChat/dao/cache"
	"LuckyChat/models"
	"LuckyChat/pkg/log"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RedPacket struct {
	Repo[models.RedPacket]
	cache *cache.PacketCache
}

func NewRedPacket(db *gorm.DB, packetCache *cache.PacketCache) *RedPacket {
	return &RedPacket{
		Repo:  NewRepo[models.RedPacket](db),
		cache: packetCache,
	}
}

// GetPacket 读取红包，缓存 read-through。抢红包路径持有红包锁，
// 缓存里不会出现比库里新的数据。
func (r *RedPacket) GetPacket(ctx context.Context, groupID, packetID string) (*models.RedPacket, error) {
	if packet, ok := r.cache.Get(ctx, packetID); ok && packet.GroupID == groupID {
		return packet, nil
	}

	var packet models.RedPacket
	err := r.Db.WithContext(ctx).
		Where("id = ? AND group_id = ?", packetID, groupID).
		First(&packet).Error
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, &packet); err != nil {
		log.L.Warn("cache red packet", zap.String("packet_id", packetID), zap.Error(err))
	}
	return &packet, nil
}

// SavePacket 落库并刷新缓存
func (r *RedPacket) SavePacket(ctx context.Context, packet *models.RedPacket) error {
	if err := r.Db.WithContext(ctx).Save(packet).Error; err != nil {
		return err
	}
	if err := r.cache.Set(ctx, packet); err != nil {
		log.L.Warn("refresh red packet cache", zap.String("packet_id", packet.ID), zap.Error(err))
	}
	return nil
}

func (r *RedPacket) CreatePacket(ctx context.Context, packet *models.RedPacket) error {
	return r.Db.WithContext(ctx).Create(packet).Error
}

// ListPackets 按创建时间倒序返回群里的红包
func (r *RedPacket) ListPackets(ctx context.Context, groupID string) ([]models.RedPacket, error) {
	var packets []models.RedPacket
	err := r.Db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&packets).Error
	return packets, err
}

// ListExpiredOpen 返回已过有效期但还未标记过期的红包
func (r *RedPacket) ListExpiredOpen(ctx context.Context, now time.Time) ([]models.RedPacket, error) {
	var packets []models.RedPacket
	err := r.Db.WithContext(ctx).
		Where("status = ? AND expired_at < ?", models.RedPacketStatusAvailable, now).
		Find(&packets).Error
	return packets, err
}
