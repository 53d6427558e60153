package dao

import (
	"context"

	"LuckyChat/models"

	"gorm.io/gorm"
)

type Message struct {
	Repo[models.GroupMessage]
}

func NewMessage(db *gorm.DB) *Message {
	return &Message{Repo: NewRepo[models.GroupMessage](db)}
}

func (m *Message) Append(ctx context.Context, msg *models.GroupMessage) error {
	return m.Db.WithContext(ctx).Create(msg).Error
}

// List 按时间正序分页返回群消息
func (m *Message) List(ctx context.Context, groupID string, beforeTimestamp int64, limit int) ([]models.GroupMessage, error) {
	query := m.Db.WithContext(ctx).Where("group_id = ?", groupID)
	if beforeTimestamp > 0 {
		query = query.Where("timestamp < ?", beforeTimestamp)
	}

	var msgs []models.GroupMessage
	err := query.Order("timestamp ASC").Limit(limit).Find(&msgs).Error
	return msgs, err
}
