package service

import (
	"context"

	"LuckyChat/dao"
	"LuckyChat/models"
)

type IMessageService interface {
	Append(ctx context.Context, msg *models.GroupMessage) error
	List(ctx context.Context, groupID string, beforeTimestamp int64, limit int) ([]models.GroupMessage, error)
}

var _ IMessageService = (*MessageService)(nil)

type MessageService struct {
	MessageDAO *dao.Message
}

func (m *MessageService) Append(ctx context.Context, msg *models.GroupMessage) error {
	return m.MessageDAO.Append(ctx, msg)
}

func (m *MessageService) List(ctx context.Context, groupID string, beforeTimestamp int64, limit int) ([]models.GroupMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return m.MessageDAO.List(ctx, groupID, beforeTimestamp, limit)
}
