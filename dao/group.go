package dao

import (
	"context"

	"LuckyChat/models"

	"gorm.io/gorm"
)

type Group struct {
	Repo[models.Group]
}

func NewGroup(db *gorm.DB) *Group {
	return &Group{Repo: NewRepo[models.Group](db)}
}

func (g *Group) FindByID(ctx context.Context, groupID string) (*models.Group, error) {
	var group models.Group
	err := g.Db.WithContext(ctx).
		Where("id = ?", groupID).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (g *Group) ListByOwner(ctx context.Context, ownerID int64) ([]models.Group, error) {
	var groups []models.Group
	err := g.Db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&groups).Error
	return groups, err
}
