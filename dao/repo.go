package dao

import (
	"context"

	"gorm.io/gorm"
)

// Repo 通用 DAO 基类，领域 DAO 内嵌它来复用 Db 句柄和基础操作
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

func (r Repo[T]) Create(ctx context.Context, m *T) error {
	return r.Db.WithContext(ctx).Create(m).Error
}

func (r Repo[T]) Save(ctx context.Context, m *T) error {
	return r.Db.WithContext(ctx).Save(m).Error
}

func (r Repo[T]) FindByID(ctx context.Context, id interface{}) (*T, error) {
	var m T
	if err := r.Db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
