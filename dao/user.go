package dao

import (
	"context"

	"LuckyChat/models"

	"gorm.io/gorm"
)

type User struct {
	Repo[models.User]
}

func NewUser(db *gorm.DB) *User {
	return &User{Repo: NewRepo[models.User](db)}
}

func (u *User) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := u.Db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *User) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := u.Db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}
