package dao

import (
	"context"

	"LuckyChat/models"

	"gorm.io/gorm"
)

type Bank struct {
	Repo[models.BankAccount]
}

func NewBank(db *gorm.DB) *Bank {
	return &Bank{Repo: NewRepo[models.BankAccount](db)}
}

func (b *Bank) GetAccount(ctx context.Context, userID int64, personaID string) (*models.BankAccount, error) {
	var account models.BankAccount
	err := b.Db.WithContext(ctx).
		Where("user_id = ? AND persona_id = ?", userID, personaID).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (b *Bank) SaveAccount(ctx context.Context, account *models.BankAccount) error {
	return b.Db.WithContext(ctx).Save(account).Error
}

func (b *Bank) CreateAccount(ctx context.Context, account *models.BankAccount) error {
	return b.Db.WithContext(ctx).Create(account).Error
}
