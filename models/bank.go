package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	BankTxIncome  = "income"
	BankTxExpense = "expense"
)

type BankTransaction struct {
	ID         string `json:"id"`
	Type       string `json:"type"` // income / expense
	Amount     int64  `json:"amount"` // 分，始终为正，方向由 Type 决定
	Source     string `json:"source"`
	SourceName string `json:"source_name"`
	Note       string `json:"note"`
	Timestamp  int64  `json:"timestamp"` // 毫秒
}

// BankAccount 虚拟银行账户，按 (user_id, persona_id) 隔离。
// 流水最新的排在最前。
type BankAccount struct {
	ID           int64                                  `gorm:"primaryKey;column:id"`
	UserID       int64                                  `gorm:"column:user_id;uniqueIndex:uk_user_persona"`
	PersonaID    string                                 `gorm:"column:persona_id;size:64;uniqueIndex:uk_user_persona"`
	Balance      int64                                  `gorm:"column:balance"` // 分
	Currency     string                                 `gorm:"column:currency;size:8;default:CNY"`
	Transactions datatypes.JSONSlice[BankTransaction]   `gorm:"column:transactions"`
	CreatedAt    time.Time                              `gorm:"column:created_at"`
	UpdatedAt    time.Time                              `gorm:"column:updated_at"`
}

func (BankAccount) TableName() string {
	return "bank_accounts"
}
