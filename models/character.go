package models

import "time"

// Character AI 角色卡
type Character struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	UserID    int64     `gorm:"column:user_id;index:idx_user_id"`
	Name      string    `gorm:"column:name;size:64"`
	Avatar    string    `gorm:"column:avatar;size:255"`
	Persona   string    `gorm:"column:persona;type:text"` // 人设提示词
	Greeting  string    `gorm:"column:greeting;size:512"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Character) TableName() string {
	return "characters"
}

// Persona 用户人设身份。sessionId 即人设ID，好感度与银行账本都按它隔离。
type Persona struct {
	ID             string    `gorm:"primaryKey;column:id;size:64"`
	UserID         int64     `gorm:"column:user_id;index:idx_user_id"`
	Name           string    `gorm:"column:name;size:64"`
	Avatar         string    `gorm:"column:avatar;size:255"`
	InitialBalance int64     `gorm:"column:initial_balance"` // 分
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (Persona) TableName() string {
	return "personas"
}
