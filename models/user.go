package models

import "time"

type User struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Username  string    `gorm:"column:username;size:64;uniqueIndex"`
	Password  string    `gorm:"column:password;size:128"` // bcrypt hash
	Nickname  string    `gorm:"column:nickname;size:64"`
	Avatar    string    `gorm:"column:avatar;size:255"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
