package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	MemberTypeUser   = "user"   // 真人用户
	MemberTypeMain   = "main"   // 角色卡主角色
	MemberTypePreset = "preset" // 预设NPC
	MemberTypeCustom = "custom" // 自建NPC
)

// GroupMember 群成员，NPC 和真人共用一套结构
type GroupMember struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Type   string `json:"type"`
}

type Group struct {
	ID        string                             `gorm:"primaryKey;column:id;size:64"`
	OwnerID   int64                              `gorm:"column:owner_id;index:idx_owner_id"`
	Name      string                             `gorm:"column:name;size:64"`
	Avatar    string                             `gorm:"column:avatar;size:255"`
	Members   datatypes.JSONSlice[GroupMember]   `gorm:"column:members"`
	CreatedAt time.Time                          `gorm:"column:created_at"`
	UpdatedAt time.Time                          `gorm:"column:updated_at"`
}

func (Group) TableName() string {
	return "chat_groups"
}
