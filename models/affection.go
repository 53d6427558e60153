package models

import (
	"time"

	"gorm.io/datatypes"
)

// AffectionEvent 好感度变动历史，最新的排在最前，最多保留 50 条
type AffectionEvent struct {
	Date     time.Time `json:"date"`
	Change   int       `json:"change"`
	Reason   string    `json:"reason"`
	OldScore int       `json:"oldScore"`
	NewScore int       `json:"newScore"`
}

// Affection 角色好感度，按 (character_id, session_id) 隔离。
// session_id 对应用户采用的人设身份，同一角色在不同人设下是独立的关系。
type Affection struct {
	ID          int64                               `gorm:"primaryKey;column:id"`
	CharacterID string                              `gorm:"column:character_id;size:64;uniqueIndex:uk_char_session"`
	SessionID   string                              `gorm:"column:session_id;size:64;uniqueIndex:uk_char_session"`
	Score       int                                 `gorm:"column:score;default:0"`
	Level       int                                 `gorm:"column:level;default:1"`
	LevelTitle  string                              `gorm:"column:level_title;size:32"`
	History     datatypes.JSONSlice[AffectionEvent] `gorm:"column:history"`
	CreatedAt   time.Time                           `gorm:"column:created_at"`
	UpdatedAt   time.Time                           `gorm:"column:updated_at"`
}

func (Affection) TableName() string {
	return "affections"
}
