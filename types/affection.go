package types

import "LuckyChat/models"

// AffectionLevel 好感度等级区间，[Min, Max] 闭区间，9 档连续覆盖 0-1000
type AffectionLevel struct {
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Level int    `json:"level"`
	Title string `json:"title"`
}

type AffectionInfo struct {
	CharacterID string                  `json:"character_id"`
	SessionID   string                  `json:"session_id"`
	Score       int                     `json:"score"`
	Level       int                     `json:"level"`
	LevelTitle  string                  `json:"level_title"`
	History     []models.AffectionEvent `json:"history"`
}

// AffectionUpdateRequest 手动调整好感度。change 为 0 合法，不能标 required
type AffectionUpdateRequest struct {
	Change    int    `json:"change"`
	Reason    string `json:"reason"`
	SessionID string `json:"session_id"`
}

// AffectionDelta 一次好感度变更的结果，levelUp/levelDown 用于前端提示
type AffectionDelta struct {
	CharacterID string `json:"character_id"`
	SessionID   string `json:"session_id"`
	OldScore    int    `json:"oldScore"`
	NewScore    int    `json:"newScore"`
	Change      int    `json:"change"`
	Reason      string `json:"reason"`
	Level       int    `json:"level"`
	LevelTitle  string `json:"level_title"`
	LevelUp     bool   `json:"levelUp"`
	LevelDown   bool   `json:"levelDown"`
}
