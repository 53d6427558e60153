package dao

import (
	"context"

	"LuckyChat/models"

	"gorm.io/gorm"
)

type Affection struct {
	Repo[models.Affection]
}

func NewAffection(db *gorm.DB) *Affection {
	return &Affection{Repo: NewRepo[models.Affection](db)}
}

func (a *Affection) Get(ctx context.Context, characterID, sessionID string) (*models.Affection, error) {
	var record models.Affection
	err := a.Db.WithContext(ctx).
		Where("character_id = ? AND session_id = ?", characterID, sessionID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListBySession 只包含调用者自己角色的记录，按角色归属过滤
func (a *Affection) ListBySession(ctx context.Context, userID int64, sessionID string) ([]models.Affection, error) {
	var records []models.Affection
	err := a.Db.WithContext(ctx).
		Where("session_id = ? AND character_id IN (?)", sessionID, a.ownedCharacters(userID)).
		Find(&records).Error
	return records, err
}

// DistinctSessions 从好感度记录推断某个用户出现过的 sessionId
func (a *Affection) DistinctSessions(ctx context.Context, userID int64) ([]string, error) {
	var sessions []string
	err := a.Db.WithContext(ctx).
		Model(&models.Affection{}).
		Where("character_id IN (?)", a.ownedCharacters(userID)).
		Distinct("session_id").
		Pluck("session_id", &sessions).Error
	return sessions, err
}

func (a *Affection) ownedCharacters(userID int64) *gorm.DB {
	return a.Db.Model(&models.Character{}).Select("id").Where("user_id = ?", userID)
}

// DeleteByCharacter 删除角色在所有 session 下的好感度（重置角色状态）
func (a *Affection) DeleteByCharacter(ctx context.Context, characterID string) error {
	return a.Db.WithContext(ctx).
		Where("character_id = ?", characterID).
		Delete(&models.Affection{}).Error
}
