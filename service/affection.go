package service

import (
	"context"
	"errors"
	"time"

	"LuckyChat/models"
	"LuckyChat/pkg/keylock"
	"LuckyChat/types"

	"gorm.io/gorm"
)

const (
	affectionMaxScore   = 1000
	affectionMaxHistory = 50
	// 未显式传 sessionId 时使用的默认人设
	DefaultSessionID = "player"
)

// 好感度等级表：9 档连续覆盖 [0,1000]，每个整数分值恰好落在一档
var affectionLevels = []types.AffectionLevel{
	{Min: 0, Max: 50, Level: 1, Title: "陌生人"},
	{Min: 51, Max: 100, Level: 2, Title: "点头之交"},
	{Min: 101, Max: 200, Level: 3, Title: "普通朋友"},
	{Min: 201, Max: 350, Level: 4, Title: "好朋友"},
	{Min: 351, Max: 500, Level: 5, Title: "密友"},
	{Min: 501, Max: 650, Level: 6, Title: "暧昧中"},
	{Min: 651, Max: 800, Level: 7, Title: "恋人"},
	{Min: 801, Max: 900, Level: 8, Title: "热恋"},
	{Min: 901, Max: 1000, Level: 9, Title: "挚爱"},
}

func levelFor(score int) (int, string) {
	if score < 0 {
		score = 0
	}
	if score > affectionMaxScore {
		score = affectionMaxScore
	}
	for _, l := range affectionLevels {
		if score >= l.Min && score <= l.Max {
			return l.Level, l.Title
		}
	}
	return 1, affectionLevels[0].Title
}

// AffectionStore 好感度存取。gorm 实现见 dao.Affection。
type AffectionStore interface {
	Get(ctx context.Context, characterID, sessionID string) (*models.Affection, error)
	Save(ctx context.Context, record *models.Affection) error
	ListBySession(ctx context.Context, userID int64, sessionID string) ([]models.Affection, error)
	DistinctSessions(ctx context.Context, userID int64) ([]string, error)
	DeleteByCharacter(ctx context.Context, characterID string) error
}

type IAffectionService interface {
	Get(ctx context.Context, characterID, sessionID string) (*types.AffectionInfo, error)
	Update(ctx context.Context, characterID string, change int, reason, sessionID string) (*types.AffectionDelta, error)
	ListBySession(ctx context.Context, userID int64, sessionID string) ([]*types.AffectionInfo, error)
	Sessions(ctx context.Context, userID int64) ([]string, error)
	Levels() []types.AffectionLevel
	ResetCharacter(ctx context.Context, characterID string) error
}

var _ IAffectionService = (*AffectionService)(nil)

type AffectionService struct {
	store AffectionStore
	locks *keylock.KeyLock
}

func NewAffectionService(store AffectionStore, locks *keylock.KeyLock) *AffectionService {
	return &AffectionService{store: store, locks: locks}
}

// Get 返回好感度，没有记录时返回初始值但不落库
func (s *AffectionService) Get(ctx context.Context, characterID, sessionID string) (*types.AffectionInfo, error) {
	sessionID = normalizeSession(sessionID)

	record, err := s.store.Get(ctx, characterID, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaultAffection(characterID, sessionID), nil
		}
		return nil, err
	}
	return toAffectionInfo(record), nil
}

// Update 应用一次好感度变更。change 由调用方预先收敛到 [-10,10]，
// 这里不拒绝越界输入，只保证结果分数落在 [0,1000]。
// 同一 (character, session) 的并发变更被按键串行化，分数和历史
// 都基于锁内新读出的记录计算。
func (s *AffectionService) Update(ctx context.Context, characterID string, change int, reason, sessionID string) (*types.AffectionDelta, error) {
	sessionID = normalizeSession(sessionID)
	if reason == "" {
		reason = "互动"
	}

	unlock := s.locks.Lock("affection:" + characterID + ":" + sessionID)
	defer unlock()

	record, err := s.store.Get(ctx, characterID, sessionID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		level, title := levelFor(0)
		record = &models.Affection{
			CharacterID: characterID,
			SessionID:   sessionID,
			Score:       0,
			Level:       level,
			LevelTitle:  title,
			History:     []models.AffectionEvent{},
		}
	}

	oldScore := record.Score
	oldLevel := record.Level

	newScore := oldScore + change
	if newScore < 0 {
		newScore = 0
	}
	if newScore > affectionMaxScore {
		newScore = affectionMaxScore
	}

	level, title := levelFor(newScore)
	record.Score = newScore
	record.Level = level
	record.LevelTitle = title

	// 历史最新在前，最多保留 50 条
	history := append([]models.AffectionEvent{{
		Date:     time.Now(),
		Change:   change,
		Reason:   reason,
		OldScore: oldScore,
		NewScore: newScore,
	}}, record.History...)
	if len(history) > affectionMaxHistory {
		history = history[:affectionMaxHistory]
	}
	record.History = history

	if err := s.store.Save(ctx, record); err != nil {
		return nil, err
	}

	return &types.AffectionDelta{
		CharacterID: characterID,
		SessionID:   sessionID,
		OldScore:    oldScore,
		NewScore:    newScore,
		Change:      change,
		Reason:      reason,
		Level:       level,
		LevelTitle:  title,
		LevelUp:     level > oldLevel,
		LevelDown:   level < oldLevel,
	}, nil
}

// ListBySession 只返回该用户自己角色的好感度
func (s *AffectionService) ListBySession(ctx context.Context, userID int64, sessionID string) ([]*types.AffectionInfo, error) {
	sessionID = normalizeSession(sessionID)

	records, err := s.store.ListBySession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	infos := make([]*types.AffectionInfo, 0, len(records))
	for i := range records {
		infos = append(infos, toAffectionInfo(&records[i]))
	}
	return infos, nil
}

// Sessions 列出该用户出现过的人设 session，保证默认人设始终在首位
func (s *AffectionService) Sessions(ctx context.Context, userID int64) ([]string, error) {
	sessions, err := s.store.DistinctSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := []string{DefaultSessionID}
	for _, sid := range sessions {
		if sid != DefaultSessionID {
			result = append(result, sid)
		}
	}
	return result, nil
}

func (s *AffectionService) Levels() []types.AffectionLevel {
	return affectionLevels
}

// ResetCharacter 清空角色在所有 session 下的好感度
func (s *AffectionService) ResetCharacter(ctx context.Context, characterID string) error {
	return s.store.DeleteByCharacter(ctx, characterID)
}

func normalizeSession(sessionID string) string {
	if sessionID == "" {
		return DefaultSessionID
	}
	return sessionID
}

func defaultAffection(characterID, sessionID string) *types.AffectionInfo {
	level, title := levelFor(0)
	return &types.AffectionInfo{
		CharacterID: characterID,
		SessionID:   sessionID,
		Score:       0,
		Level:       level,
		LevelTitle:  title,
		History:     []models.AffectionEvent{},
	}
}

func toAffectionInfo(r *models.Affection) *types.AffectionInfo {
	history := r.History
	if history == nil {
		history = []models.AffectionEvent{}
	}
	return &types.AffectionInfo{
		CharacterID: r.CharacterID,
		SessionID:   r.SessionID,
		Score:       r.Score,
		Level:       r.Level,
		LevelTitle:  r.LevelTitle,
		History:     history,
	}
}
