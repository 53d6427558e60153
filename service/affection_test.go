package service

import (
	"context"
	"sync"
	"testing"

	"LuckyChat/models"
	"LuckyChat/pkg/keylock"

	"gorm.io/gorm"
)

type memAffectionStore struct {
	mu      sync.Mutex
	records map[string]models.Affection // key = characterID + "/" + sessionID
	owners  map[string]int64            // characterID -> userID，模拟 characters 表的归属
}

func newMemAffectionStore() *memAffectionStore {
	return &memAffectionStore{
		records: make(map[string]models.Affection),
		owners:  make(map[string]int64),
	}
}

func (m *memAffectionStore) setOwner(characterID string, userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners[characterID] = userID
}

func affKey(characterID, sessionID string) string {
	return characterID + "/" + sessionID
}

func cloneAffection(a models.Affection) models.Affection {
	history := make([]models.AffectionEvent, len(a.History))
	copy(history, a.History)
	a.History = history
	return a
}

func (m *memAffectionStore) Get(_ context.Context, characterID, sessionID string) (*models.Affection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.records[affKey(characterID, sessionID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := cloneAffection(a)
	return &out, nil
}

func (m *memAffectionStore) Save(_ context.Context, record *models.Affection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[affKey(record.CharacterID, record.SessionID)] = cloneAffection(*record)
	return nil
}

func (m *memAffectionStore) ListBySession(_ context.Context, userID int64, sessionID string) ([]models.Affection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Affection
	for _, a := range m.records {
		if a.SessionID == sessionID && m.owners[a.CharacterID] == userID {
			out = append(out, cloneAffection(a))
		}
	}
	return out, nil
}

func (m *memAffectionStore) DistinctSessions(_ context.Context, userID int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool)
	var out []string
	for _, a := range m.records {
		if m.owners[a.CharacterID] != userID {
			continue
		}
		if !seen[a.SessionID] {
			seen[a.SessionID] = true
			out = append(out, a.SessionID)
		}
	}
	return out, nil
}

func (m *memAffectionStore) DeleteByCharacter(_ context.Context, characterID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, a := range m.records {
		if a.CharacterID == characterID {
			delete(m.records, k)
		}
	}
	return nil
}

func newTestAffectionService() (*AffectionService, *memAffectionStore) {
	store := newMemAffectionStore()
	return NewAffectionService(store, keylock.New()), store
}

// 等级表必须无缝覆盖 [0,1000]，每个分数恰好落在一档
func TestAffectionLevelsContiguous(t *testing.T) {
	if affectionLevels[0].Min != 0 {
		t.Fatalf("first band starts at %d, want 0", affectionLevels[0].Min)
	}
	if last := affectionLevels[len(affectionLevels)-1]; last.Max != affectionMaxScore {
		t.Fatalf("last band ends at %d, want %d", last.Max, affectionMaxScore)
	}
	for i := 1; i < len(affectionLevels); i++ {
		prev, cur := affectionLevels[i-1], affectionLevels[i]
		if cur.Min != prev.Max+1 {
			t.Errorf("band %d starts at %d, expected %d", cur.Level, cur.Min, prev.Max+1)
		}
		if cur.Level != prev.Level+1 {
			t.Errorf("levels not increasing at band %d", i)
		}
	}
	for score := 0; score <= affectionMaxScore; score++ {
		level, title := levelFor(score)
		if level < 1 || level > 9 || title == "" {
			t.Fatalf("score %d maps to level %d title %q", score, level, title)
		}
	}
}

func TestAffectionGetDefault(t *testing.T) {
	svc, store := newTestAffectionService()
	ctx := context.Background()

	info, err := svc.Get(ctx, "char1", "")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if info.Score != 0 || info.Level != 1 || info.LevelTitle != "陌生人" {
		t.Errorf("default = %d/%d/%s, want 0/1/陌生人", info.Score, info.Level, info.LevelTitle)
	}
	if info.SessionID != DefaultSessionID {
		t.Errorf("session = %s, want %s", info.SessionID, DefaultSessionID)
	}
	if len(info.History) != 0 {
		t.Errorf("default history not empty")
	}

	// Get 不落库
	store.mu.Lock()
	n := len(store.records)
	store.mu.Unlock()
	if n != 0 {
		t.Errorf("Get() persisted %d records, want 0", n)
	}
}

func TestAffectionUpdate(t *testing.T) {
	svc, _ := newTestAffectionService()
	ctx := context.Background()

	delta, err := svc.Update(ctx, "char1", 8, "送了红包", "")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if delta.OldScore != 0 || delta.NewScore != 8 {
		t.Errorf("scores = %d -> %d, want 0 -> 8", delta.OldScore, delta.NewScore)
	}
	if delta.Level != 1 || delta.LevelUp || delta.LevelDown {
		t.Errorf("unexpected level change: %+v", delta)
	}

	info, _ := svc.Get(ctx, "char1", "")
	if info.Score != 8 {
		t.Errorf("persisted score = %d, want 8", info.Score)
	}
	if len(info.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(info.History))
	}
	if ev := info.History[0]; ev.Change != 8 || ev.Reason != "送了红包" || ev.OldScore != 0 || ev.NewScore != 8 {
		t.Errorf("history entry = %+v", ev)
	}
}

// change 为 0 是合法输入，分数不变但事件照常计入历史
func TestAffectionUpdateZeroChange(t *testing.T) {
	svc, _ := newTestAffectionService()
	ctx := context.Background()

	if _, err := svc.Update(ctx, "char1", 5, "", ""); err != nil {
		t.Fatal(err)
	}
	delta, err := svc.Update(ctx, "char1", 0, "打了个招呼", "")
	if err != nil {
		t.Fatalf("Update(0) error = %v", err)
	}
	if delta.OldScore != 5 || delta.NewScore != 5 || delta.Change != 0 {
		t.Errorf("delta = %+v, want 5 -> 5 change 0", delta)
	}

	info, _ := svc.Get(ctx, "char1", "")
	if len(info.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(info.History))
	}
	if info.History[0].Change != 0 {
		t.Errorf("newest entry change = %d, want 0", info.History[0].Change)
	}
}

func TestAffectionLevelTransitions(t *testing.T) {
	svc, _ := newTestAffectionService()
	ctx := context.Background()

	// 49 -> 52 跨过 50 的边界，升到点头之交
	if _, err := svc.Update(ctx, "char1", 49, "", ""); err != nil {
		t.Fatal(err)
	}
	delta, err := svc.Update(ctx, "char1", 3, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if !delta.LevelUp || delta.Level != 2 || delta.LevelTitle != "点头之交" {
		t.Errorf("expected level up to 2/点头之交, got %+v", delta)
	}

	// 跌回去
	delta, err = svc.Update(ctx, "char1", -5, "冷落", "")
	if err != nil {
		t.Fatal(err)
	}
	if !delta.LevelDown || delta.Level != 1 {
		t.Errorf("expected level down to 1, got %+v", delta)
	}
}

func TestAffectionClamp(t *testing.T) {
	svc, _ := newTestAffectionService()
	ctx := context.Background()

	delta, _ := svc.Update(ctx, "char1", -10, "", "")
	if delta.NewScore != 0 {
		t.Errorf("score clamped to %d, want 0", delta.NewScore)
	}

	// 顶到上限后不再增长
	for i := 0; i < 120; i++ {
		if _, err := svc.Update(ctx, "char2", 10, "", ""); err != nil {
			t.Fatal(err)
		}
	}
	info, _ := svc.Get(ctx, "char2", "")
	if info.Score != affectionMaxScore {
		t.Errorf("score = %d, want %d", info.Score, affectionMaxScore)
	}
	if info.Level != 9 || info.LevelTitle != "挚爱" {
		t.Errorf("level = %d/%s, want 9/挚爱", info.Level, info.LevelTitle)
	}
}

func TestAffectionHistoryCap(t *testing.T) {
	svc, _ := newTestAffectionService()
	ctx := context.Background()

	for i := 0; i < affectionMaxHistory+10; i++ {
		if _, err := svc.Update(ctx, "char1", 1, "", ""); err != nil {
			t.Fatal(err)
		}
	}
	info, _ := svc.Get(ctx, "char1", "")
	if len(info.History) != affectionMaxHistory {
		t.Fatalf("history length = %d, want %d", len(info.History), affectionMaxHistory)
	}
	// 最新在前
	if info.History[0].NewScore != affectionMaxHistory+10 {
		t.Errorf("newest entry score = %d, want %d", info.History[0].NewScore, affectionMaxHistory+10)
	}
}

// 不同 session 下同一角色是独立的关系
func TestAffectionSessionIsolation(t *testing.T) {
	svc, _ := newTestAffectionService()
	ctx := context.Background()

	if _, err := svc.Update(ctx, "char1", 100, "", "player"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Update(ctx, "char1", 5, "", "persona_rich"); err != nil {
		t.Fatal(err)
	}

	a, _ := svc.Get(ctx, "char1", "player")
	b, _ := svc.Get(ctx, "char1", "persona_rich")
	if a.Score != 100 || b.Score != 5 {
		t.Errorf("scores = %d / %d, want 100 / 5", a.Score, b.Score)
	}
}

func TestAffectionSessions(t *testing.T) {
	svc, store := newTestAffectionService()
	ctx := context.Background()

	sessions, err := svc.Sessions(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || sessions[0] != DefaultSessionID {
		t.Errorf("empty store sessions = %v, want [%s]", sessions, DefaultSessionID)
	}

	store.setOwner("char1", 1)
	_, _ = svc.Update(ctx, "char1", 1, "", "persona_rich")
	_, _ = svc.Update(ctx, "char1", 1, "", "player")

	sessions, _ = svc.Sessions(ctx, 1)
	if sessions[0] != DefaultSessionID {
		t.Errorf("default session not first: %v", sessions)
	}
	if len(sessions) != 2 {
		t.Errorf("sessions = %v, want player + persona_rich", sessions)
	}
}

// session 列表按用户隔离，不能看到别人角色的人设
func TestAffectionSessionsScopedToUser(t *testing.T) {
	svc, store := newTestAffectionService()
	ctx := context.Background()

	store.setOwner("char1", 1)
	store.setOwner("char2", 2)
	_, _ = svc.Update(ctx, "char1", 1, "", "persona_rich")
	_, _ = svc.Update(ctx, "char2", 1, "", "persona_secret")

	sessions, err := svc.Sessions(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, sid := range sessions {
		if sid == "persona_secret" {
			t.Fatalf("user 1 sees user 2's session: %v", sessions)
		}
	}
	if len(sessions) != 2 {
		t.Errorf("user 1 sessions = %v, want player + persona_rich", sessions)
	}

	infos, err := svc.ListBySession(ctx, 1, "persona_secret")
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 0 {
		t.Errorf("user 1 can list user 2's records: %+v", infos)
	}
}

func TestAffectionResetCharacter(t *testing.T) {
	svc, _ := newTestAffectionService()
	ctx := context.Background()

	_, _ = svc.Update(ctx, "char1", 50, "", "player")
	_, _ = svc.Update(ctx, "char1", 50, "", "persona_rich")
	_, _ = svc.Update(ctx, "char2", 50, "", "player")

	if err := svc.ResetCharacter(ctx, "char1"); err != nil {
		t.Fatal(err)
	}

	a, _ := svc.Get(ctx, "char1", "player")
	if a.Score != 0 {
		t.Errorf("char1 score = %d after reset, want 0", a.Score)
	}
	b, _ := svc.Get(ctx, "char2", "player")
	if b.Score != 50 {
		t.Errorf("char2 score = %d, want 50 (untouched)", b.Score)
	}
}

func TestAffectionConcurrentUpdates(t *testing.T) {
	svc, _ := newTestAffectionService()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Update(ctx, "char1", 1, "", ""); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	info, _ := svc.Get(ctx, "char1", "")
	if info.Score != 50 {
		t.Errorf("score = %d after 50 concurrent +1, want 50", info.Score)
	}
}
