package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"LuckyChat/models"
	"LuckyChat/pkg/keylock"
	"LuckyChat/types"

	"gorm.io/gorm"
)

// memPacketStore 内存版红包存储，读写都走深拷贝，模拟数据库语义
type memPacketStore struct {
	mu      sync.Mutex
	packets map[string]models.RedPacket
}

func newMemPacketStore() *memPacketStore {
	return &memPacketStore{packets: make(map[string]models.RedPacket)}
}

func clonePacket(p models.RedPacket) models.RedPacket {
	records := make([]models.ClaimRecord, len(p.Records))
	copy(records, p.Records)
	p.Records = records
	return p
}

func (m *memPacketStore) GetPacket(_ context.Context, groupID, packetID string) (*models.RedPacket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.packets[packetID]
	if !ok || p.GroupID != groupID {
		return nil, gorm.ErrRecordNotFound
	}
	out := clonePacket(p)
	return &out, nil
}

func (m *memPacketStore) CreatePacket(_ context.Context, packet *models.RedPacket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.packets[packet.ID] = clonePacket(*packet)
	return nil
}

func (m *memPacketStore) SavePacket(_ context.Context, packet *models.RedPacket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.packets[packet.ID] = clonePacket(*packet)
	return nil
}

func (m *memPacketStore) ListPackets(_ context.Context, groupID string) ([]models.RedPacket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.RedPacket
	for _, p := range m.packets {
		if p.GroupID == groupID {
			out = append(out, clonePacket(p))
		}
	}
	return out, nil
}

func (m *memPacketStore) ListExpiredOpen(_ context.Context, now time.Time) ([]models.RedPacket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.RedPacket
	for _, p := range m.packets {
		if p.Status == models.RedPacketStatusAvailable && now.After(p.ExpiredAt) {
			out = append(out, clonePacket(p))
		}
	}
	return out, nil
}

// 测试里直接改底层数据，绕过服务层
func (m *memPacketStore) mutate(packetID string, fn func(*models.RedPacket)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.packets[packetID]
	fn(&p)
	m.packets[packetID] = p
}

// memMessages 收集发出的群消息
type memMessages struct {
	mu   sync.Mutex
	msgs []models.GroupMessage
}

func (m *memMessages) Append(_ context.Context, msg *models.GroupMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, *msg)
	return nil
}

func (m *memMessages) List(_ context.Context, groupID string, _ int64, _ int) ([]models.GroupMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.GroupMessage
	for _, msg := range m.msgs {
		if msg.GroupID == groupID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *memMessages) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.msgs)
}

func newTestRedPacketService(seed int64) (*RedPacketService, *memPacketStore, *memMessages) {
	store := newMemPacketStore()
	messages := &memMessages{}
	svc := &RedPacketService{
		store:    store,
		messages: messages,
		locks:    keylock.New(),
		rng:      newLockedRand(seed),
	}
	return svc, store, messages
}

func TestRedPacketCreate(t *testing.T) {
	svc, _, messages := newTestRedPacketService(1)
	ctx := context.Background()

	info, err := svc.Create(ctx, "g1", &types.SendRedPacketRequest{
		TotalAmount: 10.00,
		TotalNum:    5,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if info.ID == "" {
		t.Error("empty packet id")
	}
	if info.SenderID != "user" || info.SenderName != "我" {
		t.Errorf("sender defaults not applied: %s / %s", info.SenderID, info.SenderName)
	}
	if info.Wishes != "恭喜发财，大吉大利" {
		t.Errorf("wishes default not applied: %s", info.Wishes)
	}
	if info.Status != models.RedPacketStatusAvailable {
		t.Errorf("status = %s, want available", info.Status)
	}
	if info.RemainAmount != 10.00 || info.RemainNum != 5 {
		t.Errorf("remain = %.2f / %d, want 10.00 / 5", info.RemainAmount, info.RemainNum)
	}
	if messages.count() != 1 {
		t.Errorf("expected one red packet message, got %d", messages.count())
	}
}

func TestRedPacketCreateValidation(t *testing.T) {
	svc, _, _ := newTestRedPacketService(1)
	ctx := context.Background()

	tests := []struct {
		name    string
		amount  float64
		num     int
		wantErr error
	}{
		{"zero amount", 0, 5, ErrInvalidAmount},
		{"negative amount", -1, 5, ErrInvalidAmount},
		{"zero count", 10, 0, ErrInvalidCount},
		{"negative count", 10, -3, ErrInvalidCount},
		{"amount below one fen per person", 0.04, 5, ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "g1", &types.SendRedPacketRequest{
				TotalAmount: tt.amount,
				TotalNum:    tt.num,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRedPacketGrabLifecycle(t *testing.T) {
	svc, _, _ := newTestRedPacketService(3)
	ctx := context.Background()

	info, err := svc.Create(ctx, "g1", &types.SendRedPacketRequest{
		SenderID:    "npc_a",
		SenderName:  "阿狸",
		TotalAmount: 8.88,
		TotalNum:    4,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var sum float64
	for i := 0; i < 4; i++ {
		result, err := svc.Grab(ctx, "g1", info.ID, &types.GrabRedPacketRequest{
			UserID:   fmt.Sprintf("u%d", i),
			UserName: fmt.Sprintf("用户%d", i),
		})
		if err != nil {
			t.Fatalf("Grab(%d) error = %v", i, err)
		}
		if result.AlreadyClaimed {
			t.Fatalf("Grab(%d) unexpectedly already claimed", i)
		}
		if result.Amount < 0.01 {
			t.Errorf("Grab(%d) amount %.2f below minimum", i, result.Amount)
		}
		sum += result.Amount
	}

	if diff := sum - 8.88; diff > 0.001 || diff < -0.001 {
		t.Errorf("claimed sum = %.2f, want 8.88", sum)
	}

	final, err := svc.Get(ctx, "g1", info.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if final.Status != models.RedPacketStatusFinished {
		t.Errorf("status = %s, want finished", final.Status)
	}
	if final.RemainAmount != 0 || final.RemainNum != 0 {
		t.Errorf("remain = %.2f / %d, want zero", final.RemainAmount, final.RemainNum)
	}

	// 手气最佳有且只有一个，且是金额最大者
	bestCount := 0
	var bestAmount, maxAmount float64
	for _, r := range final.Records {
		if r.Amount > maxAmount {
			maxAmount = r.Amount
		}
		if r.IsBest {
			bestCount++
			bestAmount = r.Amount
		}
	}
	if bestCount != 1 {
		t.Fatalf("best luck count = %d, want 1", bestCount)
	}
	if bestAmount != maxAmount {
		t.Errorf("best luck amount = %.2f, max = %.2f", bestAmount, maxAmount)
	}

	// 第五个人抢不到
	_, err = svc.Grab(ctx, "g1", info.ID, &types.GrabRedPacketRequest{UserID: "u9"})
	if !errors.Is(err, ErrPacketExhausted) {
		t.Errorf("expected ErrPacketExhausted, got %v", err)
	}
}

func TestRedPacketGrabIdempotent(t *testing.T) {
	svc, _, _ := newTestRedPacketService(5)
	ctx := context.Background()

	info, _ := svc.Create(ctx, "g1", &types.SendRedPacketRequest{TotalAmount: 5, TotalNum: 3})

	first, err := svc.Grab(ctx, "g1", info.ID, &types.GrabRedPacketRequest{UserID: "u1"})
	if err != nil {
		t.Fatalf("first Grab() error = %v", err)
	}

	second, err := svc.Grab(ctx, "g1", info.ID, &types.GrabRedPacketRequest{UserID: "u1"})
	if err != nil {
		t.Fatalf("second Grab() error = %v", err)
	}
	if !second.AlreadyClaimed {
		t.Error("second grab should report AlreadyClaimed")
	}
	if second.Amount != first.Amount {
		t.Errorf("duplicate grab amount = %.2f, want %.2f", second.Amount, first.Amount)
	}

	// 重复领取不消耗份数
	if second.Packet.RemainNum != 2 {
		t.Errorf("remain num = %d, want 2", second.Packet.RemainNum)
	}
}

func TestRedPacketGrabErrors(t *testing.T) {
	svc, store, _ := newTestRedPacketService(7)
	ctx := context.Background()

	if _, err := svc.Grab(ctx, "g1", "rp_missing", &types.GrabRedPacketRequest{UserID: "u1"}); !errors.Is(err, ErrPacketNotFound) {
		t.Errorf("expected ErrPacketNotFound, got %v", err)
	}

	info, _ := svc.Create(ctx, "g1", &types.SendRedPacketRequest{TotalAmount: 5, TotalNum: 2})

	// 错误的群里看不到这个红包
	if _, err := svc.Grab(ctx, "g2", info.ID, &types.GrabRedPacketRequest{UserID: "u1"}); !errors.Is(err, ErrPacketNotFound) {
		t.Errorf("expected ErrPacketNotFound for wrong group, got %v", err)
	}

	store.mutate(info.ID, func(p *models.RedPacket) {
		p.ExpiredAt = time.Now().Add(-time.Minute)
	})
	if _, err := svc.Grab(ctx, "g1", info.ID, &types.GrabRedPacketRequest{UserID: "u1"}); !errors.Is(err, ErrPacketExpired) {
		t.Errorf("expected ErrPacketExpired, got %v", err)
	}
}

// 过期优先于已领完：过了有效期的红包即使还有剩余也不能抢
func TestRedPacketExpiredBeforeExhausted(t *testing.T) {
	svc, store, _ := newTestRedPacketService(11)
	ctx := context.Background()

	info, _ := svc.Create(ctx, "g1", &types.SendRedPacketRequest{TotalAmount: 1, TotalNum: 1})
	if _, err := svc.Grab(ctx, "g1", info.ID, &types.GrabRedPacketRequest{UserID: "u1"}); err != nil {
		t.Fatalf("Grab() error = %v", err)
	}

	store.mutate(info.ID, func(p *models.RedPacket) {
		p.Status = models.RedPacketStatusAvailable
		p.ExpiredAt = time.Now().Add(-time.Minute)
	})
	_, err := svc.Grab(ctx, "g1", info.ID, &types.GrabRedPacketRequest{UserID: "u2"})
	if !errors.Is(err, ErrPacketExpired) {
		t.Errorf("expected ErrPacketExpired, got %v", err)
	}
}

func TestRedPacketConcurrentGrabs(t *testing.T) {
	svc, _, _ := newTestRedPacketService(13)
	ctx := context.Background()

	const claimants = 20
	info, err := svc.Create(ctx, "g1", &types.SendRedPacketRequest{TotalAmount: 66.66, TotalNum: claimants})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var wg sync.WaitGroup
	results := make([]*types.GrabResult, claimants)
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := svc.Grab(ctx, "g1", info.ID, &types.GrabRedPacketRequest{
				UserID: fmt.Sprintf("u%d", i),
			})
			if err != nil {
				t.Errorf("Grab(%d) error = %v", i, err)
				return
			}
			results[i] = r
		}(i)
	}
	wg.Wait()

	var sum int64
	for i, r := range results {
		if r == nil {
			t.Fatalf("missing result %d", i)
		}
		if r.AlreadyClaimed {
			t.Errorf("grab %d reported AlreadyClaimed", i)
		}
		sum += int64(r.Amount*100 + 0.5)
	}
	if sum != 6666 {
		t.Errorf("claimed total = %d fen, want 6666", sum)
	}

	final, _ := svc.Get(ctx, "g1", info.ID)
	if final.RemainNum != 0 || final.RemainAmount != 0 {
		t.Errorf("remain = %.2f / %d after concurrent drain", final.RemainAmount, final.RemainNum)
	}
}

func TestRedPacketExpireOverdue(t *testing.T) {
	svc, store, _ := newTestRedPacketService(17)
	ctx := context.Background()

	open, _ := svc.Create(ctx, "g1", &types.SendRedPacketRequest{TotalAmount: 5, TotalNum: 2})
	stale, _ := svc.Create(ctx, "g1", &types.SendRedPacketRequest{TotalAmount: 5, TotalNum: 2})
	store.mutate(stale.ID, func(p *models.RedPacket) {
		p.ExpiredAt = time.Now().Add(-time.Hour)
	})

	n, err := svc.ExpireOverdue(ctx)
	if err != nil {
		t.Fatalf("ExpireOverdue() error = %v", err)
	}
	if n != 1 {
		t.Errorf("expired count = %d, want 1", n)
	}

	got, _ := svc.Get(ctx, "g1", stale.ID)
	if got.Status != models.RedPacketStatusExpired {
		t.Errorf("stale packet status = %s, want expired", got.Status)
	}
	fresh, _ := svc.Get(ctx, "g1", open.ID)
	if fresh.Status != models.RedPacketStatusAvailable {
		t.Errorf("open packet status = %s, want available", fresh.Status)
	}
}
