package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"LuckyChat/models"
	"LuckyChat/pkg/keylock"
	"LuckyChat/types"

	"gorm.io/gorm"
)

type memGroupStore struct {
	mu     sync.Mutex
	groups map[string]models.Group
}

func newMemGroupStore() *memGroupStore {
	return &memGroupStore{groups: make(map[string]models.Group)}
}

func cloneGroup(g models.Group) models.Group {
	members := make([]models.GroupMember, len(g.Members))
	copy(members, g.Members)
	g.Members = members
	return g
}

func (m *memGroupStore) Create(_ context.Context, group *models.Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups[group.ID] = cloneGroup(*group)
	return nil
}

func (m *memGroupStore) Save(_ context.Context, group *models.Group) error {
	return m.Create(nil, group)
}

func (m *memGroupStore) FindByID(_ context.Context, groupID string) (*models.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.groups[groupID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := cloneGroup(g)
	return &out, nil
}

func (m *memGroupStore) ListByOwner(_ context.Context, ownerID int64) ([]models.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Group
	for _, g := range m.groups {
		if g.OwnerID == ownerID {
			out = append(out, cloneGroup(g))
		}
	}
	return out, nil
}

func newTestGroupService() *GroupService {
	return NewGroupService(newMemGroupStore(), keylock.New())
}

func TestGroupCreate(t *testing.T) {
	svc := newTestGroupService()
	ctx := context.Background()

	group, err := svc.Create(ctx, 1, &types.CreateGroupRequest{
		Name: "相亲相爱一家人",
		Members: []models.GroupMember{
			{ID: "npc_a", Name: "阿狸"},
			{ID: "npc_b", Name: "小白", Type: models.MemberTypePreset},
		},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if group.ID == "" || group.OwnerID != 1 {
		t.Errorf("group = %+v", group)
	}
	// 未指定类型的成员按自建 NPC 处理
	if group.Members[0].Type != models.MemberTypeCustom {
		t.Errorf("member type = %s, want custom", group.Members[0].Type)
	}
	if group.Members[1].Type != models.MemberTypePreset {
		t.Errorf("member type = %s, want preset", group.Members[1].Type)
	}

	if _, err := svc.Create(ctx, 1, &types.CreateGroupRequest{Name: ""}); !errors.Is(err, ErrInvalidGroup) {
		t.Errorf("expected ErrInvalidGroup, got %v", err)
	}
}

func TestGroupAddMember(t *testing.T) {
	svc := newTestGroupService()
	ctx := context.Background()

	group, _ := svc.Create(ctx, 1, &types.CreateGroupRequest{Name: "g"})

	updated, err := svc.AddMember(ctx, group.ID, models.GroupMember{ID: "npc_a", Name: "阿狸"})
	if err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	if len(updated.Members) != 1 {
		t.Fatalf("members = %d, want 1", len(updated.Members))
	}

	if _, err := svc.AddMember(ctx, group.ID, models.GroupMember{ID: "npc_a", Name: "阿狸"}); !errors.Is(err, ErrMemberExists) {
		t.Errorf("expected ErrMemberExists, got %v", err)
	}
	if _, err := svc.AddMember(ctx, group.ID, models.GroupMember{ID: "", Name: "x"}); !errors.Is(err, ErrInvalidMember) {
		t.Errorf("expected ErrInvalidMember, got %v", err)
	}
	if _, err := svc.AddMember(ctx, "missing", models.GroupMember{ID: "n", Name: "x"}); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestGroupConcurrentAddMembers(t *testing.T) {
	svc := newTestGroupService()
	ctx := context.Background()

	group, _ := svc.Create(ctx, 1, &types.CreateGroupRequest{Name: "g"})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.AddMember(ctx, group.ID, models.GroupMember{
				ID:   string(rune('a' + i)),
				Name: "成员",
			})
			if err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	members, _ := svc.Members(ctx, group.ID)
	if len(members) != 20 {
		t.Errorf("members = %d after concurrent adds, want 20", len(members))
	}
}
