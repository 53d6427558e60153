package service

import (
	"context"
	"errors"
	"fmt"

	"LuckyChat/models"
	"LuckyChat/pkg/keylock"
	"LuckyChat/pkg/response"
	"LuckyChat/pkg/snowflake"
	"LuckyChat/types"

	"gorm.io/gorm"
)

var (
	ErrGroupNotFound = response.NewError(40402, "群聊不存在")
	ErrInvalidGroup  = response.NewError(40008, "群名不能为空")
	ErrMemberExists  = response.NewError(40009, "成员已在群内")
	ErrInvalidMember = response.NewError(40010, "成员信息不完整")
)

// GroupStore 群存取。gorm 实现见 dao.Group。
type GroupStore interface {
	Create(ctx context.Context, group *models.Group) error
	Save(ctx context.Context, group *models.Group) error
	FindByID(ctx context.Context, groupID string) (*models.Group, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Group, error)
}

type IGroupService interface {
	Create(ctx context.Context, ownerID int64, req *types.CreateGroupRequest) (*types.GroupInfo, error)
	Get(ctx context.Context, groupID string) (*types.GroupInfo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*types.GroupInfo, error)
	AddMember(ctx context.Context, groupID string, member models.GroupMember) (*types.GroupInfo, error)
	Members(ctx context.Context, groupID string) ([]models.GroupMember, error)
}

var _ IGroupService = (*GroupService)(nil)

type GroupService struct {
	store GroupStore
	locks *keylock.KeyLock
}

func NewGroupService(store GroupStore, locks *keylock.KeyLock) *GroupService {
	return &GroupService{store: store, locks: locks}
}

func (s *GroupService) Create(ctx context.Context, ownerID int64, req *types.CreateGroupRequest) (*types.GroupInfo, error) {
	if req.Name == "" {
		return nil, ErrInvalidGroup
	}

	members := make([]models.GroupMember, 0, len(req.Members))
	for _, m := range req.Members {
		if m.ID == "" || m.Name == "" {
			return nil, ErrInvalidMember
		}
		if m.Type == "" {
			m.Type = models.MemberTypeCustom
		}
		members = append(members, m)
	}

	group := &models.Group{
		ID:      fmt.Sprintf("g_%d", snowflake.GenID()),
		OwnerID: ownerID,
		Name:    req.Name,
		Avatar:  req.Avatar,
		Members: members,
	}
	if err := s.store.Create(ctx, group); err != nil {
		return nil, err
	}
	return toGroupInfo(group), nil
}

func (s *GroupService) Get(ctx context.Context, groupID string) (*types.GroupInfo, error) {
	group, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return toGroupInfo(group), nil
}

func (s *GroupService) ListByOwner(ctx context.Context, ownerID int64) ([]*types.GroupInfo, error) {
	groups, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	infos := make([]*types.GroupInfo, 0, len(groups))
	for i := range groups {
		infos = append(infos, toGroupInfo(&groups[i]))
	}
	return infos, nil
}

// AddMember 拉人入群，同一群的并发改动被按键串行化
func (s *GroupService) AddMember(ctx context.Context, groupID string, member models.GroupMember) (*types.GroupInfo, error) {
	if member.ID == "" || member.Name == "" {
		return nil, ErrInvalidMember
	}
	if member.Type == "" {
		member.Type = models.MemberTypeCustom
	}

	unlock := s.locks.Lock("group:" + groupID)
	defer unlock()

	group, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	for _, m := range group.Members {
		if m.ID == member.ID {
			return nil, ErrMemberExists
		}
	}
	group.Members = append(group.Members, member)
	if err := s.store.Save(ctx, group); err != nil {
		return nil, err
	}
	return toGroupInfo(group), nil
}

func (s *GroupService) Members(ctx context.Context, groupID string) ([]models.GroupMember, error) {
	group, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return group.Members, nil
}

func (s *GroupService) findGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := s.store.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func toGroupInfo(group *models.Group) *types.GroupInfo {
	members := group.Members
	if members == nil {
		members = []models.GroupMember{}
	}
	return &types.GroupInfo{
		ID:      group.ID,
		OwnerID: group.OwnerID,
		Name:    group.Name,
		Avatar:  group.Avatar,
		Members: members,
	}
}
