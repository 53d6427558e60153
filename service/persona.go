package service

import (
	"context"
	"errors"
	"fmt"

	"LuckyChat/models"
	"LuckyChat/pkg/response"
	"LuckyChat/pkg/snowflake"
	"LuckyChat/pkg/utils"
	"LuckyChat/types"

	"gorm.io/gorm"
)

var (
	ErrPersonaNotFound       = response.NewError(40404, "人设不存在")
	ErrInvalidInitialBalance = response.NewError(40011, "初始余额不能为负")
)

// PersonaRepo 人设存取。gorm 实现见 dao.Persona。
// 包含 PersonaStore，银行开户查初始余额走同一实现。
type PersonaRepo interface {
	PersonaStore
	Create(ctx context.Context, persona *models.Persona) error
	Save(ctx context.Context, persona *models.Persona) error
	ListByUser(ctx context.Context, userID int64) ([]models.Persona, error)
	Delete(ctx context.Context, userID int64, personaID string) error
}

type IPersonaService interface {
	Create(ctx context.Context, userID int64, req *types.PersonaRequest) (*types.PersonaInfo, error)
	List(ctx context.Context, userID int64) ([]*types.PersonaInfo, error)
	Update(ctx context.Context, userID int64, personaID string, req *types.PersonaRequest) (*types.PersonaInfo, error)
	Delete(ctx context.Context, userID int64, personaID string) error
}

var _ IPersonaService = (*PersonaService)(nil)

type PersonaService struct {
	store PersonaRepo
}

func NewPersonaService(store PersonaRepo) *PersonaService {
	return &PersonaService{store: store}
}

// Create 新建人设，personaId 就是好感度和银行账本用的 sessionId
func (s *PersonaService) Create(ctx context.Context, userID int64, req *types.PersonaRequest) (*types.PersonaInfo, error) {
	if req.InitialBalance < 0 {
		return nil, ErrInvalidInitialBalance
	}

	persona := &models.Persona{
		ID:             fmt.Sprintf("persona_%d", snowflake.GenID()),
		UserID:         userID,
		Name:           req.Name,
		Avatar:         req.Avatar,
		InitialBalance: utils.ToCents(req.InitialBalance),
	}
	if err := s.store.Create(ctx, persona); err != nil {
		return nil, err
	}
	return toPersonaInfo(persona), nil
}

func (s *PersonaService) List(ctx context.Context, userID int64) ([]*types.PersonaInfo, error) {
	personas, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]*types.PersonaInfo, 0, len(personas))
	for i := range personas {
		infos = append(infos, toPersonaInfo(&personas[i]))
	}
	return infos, nil
}

// Update 修改人设。初始余额只影响之后的开户，已开账户不回溯。
func (s *PersonaService) Update(ctx context.Context, userID int64, personaID string, req *types.PersonaRequest) (*types.PersonaInfo, error) {
	if req.InitialBalance < 0 {
		return nil, ErrInvalidInitialBalance
	}

	persona, err := s.store.Get(ctx, userID, personaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonaNotFound
		}
		return nil, err
	}

	persona.Name = req.Name
	persona.Avatar = req.Avatar
	persona.InitialBalance = utils.ToCents(req.InitialBalance)
	if err := s.store.Save(ctx, persona); err != nil {
		return nil, err
	}
	return toPersonaInfo(persona), nil
}

func (s *PersonaService) Delete(ctx context.Context, userID int64, personaID string) error {
	if _, err := s.store.Get(ctx, userID, personaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPersonaNotFound
		}
		return err
	}
	return s.store.Delete(ctx, userID, personaID)
}

func toPersonaInfo(p *models.Persona) *types.PersonaInfo {
	return &types.PersonaInfo{
		ID:             p.ID,
		Name:           p.Name,
		Avatar:         p.Avatar,
		InitialBalance: utils.ToYuan(p.InitialBalance),
		CreatedAt:      p.CreatedAt,
	}
}
