package service

import (
	"context"
	"errors"
	"fmt"

	"LuckyChat/dao"
	"LuckyChat/models"
	"LuckyChat/pkg/response"
	"LuckyChat/pkg/snowflake"
	"LuckyChat/types"

	"gorm.io/gorm"
)

var ErrCharacterNotFound = response.NewError(40403, "角色不存在")

type ICharacterService interface {
	Create(ctx context.Context, userID int64, req *types.CharacterRequest) (*models.Character, error)
	Get(ctx context.Context, characterID string) (*models.Character, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Character, error)
	Update(ctx context.Context, characterID string, req *types.CharacterRequest) (*models.Character, error)
	Delete(ctx context.Context, characterID string) error
	ResetState(ctx context.Context, characterID string) error
}

var _ ICharacterService = (*CharacterService)(nil)

type CharacterService struct {
	CharacterDAO *dao.Character
	Affection    IAffectionService
}

func NewCharacterService(characterDAO *dao.Character, affection IAffectionService) *CharacterService {
	return &CharacterService{CharacterDAO: characterDAO, Affection: affection}
}

func (s *CharacterService) Create(ctx context.Context, userID int64, req *types.CharacterRequest) (*models.Character, error) {
	character := &models.Character{
		ID:       fmt.Sprintf("char_%d", snowflake.GenID()),
		UserID:   userID,
		Name:     req.Name,
		Avatar:   req.Avatar,
		Persona:  req.Persona,
		Greeting: req.Greeting,
	}
	if err := s.CharacterDAO.Create(ctx, character); err != nil {
		return nil, err
	}
	return character, nil
}

func (s *CharacterService) Get(ctx context.Context, characterID string) (*models.Character, error) {
	character, err := s.CharacterDAO.FindByID(ctx, characterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}
	return character, nil
}

func (s *CharacterService) ListByUser(ctx context.Context, userID int64) ([]models.Character, error) {
	return s.CharacterDAO.ListByUser(ctx, userID)
}

func (s *CharacterService) Update(ctx context.Context, characterID string, req *types.CharacterRequest) (*models.Character, error) {
	character, err := s.Get(ctx, characterID)
	if err != nil {
		return nil, err
	}
	character.Name = req.Name
	character.Avatar = req.Avatar
	character.Persona = req.Persona
	character.Greeting = req.Greeting
	if err := s.CharacterDAO.Save(ctx, character); err != nil {
		return nil, err
	}
	return character, nil
}

func (s *CharacterService) Delete(ctx context.Context, characterID string) error {
	if err := s.CharacterDAO.Delete(ctx, characterID); err != nil {
		return err
	}
	// 角色删掉后好感度记录没有存在意义，一并清理
	return s.Affection.ResetCharacter(ctx, characterID)
}

// ResetState 重置角色的全部会话状态（目前只有好感度），角色卡本身保留
func (s *CharacterService) ResetState(ctx context.Context, characterID string) error {
	if _, err := s.Get(ctx, characterID); err != nil {
		return err
	}
	return s.Affection.ResetCharacter(ctx, characterID)
}
