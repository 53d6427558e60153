package dao

import (
	"context"

	"LuckyChat/models"

	"gorm.io/gorm"
)

type Character struct {
	Repo[models.Character]
}

func NewCharacter(db *gorm.DB) *Character {
	return &Character{Repo: NewRepo[models.Character](db)}
}

func (c *Character) ListByUser(ctx context.Context, userID int64) ([]models.Character, error) {
	var characters []models.Character
	err := c.Db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&characters).Error
	return characters, err
}

func (c *Character) Delete(ctx context.Context, characterID string) error {
	return c.Db.WithContext(ctx).
		Where("id = ?", characterID).
		Delete(&models.Character{}).Error
}

type Persona struct {
	Repo[models.Persona]
}

func NewPersona(db *gorm.DB) *Persona {
	return &Persona{Repo: NewRepo[models.Persona](db)}
}

func (p *Persona) Get(ctx context.Context, userID int64, personaID string) (*models.Persona, error) {
	var persona models.Persona
	err := p.Db.WithContext(ctx).
		Where("id = ? AND user_id = ?", personaID, userID).
		First(&persona).Error
	if err != nil {
		return nil, err
	}
	return &persona, nil
}

func (p *Persona) ListByUser(ctx context.Context, userID int64) ([]models.Persona, error) {
	var personas []models.Persona
	err := p.Db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&personas).Error
	return personas, err
}

func (p *Persona) Delete(ctx context.Context, userID int64, personaID string) error {
	return p.Db.WithContext(ctx).
		Where("id = ? AND user_id = ?", personaID, userID).
		Delete(&models.Persona{}).Error
}
