package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrAgentNotFound = errors.New("agent not found")

type Agent struct {
	ID uint `gorm:"primaryKey"`

	Name string `gorm:"not null"`
	Role string `gorm:"size:32;not null"` // "agent", "coordinator", "area_coordinator", or "admin"

	CoordinatorID *uint `gorm:"index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type AgentDAO struct {
	db *gorm.DB
}

func NewAgentDAO(db *gorm.DB) *AgentDAO {
	return &AgentDAO{
		db: db,
	}
}

func (d *AgentDAO) FindByID(ctx context.Context, id uint) (Agent, error) {
	var agent Agent

	result := d.db.WithContext(ctx).First(&agent, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Agent{}, ErrAgentNotFound
		}

		return Agent{}, result.Error
	}

	return agent, nil
}

func (d *AgentDAO) FindByCoordinator(ctx context.Context, coordinatorID uint) ([]Agent, error) {
	var agents []Agent

	result := d.db.WithContext(ctx).
		Where("coordinator_id = ?", coordinatorID).
		Order("id ASC").
		Find(&agents)
	if result.Error != nil {
		return nil, result.Error
	}

	return agents, nil
}
