package repository

import (
	"context"

	"github.com/stlgaming/lottery-api/internal/domain"
	"github.com/stlgaming/lottery-api/internal/repository/dao"
)

var ErrAgentNotFound = dao.ErrAgentNotFound

type AgentDAO interface {
	FindByID(ctx context.Context, id uint) (dao.Agent, error)
	FindByCoordinator(ctx context.Context, coordinatorID uint) ([]dao.Agent, error)
}

type AgentRepository struct {
	dao AgentDAO
}

func NewAgentRepository(dao AgentDAO) *AgentRepository {
	return &AgentRepository{
		dao: dao,
	}
}

func (r *AgentRepository) daoToDomain(a dao.Agent) domain.Agent {
	return domain.Agent{
		ID:            a.ID,
		Name:          a.Name,
		Role:          domain.AgentRole(a.Role),
		CoordinatorID: a.CoordinatorID,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (r *AgentRepository) GetByID(ctx context.Context, id uint) (domain.Agent, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Agent{}, err
	}

	return r.daoToDomain(found), nil
}

func (r *AgentRepository) ListByCoordinator(ctx context.Context, coordinatorID uint) ([]domain.Agent, error) {
	found, err := r.dao.FindByCoordinator(ctx, coordinatorID)
	if err != nil {
		return nil, err
	}

	agents := make([]domain.Agent, 0, len(found))
	for _, a := range found {
		agents = append(agents, r.daoToDomain(a))
	}

	return agents, nil
}
