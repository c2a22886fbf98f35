package service

import (
	"context"
	"fmt"

	"github.com/stlgaming/lottery-api/internal/domain"
	"github.com/stlgaming/lottery-api/internal/repository"
)

var ErrAgentNotFound = repository.ErrAgentNotFound

type AgentRepository interface {
	GetByID(ctx context.Context, id uint) (domain.Agent, error)
	ListByCoordinator(ctx context.Context, coordinatorID uint) ([]domain.Agent, error)
}

// AgentService reads the agent directory. Identity resolution happens in
// the auth layer; this service only looks up what it is told.
type AgentService struct {
	repo AgentRepository
}

func NewAgentService(repo AgentRepository) *AgentService {
	return &AgentService{
		repo: repo,
	}
}

func (s *AgentService) GetAgent(ctx context.Context, id uint) (domain.Agent, error) {
	agent, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Agent{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return agent, nil
}

func (s *AgentService) ListAgentsByCoordinator(ctx context.Context, coordinatorID uint) ([]domain.Agent, error) {
	agents, err := s.repo.ListByCoordinator(ctx, coordinatorID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByCoordinator -> %w", err)
	}

	return agents, nil
}
