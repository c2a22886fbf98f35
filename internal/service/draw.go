package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stlgaming/lottery-api/internal/domain"
	"github.com/stlgaming/lottery-api/internal/repository"
)

var (
	ErrDrawNotFound           = repository.ErrDrawNotFound
	ErrDrawExists             = repository.ErrDrawExists
	ErrInvalidStateTransition = repository.ErrInvalidStateTransition
	ErrDrawAlreadySettled     = repository.ErrDrawAlreadySettled
	ErrResultMissing          = repository.ErrResultMissing
	ErrInvalidWinningNumber   = domain.ErrInvalidCombination
)

type DrawRepository interface {
	Create(ctx context.Context, date time.Time, slot string, cutoffAt time.Time) (domain.Draw, error)
	GetByID(ctx context.Context, id uint) (domain.Draw, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.Draw, error)
	ListOpenPastCutoff(ctx context.Context, at time.Time) ([]domain.Draw, error)
	Close(ctx context.Context, id uint) (domain.Draw, error)
	RecordResult(ctx context.Context, id uint, winningNumber string) (domain.Draw, error)
	Settle(ctx context.Context, id uint) (domain.Draw, error)
}

type BetLimitRepository interface {
	ListByDraw(ctx context.Context, drawID uint) ([]domain.BetLimitEntry, error)
}

// DrawService exposes the draw lifecycle: status queries, the
// administrative close, result entry and the exposure board. All status
// mutations go through the repository's guarded transitions; nothing else
// writes a draw's status.
type DrawService struct {
	repo      DrawRepository
	limitRepo BetLimitRepository
}

func NewDrawService(repo DrawRepository, limitRepo BetLimitRepository) *DrawService {
	return &DrawService{
		repo:      repo,
		limitRepo: limitRepo,
	}
}

func (s *DrawService) GetDraw(ctx context.Context, id uint) (domain.Draw, error) {
	draw, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Draw{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return draw, nil
}

func (s *DrawService) ListDraws(ctx context.Context, date time.Time) ([]domain.Draw, error) {
	draws, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByDate -> %w", err)
	}

	return draws, nil
}

// CloseDraw is the explicit administrative close. Closing an already
// closed or settled draw is a no-op.
func (s *DrawService) CloseDraw(ctx context.Context, id uint) (domain.Draw, error) {
	draw, err := s.repo.Close(ctx, id)
	if err != nil {
		return domain.Draw{}, fmt.Errorf("s.repo.Close -> %w", err)
	}

	return draw, nil
}

// RecordResult stores the official winning number on a closed draw.
// Result entry before cutoff is rejected; settlement is a separate step so
// entry and prize computation can be audited independently.
func (s *DrawService) RecordResult(ctx context.Context, id uint, winningNumber string) (domain.Draw, error) {
	if !domain.ValidCombination(winningNumber) {
		return domain.Draw{}, ErrInvalidWinningNumber
	}

	draw, err := s.repo.RecordResult(ctx, id, winningNumber)
	if err != nil {
		return domain.Draw{}, fmt.Errorf("s.repo.RecordResult -> %w", err)
	}

	return draw, nil
}

// ExposureBoard returns the ledger entries of a draw, for the sold-out
// board agents see.
func (s *DrawService) ExposureBoard(ctx context.Context, drawID uint) ([]domain.BetLimitEntry, error) {
	if _, err := s.repo.GetByID(ctx, drawID); err != nil {
		return nil, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	entries, err := s.limitRepo.ListByDraw(ctx, drawID)
	if err != nil {
		return nil, fmt.Errorf("s.limitRepo.ListByDraw -> %w", err)
	}

	return entries, nil
}
