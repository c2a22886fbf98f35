package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/stlgaming/lottery-api/internal/domain"
	"github.com/stlgaming/lottery-api/internal/repository/dao"
)

var (
	ErrLimitExceeded = dao.ErrLimitExceeded
	ErrSoldOut       = dao.ErrSoldOut
)

type BetLimitDAO interface {
	Reserve(ctx context.Context, drawID uint, combination, betType string, amount, ceiling decimal.Decimal) (dao.BetLimitEntry, error)
	FindByDraw(ctx context.Context, drawID uint) ([]dao.BetLimitEntry, error)
}

type BetLimitRepository struct {
	dao BetLimitDAO
}

func NewBetLimitRepository(dao BetLimitDAO) *BetLimitRepository {
	return &BetLimitRepository{
		dao: dao,
	}
}

func (r *BetLimitRepository) daoToDomain(e dao.BetLimitEntry) domain.BetLimitEntry {
	return domain.BetLimitEntry{
		ID:            e.ID,
		DrawID:        e.DrawID,
		Combination:   e.Combination,
		Type:          domain.BetType(e.BetType),
		LimitAmount:   e.LimitAmount,
		CurrentAmount: e.CurrentAmount,
		SoldOut:       e.SoldOut,
		UpdatedAt:     e.UpdatedAt,
	}
}

// CheckAndReserve claims capacity for a single bet outside a ticket
// transaction. Ticket submission goes through TicketRepository instead so
// its reservations are transactional with the insert.
func (r *BetLimitRepository) CheckAndReserve(ctx context.Context, drawID uint, combination string, betType domain.BetType, amount, ceiling decimal.Decimal) (domain.BetLimitEntry, error) {
	entry, err := r.dao.Reserve(ctx, drawID, combination, string(betType), amount, ceiling)
	if err != nil {
		return r.daoToDomain(entry), err
	}

	return r.daoToDomain(entry), nil
}

func (r *BetLimitRepository) ListByDraw(ctx context.Context, drawID uint) ([]domain.BetLimitEntry, error) {
	found, err := r.dao.FindByDraw(ctx, drawID)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.BetLimitEntry, 0, len(found))
	for _, e := range found {
		entries = append(entries, r.daoToDomain(e))
	}

	return entries, nil
}
