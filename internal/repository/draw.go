package repository

import (
	"context"
	"time"

	"github.com/stlgaming/lottery-api/internal/domain"
	"github.com/stlgaming/lottery-api/internal/repository/dao"
)

var (
	ErrDrawNotFound           = dao.ErrDrawNotFound
	ErrDrawExists             = dao.ErrDrawExists
	ErrDrawNotOpen            = dao.ErrDrawNotOpen
	ErrInvalidStateTransition = dao.ErrInvalidStateTransition
	ErrDrawAlreadySettled     = dao.ErrDrawAlreadySettled
	ErrResultMissing          = dao.ErrResultMissing
)

type DrawDAO interface {
	Insert(ctx context.Context, draw dao.Draw) (dao.Draw, error)
	FindByID(ctx context.Context, id uint) (dao.Draw, error)
	FindByDate(ctx context.Context, date time.Time) ([]dao.Draw, error)
	FindOpenPastCutoff(ctx context.Context, at time.Time) ([]dao.Draw, error)
	Close(ctx context.Context, id uint) (dao.Draw, error)
	RecordResult(ctx context.Context, id uint, winningNumber string) (dao.Draw, error)
	Settle(ctx context.Context, id uint) (dao.Draw, error)
}

type DrawRepository struct {
	dao DrawDAO
}

func NewDrawRepository(dao DrawDAO) *DrawRepository {
	return &DrawRepository{
		dao: dao,
	}
}

func (r *DrawRepository) daoToDomain(d dao.Draw) domain.Draw {
	return domain.Draw{
		ID:            d.ID,
		Date:          d.Date,
		Slot:          d.Slot,
		CutoffAt:      d.CutoffAt,
		Status:        domain.DrawStatus(d.Status),
		WinningNumber: d.WinningNumber,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// Create inserts a draw in open status. Callers racing on the same
// (date, slot) pair get ErrDrawExists from the unique constraint.
func (r *DrawRepository) Create(ctx context.Context, date time.Time, slot string, cutoffAt time.Time) (domain.Draw, error) {
	created, err := r.dao.Insert(ctx, dao.Draw{
		Date:     date,
		Slot:     slot,
		CutoffAt: cutoffAt,
		Status:   dao.DrawStatusOpen,
	})
	if err != nil {
		return domain.Draw{}, err
	}

	return r.daoToDomain(created), nil
}

func (r *DrawRepository) GetByID(ctx context.Context, id uint) (domain.Draw, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Draw{}, err
	}

	return r.daoToDomain(found), nil
}

func (r *DrawRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.Draw, error) {
	found, err := r.dao.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	draws := make([]domain.Draw, 0, len(found))
	for _, d := range found {
		draws = append(draws, r.daoToDomain(d))
	}

	return draws, nil
}

func (r *DrawRepository) ListOpenPastCutoff(ctx context.Context, at time.Time) ([]domain.Draw, error) {
	found, err := r.dao.FindOpenPastCutoff(ctx, at)
	if err != nil {
		return nil, err
	}

	draws := make([]domain.Draw, 0, len(found))
	for _, d := range found {
		draws = append(draws, r.daoToDomain(d))
	}

	return draws, nil
}

func (r *DrawRepository) Close(ctx context.Context, id uint) (domain.Draw, error) {
	closed, err := r.dao.Close(ctx, id)
	if err != nil {
		return domain.Draw{}, err
	}

	return r.daoToDomain(closed), nil
}

func (r *DrawRepository) RecordResult(ctx context.Context, id uint, winningNumber string) (domain.Draw, error) {
	updated, err := r.dao.RecordResult(ctx, id, winningNumber)
	if err != nil {
		return domain.Draw{}, err
	}

	return r.daoToDomain(updated), nil
}

func (r *DrawRepository) Settle(ctx context.Context, id uint) (domain.Draw, error) {
	settled, err := r.dao.Settle(ctx, id)
	if err != nil {
		return domain.Draw{}, err
	}

	return r.daoToDomain(settled), nil
}
