package repository

import (
	"context"

	"github.com/stlgaming/lottery-api/internal/domain"
	"github.com/stlgaming/lottery-api/internal/repository/dao"
)

type WinningTicketDAO interface {
	PersistSettlement(ctx context.Context, drawID uint, winners []dao.WinningTicket, winningTicketIDs []uint) error
	FindByDraw(ctx context.Context, drawID uint) ([]dao.WinningTicket, error)
}

type WinningTicketRepository struct {
	dao WinningTicketDAO
}

func NewWinningTicketRepository(dao WinningTicketDAO) *WinningTicketRepository {
	return &WinningTicketRepository{
		dao: dao,
	}
}

func (r *WinningTicketRepository) daoToDomain(w dao.WinningTicket) domain.WinningTicket {
	return domain.WinningTicket{
		ID:          w.ID,
		DrawID:      w.DrawID,
		TicketID:    w.TicketID,
		BetID:       w.BetID,
		AgentID:     w.AgentID,
		Combination: w.Combination,
		Type:        domain.BetType(w.BetType),
		Amount:      w.Amount,
		Prize:       w.Prize,
		CreatedAt:   w.CreatedAt,
	}
}

// PersistSettlement writes the winner records, flips the winning tickets
// to pending approval and claims the settled transition, atomically.
func (r *WinningTicketRepository) PersistSettlement(ctx context.Context, drawID uint, winners []domain.WinningTicket) error {
	rows := make([]dao.WinningTicket, 0, len(winners))
	ticketIDs := make([]uint, 0, len(winners))
	seen := make(map[uint]bool, len(winners))
	for _, w := range winners {
		rows = append(rows, dao.WinningTicket{
			DrawID:      w.DrawID,
			TicketID:    w.TicketID,
			BetID:       w.BetID,
			AgentID:     w.AgentID,
			Combination: w.Combination,
			BetType:     string(w.Type),
			Amount:      w.Amount,
			Prize:       w.Prize,
		})
		if !seen[w.TicketID] {
			seen[w.TicketID] = true
			ticketIDs = append(ticketIDs, w.TicketID)
		}
	}

	return r.dao.PersistSettlement(ctx, drawID, rows, ticketIDs)
}

func (r *WinningTicketRepository) ListByDraw(ctx context.Context, drawID uint) ([]domain.WinningTicket, error) {
	found, err := r.dao.FindByDraw(ctx, drawID)
	if err != nil {
		return nil, err
	}

	winners := make([]domain.WinningTicket, 0, len(found))
	for _, w := range found {
		winners = append(winners, r.daoToDomain(w))
	}

	return winners, nil
}
