package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stlgaming/lottery-api/internal/domain"
	"github.com/stlgaming/lottery-api/internal/repository/dao"
)

var ErrTicketNotFound = dao.ErrTicketNotFound

// LineRejection and TicketRejection surface the ledger's per-line refusals
// to callers; see dao.TicketRejection.
type (
	LineRejection   = dao.LineRejection
	TicketRejection = dao.TicketRejection
)

type TicketDAO interface {
	InsertWithReservations(ctx context.Context, ticket dao.Ticket, at time.Time, ceiling func(combination, betType string) decimal.Decimal) (dao.Ticket, error)
	FindBySerial(ctx context.Context, serial string) (dao.Ticket, error)
	FindByID(ctx context.Context, id uint) (dao.Ticket, error)
	CountByDraw(ctx context.Context, drawID uint) (int64, error)
	FindBetsByDraw(ctx context.Context, drawID uint) ([]dao.DrawBet, error)
}

type TicketRepository struct {
	dao TicketDAO
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao: dao,
	}
}

func (r *TicketRepository) daoToDomain(t dao.Ticket) domain.Ticket {
	bets := make([]domain.Bet, 0, len(t.Bets))
	for _, b := range t.Bets {
		bets = append(bets, domain.Bet{
			ID:          b.ID,
			TicketID:    b.TicketID,
			DrawID:      b.DrawID,
			Combination: b.Combination,
			Type:        domain.BetType(b.BetType),
			Amount:      b.Amount,
			CreatedAt:   b.CreatedAt,
		})
	}

	return domain.Ticket{
		ID:          t.ID,
		Serial:      t.Serial,
		AgentID:     t.AgentID,
		DrawID:      t.DrawID,
		TotalAmount: t.TotalAmount,
		Status:      domain.TicketStatus(t.Status),
		Bets:        bets,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// CreateWithReservations persists the ticket and its bets atomically with
// the ledger reservations for every line.
func (r *TicketRepository) CreateWithReservations(ctx context.Context, ticket domain.Ticket, at time.Time, ceiling func(combination string, betType domain.BetType) decimal.Decimal) (domain.Ticket, error) {
	bets := make([]dao.Bet, 0, len(ticket.Bets))
	for _, b := range ticket.Bets {
		bets = append(bets, dao.Bet{
			DrawID:      ticket.DrawID,
			Combination: b.Combination,
			BetType:     string(b.Type),
			Amount:      b.Amount,
		})
	}

	created, err := r.dao.InsertWithReservations(ctx, dao.Ticket{
		Serial:      ticket.Serial,
		AgentID:     ticket.AgentID,
		DrawID:      ticket.DrawID,
		TotalAmount: ticket.TotalAmount,
		Status:      string(ticket.Status),
		Bets:        bets,
	}, at, func(combination, betType string) decimal.Decimal {
		return ceiling(combination, domain.BetType(betType))
	})
	if err != nil {
		return domain.Ticket{}, err
	}

	return r.daoToDomain(created), nil
}

func (r *TicketRepository) GetBySerial(ctx context.Context, serial string) (domain.Ticket, error) {
	found, err := r.dao.FindBySerial(ctx, serial)
	if err != nil {
		return domain.Ticket{}, err
	}

	return r.daoToDomain(found), nil
}

func (r *TicketRepository) CountByDraw(ctx context.Context, drawID uint) (int64, error) {
	return r.dao.CountByDraw(ctx, drawID)
}

// DrawBet is one bet of a draw with its selling agent, as consumed by the
// settlement engine.
type DrawBet struct {
	BetID       uint
	TicketID    uint
	AgentID     uint
	Combination string
	Type        domain.BetType
	Amount      decimal.Decimal
}

func (r *TicketRepository) ListBetsByDraw(ctx context.Context, drawID uint) ([]DrawBet, error) {
	found, err := r.dao.FindBetsByDraw(ctx, drawID)
	if err != nil {
		return nil, err
	}

	bets := make([]DrawBet, 0, len(found))
	for _, b := range found {
		bets = append(bets, DrawBet{
			BetID:       b.BetID,
			TicketID:    b.TicketID,
			AgentID:     b.AgentID,
			Combination: b.Combination,
			Type:        domain.BetType(b.BetType),
			Amount:      b.Amount,
		})
	}

	return bets, nil
}
