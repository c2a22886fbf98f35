package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stlgaming/lottery-api/internal/domain"
	"github.com/stlgaming/lottery-api/internal/repository"
)

var (
	ErrTicketNotFound = repository.ErrTicketNotFound
	ErrDrawClosed     = repository.ErrDrawNotOpen
	ErrLimitExceeded  = repository.ErrLimitExceeded
	ErrSoldOut        = repository.ErrSoldOut
	ErrEmptyTicket    = errors.New("ticket must contain at least one bet line")
	ErrInvalidBetLine = errors.New("invalid bet line")
)

// TicketRejection aggregates the ledger's per-line refusals for one
// submission; the ticket was not persisted and no capacity stayed reserved.
type TicketRejection = repository.TicketRejection

// BetLineError reports which line of a submission failed validation.
type BetLineError struct {
	Line int
	Err  error
}

func (e *BetLineError) Error() string {
	return fmt.Sprintf("bet line %d: %v", e.Line, e.Err)
}

func (e *BetLineError) Unwrap() []error {
	return []error{ErrInvalidBetLine, e.Err}
}

// LimitPolicy supplies the configured exposure ceilings: a per-combination
// override when present, otherwise the per-bet-type default.
type LimitPolicy struct {
	Defaults     map[domain.BetType]decimal.Decimal
	Combinations map[string]decimal.Decimal
}

func (p LimitPolicy) CeilingFor(combination string, betType domain.BetType) decimal.Decimal {
	if ceiling, ok := p.Combinations[combination]; ok {
		return ceiling
	}

	return p.Defaults[betType]
}

type TicketRepository interface {
	CreateWithReservations(ctx context.Context, ticket domain.Ticket, at time.Time, ceiling func(combination string, betType domain.BetType) decimal.Decimal) (domain.Ticket, error)
	GetBySerial(ctx context.Context, serial string) (domain.Ticket, error)
}

type TicketDrawRepository interface {
	GetByID(ctx context.Context, id uint) (domain.Draw, error)
}

// TicketService accepts or rejects incoming ticket submissions. A ticket
// is accepted wholly or not at all; the bet limit ledger is the only
// authority on remaining capacity.
type TicketService struct {
	repo     TicketRepository
	drawRepo TicketDrawRepository
	limits   LimitPolicy

	now func() time.Time
}

func NewTicketService(repo TicketRepository, drawRepo TicketDrawRepository, limits LimitPolicy) *TicketService {
	return &TicketService{
		repo:     repo,
		drawRepo: drawRepo,
		limits:   limits,
		now:      time.Now,
	}
}

// SubmitTicket validates the submission, checks the draw is open with the
// wall clock as the authority, reserves capacity for every line and
// persists ticket plus bets in one transaction.
func (s *TicketService) SubmitTicket(ctx context.Context, agentID, drawID uint, lines []domain.BetLine) (domain.Ticket, error) {
	if len(lines) == 0 {
		return domain.Ticket{}, ErrEmptyTicket
	}
	for i, line := range lines {
		if err := line.Validate(); err != nil {
			return domain.Ticket{}, &BetLineError{Line: i, Err: err}
		}
	}

	at := s.now()

	draw, err := s.drawRepo.GetByID(ctx, drawID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.drawRepo.GetByID -> %w", err)
	}
	if !draw.CanAcceptBet(at) {
		return domain.Ticket{}, ErrDrawClosed
	}

	bets := make([]domain.Bet, 0, len(lines))
	for _, line := range lines {
		bets = append(bets, domain.Bet{
			DrawID:      drawID,
			Combination: line.Combination,
			Type:        line.Type,
			Amount:      line.Amount,
		})
	}

	ticket := domain.Ticket{
		Serial:      uuid.NewString(),
		AgentID:     agentID,
		DrawID:      drawID,
		TotalAmount: domain.TotalAmount(lines),
		Status:      domain.TicketStatusValidated,
		Bets:        bets,
	}

	created, err := s.repo.CreateWithReservations(ctx, ticket, at, s.limits.CeilingFor)
	if err != nil {
		var rejection *TicketRejection
		if errors.As(err, &rejection) {
			return domain.Ticket{}, rejection
		}

		return domain.Ticket{}, fmt.Errorf("s.repo.CreateWithReservations -> %w", err)
	}

	return created, nil
}

func (s *TicketService) GetTicketBySerial(ctx context.Context, serial string) (domain.Ticket, error) {
	ticket, err := s.repo.GetBySerial(ctx, serial)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.GetBySerial -> %w", err)
	}

	return ticket, nil
}
