package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stlgaming/lottery-api/internal/domain"
	"github.com/stlgaming/lottery-api/internal/repository"
)

var ErrResultMismatch = errors.New("draw already settled with a different winning number")

type SettlementDrawRepository interface {
	GetByID(ctx context.Context, id uint) (domain.Draw, error)
	RecordResult(ctx context.Context, id uint, winningNumber string) (domain.Draw, error)
}

type SettlementTicketRepository interface {
	ListBetsByDraw(ctx context.Context, drawID uint) ([]repository.DrawBet, error)
	CountByDraw(ctx context.Context, drawID uint) (int64, error)
}

type PrizeConfigurationRepository interface {
	GetAll(ctx context.Context) (map[domain.PrizeVariant]domain.PrizeConfiguration, error)
}

type WinningTicketRepository interface {
	PersistSettlement(ctx context.Context, drawID uint, winners []domain.WinningTicket) error
	ListByDraw(ctx context.Context, drawID uint) ([]domain.WinningTicket, error)
}

// SettlementService computes winners for a closed draw and transitions it
// to settled exactly once. Matching and prize computation run without any
// draw-level lock; only the final status transition is guarded.
type SettlementService struct {
	drawRepo   SettlementDrawRepository
	ticketRepo SettlementTicketRepository
	prizeRepo  PrizeConfigurationRepository
	winnerRepo WinningTicketRepository
}

func NewSettlementService(drawRepo SettlementDrawRepository, ticketRepo SettlementTicketRepository, prizeRepo PrizeConfigurationRepository, winnerRepo WinningTicketRepository) *SettlementService {
	return &SettlementService{
		drawRepo:   drawRepo,
		ticketRepo: ticketRepo,
		prizeRepo:  prizeRepo,
		winnerRepo: winnerRepo,
	}
}

// SettleDraw records the official result, finds every winning bet, writes
// one prize record per winner and marks the draw settled. Re-running with
// the same number on an already settled draw returns the stored outcome
// instead of duplicating anything.
func (s *SettlementService) SettleDraw(ctx context.Context, drawID uint, winningNumber string) (domain.SettlementReport, error) {
	if !domain.ValidCombination(winningNumber) {
		return domain.SettlementReport{}, ErrInvalidWinningNumber
	}

	draw, err := s.drawRepo.GetByID(ctx, drawID)
	if err != nil {
		return domain.SettlementReport{}, fmt.Errorf("s.drawRepo.GetByID -> %w", err)
	}
	if draw.Status == domain.DrawStatusSettled {
		if draw.HasResult() && *draw.WinningNumber == winningNumber {
			return s.storedReport(ctx, drawID, winningNumber)
		}

		return domain.SettlementReport{}, ErrResultMismatch
	}

	if _, err = s.drawRepo.RecordResult(ctx, drawID, winningNumber); err != nil {
		return domain.SettlementReport{}, fmt.Errorf("s.drawRepo.RecordResult -> %w", err)
	}

	bets, err := s.ticketRepo.ListBetsByDraw(ctx, drawID)
	if err != nil {
		return domain.SettlementReport{}, fmt.Errorf("s.ticketRepo.ListBetsByDraw -> %w", err)
	}

	prizes, err := s.prizeRepo.GetAll(ctx)
	if err != nil {
		return domain.SettlementReport{}, fmt.Errorf("s.prizeRepo.GetAll -> %w", err)
	}

	winners := make([]domain.WinningTicket, 0)
	totalPayout := decimal.Zero
	for _, bet := range bets {
		if !domain.BetWins(bet.Combination, bet.Type, winningNumber) {
			continue
		}

		variant, err := domain.PrizeVariantFor(bet.Combination, bet.Type)
		if err != nil {
			return domain.SettlementReport{}, fmt.Errorf("domain.PrizeVariantFor(%q, %q) -> %w", bet.Combination, bet.Type, err)
		}
		config, ok := prizes[variant]
		if !ok {
			return domain.SettlementReport{}, fmt.Errorf("%w: %v", repository.ErrPrizeConfigurationNotFound, variant)
		}

		prize := config.Prize(bet.Amount)
		totalPayout = totalPayout.Add(prize)
		winners = append(winners, domain.WinningTicket{
			DrawID:      drawID,
			TicketID:    bet.TicketID,
			BetID:       bet.BetID,
			AgentID:     bet.AgentID,
			Combination: bet.Combination,
			Type:        bet.Type,
			Amount:      bet.Amount,
			Prize:       prize,
		})
	}

	err = s.winnerRepo.PersistSettlement(ctx, drawID, winners)
	if errors.Is(err, ErrDrawAlreadySettled) {
		// A concurrent settler claimed the transition; its rows are
		// authoritative and identical, so report those.
		return s.storedReport(ctx, drawID, winningNumber)
	}
	if err != nil {
		return domain.SettlementReport{}, fmt.Errorf("s.winnerRepo.PersistSettlement -> %w", err)
	}

	tickets, err := s.ticketRepo.CountByDraw(ctx, drawID)
	if err != nil {
		return domain.SettlementReport{}, fmt.Errorf("s.ticketRepo.CountByDraw -> %w", err)
	}

	zap.L().Info("draw settled",
		zap.Uint("draw_id", drawID),
		zap.String("winning_number", winningNumber),
		zap.Int("winners", len(winners)),
		zap.String("total_payout", totalPayout.String()),
	)

	return domain.SettlementReport{
		DrawID:           drawID,
		WinningNumber:    winningNumber,
		TicketsProcessed: int(tickets),
		BetsProcessed:    len(bets),
		WinnersFound:     len(winners),
		TotalPayout:      totalPayout,
	}, nil
}

func (s *SettlementService) ListWinners(ctx context.Context, drawID uint) ([]domain.WinningTicket, error) {
	if _, err := s.drawRepo.GetByID(ctx, drawID); err != nil {
		return nil, fmt.Errorf("s.drawRepo.GetByID -> %w", err)
	}

	winners, err := s.winnerRepo.ListByDraw(ctx, drawID)
	if err != nil {
		return nil, fmt.Errorf("s.winnerRepo.ListByDraw -> %w", err)
	}

	return winners, nil
}

// storedReport rebuilds the report of a settlement that already ran, from
// the persisted winner rows.
func (s *SettlementService) storedReport(ctx context.Context, drawID uint, winningNumber string) (domain.SettlementReport, error) {
	winners, err := s.winnerRepo.ListByDraw(ctx, drawID)
	if err != nil {
		return domain.SettlementReport{}, fmt.Errorf("s.winnerRepo.ListByDraw -> %w", err)
	}

	bets, err := s.ticketRepo.ListBetsByDraw(ctx, drawID)
	if err != nil {
		return domain.SettlementReport{}, fmt.Errorf("s.ticketRepo.ListBetsByDraw -> %w", err)
	}

	tickets, err := s.ticketRepo.CountByDraw(ctx, drawID)
	if err != nil {
		return domain.SettlementReport{}, fmt.Errorf("s.ticketRepo.CountByDraw -> %w", err)
	}

	totalPayout := decimal.Zero
	for _, w := range winners {
		totalPayout = totalPayout.Add(w.Prize)
	}

	return domain.SettlementReport{
		DrawID:           drawID,
		WinningNumber:    winningNumber,
		TicketsProcessed: int(tickets),
		BetsProcessed:    len(bets),
		WinnersFound:     len(winners),
		TotalPayout:      totalPayout,
	}, nil
}
