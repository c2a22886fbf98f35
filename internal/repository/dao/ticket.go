package dao

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrTicketNotFound = errors.New("ticket not found")

type Ticket struct {
	ID uint `gorm:"primaryKey"`

	Serial  string `gorm:"size:36;unique;not null"`
	AgentID uint   `gorm:"not null;index"`
	DrawID  uint   `gorm:"not null;index"`

	TotalAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status      string          `gorm:"size:32;not null"`

	Bets []Bet `gorm:"foreignKey:TicketID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Bet struct {
	ID uint `gorm:"primaryKey"`

	TicketID uint `gorm:"not null;index"`
	// DrawID is denormalized from the ticket so settlement can scan a
	// draw's bets without joining through tickets.
	DrawID uint `gorm:"not null;index"`

	Combination string          `gorm:"size:3;not null"`
	BetType     string          `gorm:"size:16;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	CreatedAt time.Time `gorm:"not null"`
}

// DrawBet is a bet joined with the owning ticket's agent, as loaded for
// settlement.
type DrawBet struct {
	BetID       uint
	TicketID    uint
	DrawID      uint
	Combination string
	BetType     string
	Amount      decimal.Decimal
	AgentID     uint
}

// LineRejection records why one bet line of a submission was refused.
type LineRejection struct {
	Line        int
	Combination string
	BetType     string
	Reason      error
}

// TicketRejection aggregates all rejected lines of one ticket submission.
// A ticket is accepted wholly or not at all.
type TicketRejection struct {
	Rejections []LineRejection
}

func (e *TicketRejection) Error() string {
	parts := make([]string, 0, len(e.Rejections))
	for _, r := range e.Rejections {
		parts = append(parts, fmt.Sprintf("line %d (%s/%s): %v", r.Line, r.Combination, r.BetType, r.Reason))
	}

	return "ticket rejected: " + strings.Join(parts, "; ")
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

// InsertWithReservations persists a ticket and its bets after reserving
// ledger capacity for every line, all inside one transaction. If any line
// fails, every reservation made so far rolls back and the returned error
// is a *TicketRejection listing all refused lines.
//
// The draw's state is re-checked inside the transaction so a submission
// racing an administrative close cannot slip through; the wall-clock cutoff
// comparison uses the caller-supplied time.
func (d *TicketDAO) InsertWithReservations(ctx context.Context, ticket Ticket, at time.Time, ceiling func(combination, betType string) decimal.Decimal) (Ticket, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var draw Draw
		if err := tx.First(&draw, ticket.DrawID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDrawNotFound
			}

			return err
		}
		if draw.Status != DrawStatusOpen || !at.Before(draw.CutoffAt) {
			return ErrDrawNotOpen
		}

		var rejections []LineRejection
		for i, bet := range ticket.Bets {
			_, err := reserveCapacity(tx, ticket.DrawID, bet.Combination, bet.BetType, bet.Amount, ceiling(bet.Combination, bet.BetType))
			if err == nil {
				continue
			}
			if errors.Is(err, ErrLimitExceeded) || errors.Is(err, ErrSoldOut) {
				rejections = append(rejections, LineRejection{
					Line:        i,
					Combination: bet.Combination,
					BetType:     bet.BetType,
					Reason:      err,
				})
				continue
			}

			return err
		}
		if len(rejections) > 0 {
			return &TicketRejection{Rejections: rejections}
		}

		return tx.Create(&ticket).Error
	})
	if err != nil {
		return Ticket{}, err
	}

	return ticket, nil
}

func (d *TicketDAO) FindBySerial(ctx context.Context, serial string) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).
		Preload("Bets").
		Where("serial = ?", serial).
		First(&ticket)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByID(ctx context.Context, id uint) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).Preload("Bets").First(&ticket, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) CountByDraw(ctx context.Context, drawID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("draw_id = ?", drawID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// FindBetsByDraw loads every bet sold for a draw together with the selling
// agent, for settlement matching.
func (d *TicketDAO) FindBetsByDraw(ctx context.Context, drawID uint) ([]DrawBet, error) {
	var bets []DrawBet

	result := d.db.WithContext(ctx).
		Table("bets").
		Select("bets.id AS bet_id, bets.ticket_id, bets.draw_id, bets.combination, bets.bet_type, bets.amount, tickets.agent_id").
		Joins("JOIN tickets ON tickets.id = bets.ticket_id").
		Where("bets.draw_id = ?", drawID).
		Order("bets.id ASC").
		Scan(&bets)
	if result.Error != nil {
		return nil, result.Error
	}

	return bets, nil
}
