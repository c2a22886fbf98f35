package dao

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WinningTicket struct {
	ID uint `gorm:"primaryKey"`

	DrawID   uint `gorm:"not null;index"`
	TicketID uint `gorm:"not null;index"`
	// One settlement record per winning bet, ever. The unique index makes
	// settlement re-runs insert nothing instead of duplicating prizes.
	BetID   uint `gorm:"not null;uniqueIndex:idx_winning_tickets_bet"`
	AgentID uint `gorm:"not null;index"`

	Combination string          `gorm:"size:3;not null"`
	BetType     string          `gorm:"size:16;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Prize       decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type WinningTicketDAO struct {
	db *gorm.DB
}

func NewWinningTicketDAO(db *gorm.DB) *WinningTicketDAO {
	return &WinningTicketDAO{
		db: db,
	}
}

// PersistSettlement applies a settlement's writes in one transaction:
// insert the winner records (conflict-ignored on bet id, so a retry after
// a partial failure is safe), flip the winning tickets to pending approval,
// and finally claim the closed->settled transition. If another settler
// already claimed it, everything rolls back and ErrDrawAlreadySettled is
// returned; that settler's rows are the authoritative ones.
func (d *WinningTicketDAO) PersistSettlement(ctx context.Context, drawID uint, winners []WinningTicket, winningTicketIDs []uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(winners) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "bet_id"}},
				DoNothing: true,
			}).Create(&winners).Error
			if err != nil {
				return err
			}
		}

		if len(winningTicketIDs) > 0 {
			err := tx.Model(&Ticket{}).
				Where("id IN ? AND status = ?", winningTicketIDs, "validated").
				Update("status", "pending_approval").Error
			if err != nil {
				return err
			}
		}

		result := tx.Model(&Draw{}).
			Where("id = ? AND status = ? AND winning_number IS NOT NULL", drawID, DrawStatusClosed).
			Update("status", DrawStatusSettled)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var draw Draw
			if err := tx.First(&draw, drawID).Error; err != nil {
				return err
			}
			if draw.Status == DrawStatusSettled {
				return ErrDrawAlreadySettled
			}
			if draw.WinningNumber == nil {
				return ErrResultMissing
			}

			return ErrInvalidStateTransition
		}

		return nil
	})
}

func (d *WinningTicketDAO) FindByDraw(ctx context.Context, drawID uint) ([]WinningTicket, error) {
	var winners []WinningTicket

	result := d.db.WithContext(ctx).
		Where("draw_id = ?", drawID).
		Order("id ASC").
		Find(&winners)
	if result.Error != nil {
		return nil, result.Error
	}

	return winners, nil
}
