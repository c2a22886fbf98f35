package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrLimitExceeded = errors.New("bet limit exceeded for combination")
	ErrSoldOut       = errors.New("combination is sold out")
)

type BetLimitEntry struct {
	ID uint `gorm:"primaryKey"`

	DrawID      uint   `gorm:"not null;uniqueIndex:idx_limits_draw_combo_type"`
	Combination string `gorm:"size:3;not null;uniqueIndex:idx_limits_draw_combo_type"`
	BetType     string `gorm:"size:16;not null;uniqueIndex:idx_limits_draw_combo_type"`

	LimitAmount   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CurrentAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	SoldOut       bool            `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type BetLimitDAO struct {
	db *gorm.DB
}

func NewBetLimitDAO(db *gorm.DB) *BetLimitDAO {
	return &BetLimitDAO{
		db: db,
	}
}

// Reserve atomically claims capacity for one bet line. See reserveCapacity.
func (d *BetLimitDAO) Reserve(ctx context.Context, drawID uint, combination, betType string, amount, ceiling decimal.Decimal) (BetLimitEntry, error) {
	return reserveCapacity(d.db.WithContext(ctx), drawID, combination, betType, amount, ceiling)
}

func (d *BetLimitDAO) FindByDraw(ctx context.Context, drawID uint) ([]BetLimitEntry, error) {
	var entries []BetLimitEntry

	result := d.db.WithContext(ctx).
		Where("draw_id = ?", drawID).
		Order("combination ASC, bet_type ASC").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// reserveCapacity is the ledger's single atomic check-and-increment. The
// row is created lazily, seeded with the configured ceiling; the unique
// index makes a concurrent create a harmless no-op. The increment and the
// ceiling check happen in one UPDATE so that two simultaneous reservations
// for the same triple can never both pass on the same pre-increment value.
//
// It is shared with TicketDAO so that a ticket's reservations run inside
// the ticket's own transaction and roll back with it.
func reserveCapacity(tx *gorm.DB, drawID uint, combination, betType string, amount, ceiling decimal.Decimal) (BetLimitEntry, error) {
	seed := BetLimitEntry{
		DrawID:        drawID,
		Combination:   combination,
		BetType:       betType,
		LimitAmount:   ceiling,
		CurrentAmount: decimal.Zero,
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return BetLimitEntry{}, err
	}

	result := tx.Exec(`
		UPDATE bet_limit_entries
		SET current_amount = current_amount + ?,
		    sold_out = current_amount + ? >= limit_amount,
		    updated_at = NOW()
		WHERE draw_id = ? AND combination = ? AND bet_type = ?
		  AND current_amount + ? <= limit_amount`,
		amount, amount, drawID, combination, betType, amount)
	if result.Error != nil {
		return BetLimitEntry{}, result.Error
	}

	var entry BetLimitEntry
	if err := tx.
		Where("draw_id = ? AND combination = ? AND bet_type = ?", drawID, combination, betType).
		First(&entry).Error; err != nil {
		return BetLimitEntry{}, err
	}

	if result.RowsAffected == 0 {
		if entry.SoldOut {
			return entry, ErrSoldOut
		}

		return entry, ErrLimitExceeded
	}

	return entry, nil
}
