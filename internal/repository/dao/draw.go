package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrDrawNotFound           = errors.New("draw not found")
	ErrDrawExists             = errors.New("draw already exists for date and slot")
	ErrDrawNotOpen            = errors.New("draw is not open")
	ErrInvalidStateTransition = errors.New("invalid draw state transition")
	ErrDrawAlreadySettled     = errors.New("draw already settled")
	ErrResultMissing          = errors.New("draw has no recorded result")
)

const (
	DrawStatusOpen    = "open"
	DrawStatusClosed  = "closed"
	DrawStatusSettled = "settled"
)

type Draw struct {
	ID uint `gorm:"primaryKey"`

	Date     time.Time `gorm:"type:date;not null;uniqueIndex:idx_draws_date_slot"`
	Slot     string    `gorm:"size:8;not null;uniqueIndex:idx_draws_date_slot"`
	CutoffAt time.Time `gorm:"not null"`

	Status        string `gorm:"size:16;not null;default:open;index"`
	WinningNumber *string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type DrawDAO struct {
	db *gorm.DB
}

func NewDrawDAO(db *gorm.DB) *DrawDAO {
	return &DrawDAO{
		db: db,
	}
}

func (d *DrawDAO) Insert(ctx context.Context, draw Draw) (Draw, error) {
	result := d.db.WithContext(ctx).Create(&draw)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, "idx_draws_date_slot") {
			return Draw{}, ErrDrawExists
		}

		return Draw{}, result.Error
	}

	return draw, nil
}

func (d *DrawDAO) FindByID(ctx context.Context, id uint) (Draw, error) {
	var draw Draw

	result := d.db.WithContext(ctx).First(&draw, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Draw{}, ErrDrawNotFound
		}

		return Draw{}, result.Error
	}

	return draw, nil
}

func (d *DrawDAO) FindByDate(ctx context.Context, date time.Time) ([]Draw, error) {
	var draws []Draw

	result := d.db.WithContext(ctx).
		Where("date = ?", date.Format("2006-01-02")).
		Order("cutoff_at ASC").
		Find(&draws)
	if result.Error != nil {
		return nil, result.Error
	}

	return draws, nil
}

// FindOpenPastCutoff returns draws still marked open whose cutoff has passed.
func (d *DrawDAO) FindOpenPastCutoff(ctx context.Context, at time.Time) ([]Draw, error) {
	var draws []Draw

	result := d.db.WithContext(ctx).
		Where("status = ? AND cutoff_at <= ?", DrawStatusOpen, at).
		Find(&draws)
	if result.Error != nil {
		return nil, result.Error
	}

	return draws, nil
}

// Close transitions a draw from open to closed via a conditional update so
// that concurrent callers produce exactly one transition. Closing a draw
// that is already closed or settled is a no-op, not an error.
func (d *DrawDAO) Close(ctx context.Context, id uint) (Draw, error) {
	result := d.db.WithContext(ctx).
		Model(&Draw{}).
		Where("id = ? AND status = ?", id, DrawStatusOpen).
		Update("status", DrawStatusClosed)
	if result.Error != nil {
		return Draw{}, result.Error
	}

	// Zero rows affected means either the draw does not exist or another
	// caller already moved it past open; both resolve by re-reading.
	return d.FindByID(ctx, id)
}

// RecordResult stores the official winning number on a closed draw. The
// draw stays closed; settlement is a separate step. Recording against an
// open or settled draw is rejected.
func (d *DrawDAO) RecordResult(ctx context.Context, id uint, winningNumber string) (Draw, error) {
	result := d.db.WithContext(ctx).
		Model(&Draw{}).
		Where("id = ? AND status = ?", id, DrawStatusClosed).
		Update("winning_number", winningNumber)
	if result.Error != nil {
		return Draw{}, result.Error
	}

	if result.RowsAffected == 0 {
		draw, err := d.FindByID(ctx, id)
		if err != nil {
			return Draw{}, err
		}
		if draw.Status == DrawStatusSettled {
			return Draw{}, ErrDrawAlreadySettled
		}

		return Draw{}, ErrInvalidStateTransition
	}

	return d.FindByID(ctx, id)
}

// Settle transitions a closed draw with a recorded result to settled.
// The conditional update guarantees exactly one caller wins the transition.
func (d *DrawDAO) Settle(ctx context.Context, id uint) (Draw, error) {
	result := d.db.WithContext(ctx).
		Model(&Draw{}).
		Where("id = ? AND status = ? AND winning_number IS NOT NULL", id, DrawStatusClosed).
		Update("status", DrawStatusSettled)
	if result.Error != nil {
		return Draw{}, result.Error
	}

	if result.RowsAffected == 0 {
		draw, findErr := d.FindByID(ctx, id)
		if findErr != nil {
			return Draw{}, findErr
		}

		switch {
		case draw.Status == DrawStatusSettled:
			return Draw{}, ErrDrawAlreadySettled
		case draw.Status == DrawStatusClosed && draw.WinningNumber == nil:
			return Draw{}, ErrResultMissing
		default:
			return Draw{}, ErrInvalidStateTransition
		}
	}

	return d.FindByID(ctx, id)
}
