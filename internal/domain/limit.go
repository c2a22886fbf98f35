package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BetLimitEntry tracks cumulative exposure for one (draw, combination,
// bet type) triple. It is the single source of truth for whether a new
// bet still fits under the configured ceiling; no other code path may
// total bets to make an acceptance decision.
type BetLimitEntry struct {
	ID            uint            `json:"id"`
	DrawID        uint            `json:"draw_id"`
	Combination   string          `json:"combination"`
	Type          BetType         `json:"bet_type"`
	LimitAmount   decimal.Decimal `json:"limit_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	SoldOut       bool            `json:"sold_out"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Remaining is the capacity still open under the ceiling.
func (e BetLimitEntry) Remaining() decimal.Decimal {
	return e.LimitAmount.Sub(e.CurrentAmount)
}
