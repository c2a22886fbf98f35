package domain

import "time"

type DrawStatus string

const (
	DrawStatusOpen    DrawStatus = "open"
	DrawStatusClosed  DrawStatus = "closed"
	DrawStatusSettled DrawStatus = "settled"
)

// Draw is one betting round for one time-slot on one calendar date.
// Its status only ever moves forward: open -> closed -> settled.
type Draw struct {
	ID            uint       `json:"id"`
	Date          time.Time  `json:"date"`
	Slot          string     `json:"slot"`
	CutoffAt      time.Time  `json:"cutoff_at"`
	Status        DrawStatus `json:"status"`
	WinningNumber *string    `json:"winning_number,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CanAcceptBet reports whether a bet may target this draw at the given
// moment. The wall clock is authoritative: once the cutoff has passed the
// draw rejects bets even if the scheduler has not flipped its status yet.
func (d *Draw) CanAcceptBet(at time.Time) bool {
	return d.Status == DrawStatusOpen && at.Before(d.CutoffAt)
}

func (d *Draw) HasResult() bool {
	return d.WinningNumber != nil && *d.WinningNumber != ""
}
