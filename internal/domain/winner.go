package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WinningTicket is the settlement output: one record per winning bet,
// created exactly once by the settlement engine and by no other path.
type WinningTicket struct {
	ID          uint            `json:"id"`
	DrawID      uint            `json:"draw_id"`
	TicketID    uint            `json:"ticket_id"`
	BetID       uint            `json:"bet_id"`
	AgentID     uint            `json:"agent_id"`
	Combination string          `json:"combination"`
	Type        BetType         `json:"bet_type"`
	Amount      decimal.Decimal `json:"amount"`
	Prize       decimal.Decimal `json:"prize"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SettlementReport summarizes one settlement run.
type SettlementReport struct {
	DrawID           uint            `json:"draw_id"`
	WinningNumber    string          `json:"winning_number"`
	TicketsProcessed int             `json:"tickets_processed"`
	BetsProcessed    int             `json:"bets_processed"`
	WinnersFound     int             `json:"winners_found"`
	TotalPayout      decimal.Decimal `json:"total_payout"`
}
