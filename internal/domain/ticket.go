package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TicketStatus string

const (
	TicketStatusValidated       TicketStatus = "validated"
	TicketStatusPendingApproval TicketStatus = "pending_approval"
	TicketStatusVoid            TicketStatus = "void"
)

// Ticket is one sale event: one agent, one draw, one or more bets.
type Ticket struct {
	ID          uint            `json:"id"`
	Serial      string          `json:"serial"`
	AgentID     uint            `json:"agent_id"`
	DrawID      uint            `json:"draw_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      TicketStatus    `json:"status"`
	Bets        []Bet           `json:"bets"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TotalAmount sums the wagered amounts of a ticket's lines.
func TotalAmount(lines []BetLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}
