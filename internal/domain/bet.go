package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type BetType string

const (
	BetTypeStandard  BetType = "standard"
	BetTypeRambolito BetType = "rambolito"
)

// CombinationLength is the fixed number of digits a bettor wagers on.
const CombinationLength = 3

var (
	ErrInvalidCombination = errors.New("combination must be a 3-digit numeric string")
	ErrInvalidBetType     = errors.New("unknown bet type")
	ErrNonPositiveAmount  = errors.New("bet amount must be positive")
	ErrRambolitoAllSame   = errors.New("rambolito requires at least two distinct digits")
)

// Bet is one wagered combination within a Ticket. Immutable once created.
type Bet struct {
	ID          uint            `json:"id"`
	TicketID    uint            `json:"ticket_id"`
	DrawID      uint            `json:"draw_id"`
	Combination string          `json:"combination"`
	Type        BetType         `json:"bet_type"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BetLine is one line of an incoming ticket submission, before persistence.
type BetLine struct {
	Combination string
	Type        BetType
	Amount      decimal.Decimal
}

// Validate applies the rules a bet line must satisfy before any
// reservation or persistence happens.
func (l BetLine) Validate() error {
	if !ValidCombination(l.Combination) {
		return ErrInvalidCombination
	}
	if l.Type != BetTypeStandard && l.Type != BetTypeRambolito {
		return ErrInvalidBetType
	}
	if !l.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if l.Type == BetTypeRambolito && distinctDigits(l.Combination) == 1 {
		// A triple like "111" has no distinct permutation, so there is
		// nothing for a rambolito bet to cover beyond the standard play.
		return ErrRambolitoAllSame
	}
	return nil
}

func ValidCombination(s string) bool {
	if len(s) != CombinationLength {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// BetWins reports whether a combination of the given type wins against the
// official winning number. Standard bets match positionally; rambolito bets
// match any permutation of the winning number's digits.
func BetWins(combination string, betType BetType, winningNumber string) bool {
	switch betType {
	case BetTypeStandard:
		return combination == winningNumber
	case BetTypeRambolito:
		return digitCounts(combination) == digitCounts(winningNumber)
	default:
		return false
	}
}

func (b Bet) Wins(winningNumber string) bool {
	return BetWins(b.Combination, b.Type, winningNumber)
}

// digitCounts returns the per-digit frequency of a 3-digit combination,
// packed into a comparable array.
func digitCounts(s string) [10]int {
	var counts [10]int
	for _, c := range s {
		if c >= '0' && c <= '9' {
			counts[c-'0']++
		}
	}
	return counts
}

func distinctDigits(s string) int {
	counts := digitCounts(s)
	n := 0
	for _, c := range counts {
		if c > 0 {
			n++
		}
	}
	return n
}
