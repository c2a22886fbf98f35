package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PrizeVariant selects which multiplier applies to a winning bet.
// A rambolito combination with a repeated digit has only three winning
// permutations instead of six, so it pays a higher multiplier.
type PrizeVariant string

const (
	PrizeVariantStandard          PrizeVariant = "standard"
	PrizeVariantRambolitoDistinct PrizeVariant = "rambolito_distinct"
	PrizeVariantRambolitoDouble   PrizeVariant = "rambolito_double"
)

type PrizeConfiguration struct {
	ID         uint            `json:"id"`
	Variant    PrizeVariant    `json:"variant"`
	Multiplier decimal.Decimal `json:"multiplier"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// PrizeVariantFor returns the prize variant a bet settles under.
func PrizeVariantFor(combination string, betType BetType) (PrizeVariant, error) {
	switch betType {
	case BetTypeStandard:
		return PrizeVariantStandard, nil
	case BetTypeRambolito:
		switch distinctDigits(combination) {
		case 3:
			return PrizeVariantRambolitoDistinct, nil
		case 2:
			return PrizeVariantRambolitoDouble, nil
		default:
			return "", ErrRambolitoAllSame
		}
	default:
		return "", ErrInvalidBetType
	}
}

// Prize computes the payout for a winning wager of the given amount.
func (c PrizeConfiguration) Prize(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(c.Multiplier)
}
