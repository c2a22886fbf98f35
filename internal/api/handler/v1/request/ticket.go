package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type BetLine struct {
	Combination string `json:"combination"`
	BetType     string `json:"bet_type"`
	Amount      string `json:"amount"`
}

type SubmitTicketRequest struct {
	DrawID uint      `json:"draw_id"`
	Bets   []BetLine `json:"bets"`
}

func (req *SubmitTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.DrawID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Bets, validation.Required, validation.Length(1, 50)),
	)
}

func (l BetLine) Validate() error {
	return validation.ValidateStruct(
		&l,
		validation.Field(&l.Combination, validation.Required, validation.Length(3, 3)),
		validation.Field(&l.BetType, validation.Required, validation.In("standard", "rambolito")),
		validation.Field(&l.Amount, validation.Required),
	)
}
