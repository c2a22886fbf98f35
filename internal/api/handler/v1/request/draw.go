package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type RecordResultRequest struct {
	WinningNumber string `json:"winning_number"`
}

func (req *RecordResultRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.WinningNumber, validation.Required, validation.Length(3, 3)),
	)
}

type SettleDrawRequest struct {
	WinningNumber string `json:"winning_number"`
}

func (req *SettleDrawRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.WinningNumber, validation.Required, validation.Length(3, 3)),
	)
}
