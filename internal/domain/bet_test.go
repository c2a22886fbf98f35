package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBetLineValidate(t *testing.T) {
	tests := []struct {
		name    string
		line    BetLine
		wantErr error
	}{
		{
			name: "valid standard line",
			line: BetLine{Combination: "123", Type: BetTypeStandard, Amount: decimal.NewFromInt(10)},
		},
		{
			name: "valid rambolito line",
			line: BetLine{Combination: "112", Type: BetTypeRambolito, Amount: decimal.NewFromInt(10)},
		},
		{
			name:    "combination too short",
			line:    BetLine{Combination: "12", Type: BetTypeStandard, Amount: decimal.NewFromInt(10)},
			wantErr: ErrInvalidCombination,
		},
		{
			name:    "combination too long",
			line:    BetLine{Combination: "1234", Type: BetTypeStandard, Amount: decimal.NewFromInt(10)},
			wantErr: ErrInvalidCombination,
		},
		{
			name:    "combination with letters",
			line:    BetLine{Combination: "12a", Type: BetTypeStandard, Amount: decimal.NewFromInt(10)},
			wantErr: ErrInvalidCombination,
		},
		{
			name:    "unknown bet type",
			line:    BetLine{Combination: "123", Type: BetType("target"), Amount: decimal.NewFromInt(10)},
			wantErr: ErrInvalidBetType,
		},
		{
			name:    "zero amount",
			line:    BetLine{Combination: "123", Type: BetTypeStandard, Amount: decimal.Zero},
			wantErr: ErrNonPositiveAmount,
		},
		{
			name:    "negative amount",
			line:    BetLine{Combination: "123", Type: BetTypeStandard, Amount: decimal.NewFromInt(-5)},
			wantErr: ErrNonPositiveAmount,
		},
		{
			name:    "rambolito on a triple",
			line:    BetLine{Combination: "777", Type: BetTypeRambolito, Amount: decimal.NewFromInt(10)},
			wantErr: ErrRambolitoAllSame,
		},
		{
			name: "standard on a triple is fine",
			line: BetLine{Combination: "777", Type: BetTypeStandard, Amount: decimal.NewFromInt(10)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestBetWins(t *testing.T) {
	tests := []struct {
		name          string
		combination   string
		betType       BetType
		winningNumber string
		want          bool
	}{
		{"standard exact match", "123", BetTypeStandard, "123", true},
		{"standard permutation does not win", "213", BetTypeStandard, "123", false},
		{"standard miss", "456", BetTypeStandard, "123", false},
		{"rambolito exact order", "123", BetTypeRambolito, "123", true},
		{"rambolito permutation", "312", BetTypeRambolito, "123", true},
		{"rambolito double permutation", "212", BetTypeRambolito, "122", true},
		{"rambolito same digits different counts", "112", BetTypeRambolito, "122", false},
		{"rambolito miss", "456", BetTypeRambolito, "123", false},
		{"unknown type never wins", "123", BetType("bonus"), "123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BetWins(tt.combination, tt.betType, tt.winningNumber))
		})
	}
}

func TestPrizeVariantFor(t *testing.T) {
	tests := []struct {
		name        string
		combination string
		betType     BetType
		want        PrizeVariant
		wantErr     bool
	}{
		{"standard", "123", BetTypeStandard, PrizeVariantStandard, false},
		{"standard triple", "777", BetTypeStandard, PrizeVariantStandard, false},
		{"rambolito three distinct digits", "123", BetTypeRambolito, PrizeVariantRambolitoDistinct, false},
		{"rambolito with a repeated digit", "122", BetTypeRambolito, PrizeVariantRambolitoDouble, false},
		{"unknown type", "123", BetType("bonus"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PrizeVariantFor(tt.combination, tt.betType)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrizeConfigurationPrize(t *testing.T) {
	config := PrizeConfiguration{
		Variant:    PrizeVariantStandard,
		Multiplier: decimal.NewFromInt(450),
	}

	prize := config.Prize(decimal.NewFromInt(10))

	assert.True(t, prize.Equal(decimal.NewFromInt(4500)), "got %s", prize)
}

func TestTotalAmount(t *testing.T) {
	lines := []BetLine{
		{Combination: "123", Type: BetTypeStandard, Amount: decimal.NewFromInt(10)},
		{Combination: "456", Type: BetTypeRambolito, Amount: decimal.NewFromFloat(2.50)},
		{Combination: "789", Type: BetTypeStandard, Amount: decimal.NewFromInt(5)},
	}

	total := TotalAmount(lines)

	assert.True(t, total.Equal(decimal.NewFromFloat(17.50)), "got %s", total)
}
