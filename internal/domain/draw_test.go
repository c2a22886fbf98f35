package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDrawCanAcceptBet(t *testing.T) {
	cutoff := time.Date(2025, 6, 1, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status DrawStatus
		at     time.Time
		want   bool
	}{
		{"open before cutoff", DrawStatusOpen, cutoff.Add(-time.Minute), true},
		{"open exactly at cutoff", DrawStatusOpen, cutoff, false},
		{"open past cutoff", DrawStatusOpen, cutoff.Add(time.Second), false},
		{"closed before cutoff", DrawStatusClosed, cutoff.Add(-time.Minute), false},
		{"settled", DrawStatusSettled, cutoff.Add(-time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draw := Draw{
				Status:   tt.status,
				CutoffAt: cutoff,
			}

			assert.Equal(t, tt.want, draw.CanAcceptBet(tt.at))
		})
	}
}

func TestDrawHasResult(t *testing.T) {
	number := "123"
	empty := ""

	assert.False(t, (&Draw{}).HasResult())
	assert.False(t, (&Draw{WinningNumber: &empty}).HasResult())
	assert.True(t, (&Draw{WinningNumber: &number}).HasResult())
}
