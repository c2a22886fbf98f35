package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/stlgaming/lottery-api/internal/domain"
	"github.com/stlgaming/lottery-api/internal/repository"
)

type fakeDrawStore struct {
	draws map[uint]domain.Draw
}

func (f *fakeDrawStore) GetByID(_ context.Context, id uint) (domain.Draw, error) {
	draw, ok := f.draws[id]
	if !ok {
		return domain.Draw{}, ErrDrawNotFound
	}

	return draw, nil
}

type ledgerKey struct {
	combination string
	betType     domain.BetType
}

// fakeTicketStore mirrors the real DAO's contract: reservations and the
// ticket insert are atomic, a refused submission leaves no trace, and all
// refused lines are reported together.
type fakeTicketStore struct {
	mu      sync.Mutex
	nextID  uint
	tickets map[string]domain.Ticket
	ledger  map[ledgerKey]decimal.Decimal
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{
		tickets: make(map[string]domain.Ticket),
		ledger:  make(map[ledgerKey]decimal.Decimal),
	}
}

func (f *fakeTicketStore) CreateWithReservations(_ context.Context, ticket domain.Ticket, _ time.Time, ceiling func(combination string, betType domain.BetType) decimal.Decimal) (domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	staged := make(map[ledgerKey]decimal.Decimal, len(ticket.Bets))
	for k, v := range f.ledger {
		staged[k] = v
	}

	var rejections []repository.LineRejection
	for i, bet := range ticket.Bets {
		key := ledgerKey{combination: bet.Combination, betType: bet.Type}
		max := ceiling(bet.Combination, bet.Type)
		current := staged[key]

		if current.Add(bet.Amount).GreaterThan(max) {
			reason := ErrLimitExceeded
			if current.GreaterThanOrEqual(max) {
				reason = ErrSoldOut
			}
			rejections = append(rejections, repository.LineRejection{
				Line:        i,
				Combination: bet.Combination,
				BetType:     string(bet.Type),
				Reason:      reason,
			})
			continue
		}

		staged[key] = current.Add(bet.Amount)
	}
	if len(rejections) > 0 {
		return domain.Ticket{}, &repository.TicketRejection{Rejections: rejections}
	}

	f.ledger = staged
	f.nextID++
	ticket.ID = f.nextID
	f.tickets[ticket.Serial] = ticket

	return ticket, nil
}

func (f *fakeTicketStore) GetBySerial(_ context.Context, serial string) (domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ticket, ok := f.tickets[serial]
	if !ok {
		return domain.Ticket{}, ErrTicketNotFound
	}

	return ticket, nil
}

func (f *fakeTicketStore) ledgerTotal(combination string, betType domain.BetType) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.ledger[ledgerKey{combination: combination, betType: betType}]
}

func testLimits() LimitPolicy {
	return LimitPolicy{
		Defaults: map[domain.BetType]decimal.Decimal{
			domain.BetTypeStandard:  decimal.NewFromInt(1000),
			domain.BetTypeRambolito: decimal.NewFromInt(1000),
		},
		Combinations: map[string]decimal.Decimal{
			"000": decimal.NewFromInt(200),
		},
	}
}

func openDraw(id uint, cutoff time.Time) domain.Draw {
	return domain.Draw{
		ID:       id,
		Slot:     "2PM",
		CutoffAt: cutoff,
		Status:   domain.DrawStatusOpen,
	}
}

func TestTicketService_SubmitTicket(t *testing.T) {
	cutoff := time.Date(2025, 6, 1, 13, 45, 0, 0, time.UTC)
	store := newFakeTicketStore()
	draws := &fakeDrawStore{draws: map[uint]domain.Draw{1: openDraw(1, cutoff)}}

	svc := NewTicketService(store, draws, testLimits())
	svc.now = func() time.Time { return cutoff.Add(-time.Hour) }

	ticket, err := svc.SubmitTicket(context.Background(), 7, 1, []domain.BetLine{
		{Combination: "123", Type: domain.BetTypeStandard, Amount: decimal.NewFromInt(10)},
		{Combination: "456", Type: domain.BetTypeRambolito, Amount: decimal.NewFromInt(5)},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, ticket.Serial)
	assert.Equal(t, uint(7), ticket.AgentID)
	assert.Equal(t, domain.TicketStatusValidated, ticket.Status)
	assert.Len(t, ticket.Bets, 2)
	assert.True(t, ticket.TotalAmount.Equal(decimal.NewFromInt(15)))

	assert.True(t, store.ledgerTotal("123", domain.BetTypeStandard).Equal(decimal.NewFromInt(10)))
	assert.True(t, store.ledgerTotal("456", domain.BetTypeRambolito).Equal(decimal.NewFromInt(5)))

	found, err := svc.GetTicketBySerial(context.Background(), ticket.Serial)
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, found.ID)
}

func TestTicketService_SubmitTicket_EmptyTicket(t *testing.T) {
	svc := NewTicketService(newFakeTicketStore(), &fakeDrawStore{}, testLimits())

	_, err := svc.SubmitTicket(context.Background(), 7, 1, nil)

	require.ErrorIs(t, err, ErrEmptyTicket)
}

func TestTicketService_SubmitTicket_InvalidLine(t *testing.T) {
	svc := NewTicketService(newFakeTicketStore(), &fakeDrawStore{}, testLimits())

	_, err := svc.SubmitTicket(context.Background(), 7, 1, []domain.BetLine{
		{Combination: "123", Type: domain.BetTypeStandard, Amount: decimal.NewFromInt(10)},
		{Combination: "12x", Type: domain.BetTypeStandard, Amount: decimal.NewFromInt(10)},
	})

	require.ErrorIs(t, err, ErrInvalidBetLine)
	require.ErrorIs(t, err, domain.ErrInvalidCombination)

	var lineErr *BetLineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 1, lineErr.Line)
}

func TestTicketService_SubmitTicket_PastCutoff(t *testing.T) {
	cutoff := time.Date(2025, 6, 1, 13, 45, 0, 0, time.UTC)
	draws := &fakeDrawStore{draws: map[uint]domain.Draw{1: openDraw(1, cutoff)}}

	svc := NewTicketService(newFakeTicketStore(), draws, testLimits())
	// The draw row still says open; the wall clock alone must reject it.
	svc.now = func() time.Time { return cutoff.Add(time.Second) }

	_, err := svc.SubmitTicket(context.Background(), 7, 1, []domain.BetLine{
		{Combination: "123", Type: domain.BetTypeStandard, Amount: decimal.NewFromInt(10)},
	})

	require.ErrorIs(t, err, ErrDrawClosed)
}

func TestTicketService_SubmitTicket_ClosedDraw(t *testing.T) {
	cutoff := time.Date(2025, 6, 1, 13, 45, 0, 0, time.UTC)
	draw := openDraw(1, cutoff)
	draw.Status = domain.DrawStatusClosed
	draws := &fakeDrawStore{draws: map[uint]domain.Draw{1: draw}}

	svc := NewTicketService(newFakeTicketStore(), draws, testLimits())
	svc.now = func() time.Time { return cutoff.Add(-time.Hour) }

	_, err := svc.SubmitTicket(context.Background(), 7, 1, []domain.BetLine{
		{Combination: "123", Type: domain.BetTypeStandard, Amount: decimal.NewFromInt(10)},
	})

	require.ErrorIs(t, err, ErrDrawClosed)
}

func TestTicketService_SubmitTicket_ReportsEveryRefusedLine(t *testing.T) {
	cutoff := time.Date(2025, 6, 1, 13, 45, 0, 0, time.UTC)
	store := newFakeTicketStore()
	store.ledger[ledgerKey{combination: "123", betType: domain.BetTypeStandard}] = decimal.NewFromInt(1000)
	draws := &fakeDrawStore{draws: map[uint]domain.Draw{1: openDraw(1, cutoff)}}

	svc := NewTicketService(store, draws, testLimits())
	svc.now = func() time.Time { return cutoff.Add(-time.Hour) }

	_, err := svc.SubmitTicket(context.Background(), 7, 1, []domain.BetLine{
		{Combination: "123", Type: domain.BetTypeStandard, Amount: decimal.NewFromInt(10)},
		{Combination: "456", Type: domain.BetTypeStandard, Amount: decimal.NewFromInt(10)},
		{Combination: "000", Type: domain.BetTypeStandard, Amount: decimal.NewFromInt(500)},
	})

	var rejection *TicketRejection
	require.ErrorAs(t, err, &rejection)
	require.Len(t, rejection.Rejections, 2)
	assert.Equal(t, 0, rejection.Rejections[0].Line)
	assert.ErrorIs(t, rejection.Rejections[0].Reason, ErrSoldOut)
	assert.Equal(t, 2, rejection.Rejections[1].Line)
	assert.ErrorIs(t, rejection.Rejections[1].Reason, ErrLimitExceeded)

	// All-or-nothing: the line that fit must not have stayed reserved.
	assert.True(t, store.ledgerTotal("456", domain.BetTypeStandard).IsZero())
}

func TestTicketService_SubmitTicket_ConcurrentSubmissionsHonorCeiling(t *testing.T) {
	cutoff := time.Date(2025, 6, 1, 13, 45, 0, 0, time.UTC)
	store := newFakeTicketStore()
	draws := &fakeDrawStore{draws: map[uint]domain.Draw{1: openDraw(1, cutoff)}}

	svc := NewTicketService(store, draws, testLimits())
	svc.now = func() time.Time { return cutoff.Add(-time.Hour) }

	var mu sync.Mutex
	accepted := 0

	// Ceiling 1000, 50 concurrent bets of 100 each: exactly 10 can fit.
	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			_, err := svc.SubmitTicket(context.Background(), 7, 1, []domain.BetLine{
				{Combination: "555", Type: domain.BetTypeStandard, Amount: decimal.NewFromInt(100)},
			})
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
				return nil
			}

			var rejection *TicketRejection
			if !errors.As(err, &rejection) {
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 10, accepted)
	assert.True(t, store.ledgerTotal("555", domain.BetTypeStandard).Equal(decimal.NewFromInt(1000)))
}
