package dao

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not construct dockertest pool: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		log.Fatalf("could not connect to Docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=lottery_test",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}
	_ = resource.Expire(180)

	databaseURL := fmt.Sprintf("postgres://postgres:secret@%s/lottery_test?sslmode=disable", resource.GetHostPort("5432/tcp"))

	pool.MaxWait = 2 * time.Minute
	if err = pool.Retry(func() error {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err = sqlDB.Ping(); err != nil {
			return err
		}

		testDB = db
		return nil
	}); err != nil {
		log.Fatalf("could not connect to postgres container: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("could not purge postgres container: %v", err)
	}

	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testDB == nil {
		t.Skip("skipping integration test in short mode")
	}
}

var drawSeq int

// createDraw inserts a draw on its own unique date so tests stay isolated.
func createDraw(t *testing.T, status string, cutoffAt time.Time) Draw {
	t.Helper()
	drawSeq++

	draw, err := NewDrawDAO(testDB).Insert(context.Background(), Draw{
		Date:     time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, drawSeq),
		Slot:     "2PM",
		CutoffAt: cutoffAt,
		Status:   status,
	})
	require.NoError(t, err)

	return draw
}

func TestDrawDAO_Lifecycle(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	d := NewDrawDAO(testDB)

	draw := createDraw(t, DrawStatusOpen, time.Now().Add(time.Hour))

	_, err := d.Insert(ctx, Draw{
		Date:     draw.Date,
		Slot:     draw.Slot,
		CutoffAt: draw.CutoffAt,
		Status:   DrawStatusOpen,
	})
	require.ErrorIs(t, err, ErrDrawExists)

	_, err = d.Settle(ctx, draw.ID)
	require.ErrorIs(t, err, ErrInvalidStateTransition)

	closed, err := d.Close(ctx, draw.ID)
	require.NoError(t, err)
	assert.Equal(t, DrawStatusClosed, closed.Status)

	// Closing again is a no-op.
	closed, err = d.Close(ctx, draw.ID)
	require.NoError(t, err)
	assert.Equal(t, DrawStatusClosed, closed.Status)

	_, err = d.Settle(ctx, draw.ID)
	require.ErrorIs(t, err, ErrResultMissing)

	withResult, err := d.RecordResult(ctx, draw.ID, "123")
	require.NoError(t, err)
	require.NotNil(t, withResult.WinningNumber)
	assert.Equal(t, "123", *withResult.WinningNumber)

	settled, err := d.Settle(ctx, draw.ID)
	require.NoError(t, err)
	assert.Equal(t, DrawStatusSettled, settled.Status)

	_, err = d.Settle(ctx, draw.ID)
	require.ErrorIs(t, err, ErrDrawAlreadySettled)

	_, err = d.RecordResult(ctx, draw.ID, "456")
	require.ErrorIs(t, err, ErrDrawAlreadySettled)
}

func TestDrawDAO_RecordResultOnOpenDraw(t *testing.T) {
	requireDB(t)

	draw := createDraw(t, DrawStatusOpen, time.Now().Add(time.Hour))

	_, err := NewDrawDAO(testDB).RecordResult(context.Background(), draw.ID, "123")
	require.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestBetLimitDAO_Reserve(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	d := NewBetLimitDAO(testDB)

	draw := createDraw(t, DrawStatusOpen, time.Now().Add(time.Hour))
	ceiling := decimal.NewFromInt(1000)

	entry, err := d.Reserve(ctx, draw.ID, "123", "standard", decimal.NewFromInt(600), ceiling)
	require.NoError(t, err)
	assert.True(t, entry.CurrentAmount.Equal(decimal.NewFromInt(600)))
	assert.False(t, entry.SoldOut)

	// 600 + 500 would breach the ceiling; the ledger must refuse without
	// touching the running total.
	entry, err = d.Reserve(ctx, draw.ID, "123", "standard", decimal.NewFromInt(500), ceiling)
	require.ErrorIs(t, err, ErrLimitExceeded)
	assert.True(t, entry.CurrentAmount.Equal(decimal.NewFromInt(600)))

	entry, err = d.Reserve(ctx, draw.ID, "123", "standard", decimal.NewFromInt(400), ceiling)
	require.NoError(t, err)
	assert.True(t, entry.CurrentAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, entry.SoldOut)

	_, err = d.Reserve(ctx, draw.ID, "123", "standard", decimal.NewFromInt(1), ceiling)
	require.ErrorIs(t, err, ErrSoldOut)

	// Bet types keep separate ledgers on the same combination.
	entry, err = d.Reserve(ctx, draw.ID, "123", "rambolito", decimal.NewFromInt(100), ceiling)
	require.NoError(t, err)
	assert.True(t, entry.CurrentAmount.Equal(decimal.NewFromInt(100)))
}

func TestBetLimitDAO_Reserve_Concurrent(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	d := NewBetLimitDAO(testDB)

	draw := createDraw(t, DrawStatusOpen, time.Now().Add(time.Hour))
	ceiling := decimal.NewFromInt(1000)

	accepted := make(chan struct{}, 20)
	var g errgroup.Group
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			_, err := d.Reserve(ctx, draw.ID, "777", "standard", decimal.NewFromInt(100), ceiling)
			if err == nil {
				accepted <- struct{}{}
				return nil
			}
			if errors.Is(err, ErrLimitExceeded) || errors.Is(err, ErrSoldOut) {
				return nil
			}
			return err
		})
	}
	require.NoError(t, g.Wait())
	close(accepted)

	assert.Len(t, accepted, 10)

	entries, err := d.FindByDraw(ctx, draw.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].CurrentAmount.Equal(ceiling))
	assert.True(t, entries[0].SoldOut)
}

func staticCeiling(ceiling decimal.Decimal) func(combination, betType string) decimal.Decimal {
	return func(_, _ string) decimal.Decimal {
		return ceiling
	}
}

func TestTicketDAO_InsertWithReservations(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	d := NewTicketDAO(testDB)

	cutoff := time.Now().Add(time.Hour)
	draw := createDraw(t, DrawStatusOpen, cutoff)
	ceiling := staticCeiling(decimal.NewFromInt(1000))

	ticket, err := d.InsertWithReservations(ctx, Ticket{
		Serial:      "serial-accept",
		AgentID:     7,
		DrawID:      draw.ID,
		TotalAmount: decimal.NewFromInt(15),
		Status:      "validated",
		Bets: []Bet{
			{DrawID: draw.ID, Combination: "123", BetType: "standard", Amount: decimal.NewFromInt(10)},
			{DrawID: draw.ID, Combination: "456", BetType: "rambolito", Amount: decimal.NewFromInt(5)},
		},
	}, cutoff.Add(-time.Minute), ceiling)
	require.NoError(t, err)
	assert.NotZero(t, ticket.ID)

	found, err := d.FindBySerial(ctx, "serial-accept")
	require.NoError(t, err)
	assert.Len(t, found.Bets, 2)

	count, err := d.CountByDraw(ctx, draw.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestTicketDAO_InsertWithReservations_RejectionRollsBack(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	d := NewTicketDAO(testDB)

	cutoff := time.Now().Add(time.Hour)
	draw := createDraw(t, DrawStatusOpen, cutoff)
	ceiling := staticCeiling(decimal.NewFromInt(100))

	_, err := d.InsertWithReservations(ctx, Ticket{
		Serial:      "serial-reject",
		AgentID:     7,
		DrawID:      draw.ID,
		TotalAmount: decimal.NewFromInt(250),
		Status:      "validated",
		Bets: []Bet{
			{DrawID: draw.ID, Combination: "123", BetType: "standard", Amount: decimal.NewFromInt(50)},
			{DrawID: draw.ID, Combination: "456", BetType: "standard", Amount: decimal.NewFromInt(150)},
			{DrawID: draw.ID, Combination: "789", BetType: "standard", Amount: decimal.NewFromInt(150)},
		},
	}, cutoff.Add(-time.Minute), ceiling)

	var rejection *TicketRejection
	require.ErrorAs(t, err, &rejection)
	require.Len(t, rejection.Rejections, 2)
	assert.Equal(t, 1, rejection.Rejections[0].Line)
	assert.Equal(t, 2, rejection.Rejections[1].Line)

	_, err = d.FindBySerial(ctx, "serial-reject")
	require.ErrorIs(t, err, ErrTicketNotFound)

	// The line that fit must have rolled back with the rest.
	entries, err := NewBetLimitDAO(testDB).FindByDraw(ctx, draw.ID)
	require.NoError(t, err)
	for _, e := range entries {
		assert.True(t, e.CurrentAmount.IsZero(), "combination %s kept %s reserved", e.Combination, e.CurrentAmount)
	}
}

func TestTicketDAO_InsertWithReservations_PastCutoff(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	d := NewTicketDAO(testDB)

	cutoff := time.Now().Add(time.Hour)
	draw := createDraw(t, DrawStatusOpen, cutoff)

	_, err := d.InsertWithReservations(ctx, Ticket{
		Serial:  "serial-late",
		AgentID: 7,
		DrawID:  draw.ID,
		Status:  "validated",
		Bets: []Bet{
			{DrawID: draw.ID, Combination: "123", BetType: "standard", Amount: decimal.NewFromInt(10)},
		},
	}, cutoff, staticCeiling(decimal.NewFromInt(1000)))

	require.ErrorIs(t, err, ErrDrawNotOpen)
}

func TestWinningTicketDAO_PersistSettlement(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	drawDAO := NewDrawDAO(testDB)
	ticketDAO := NewTicketDAO(testDB)
	winnerDAO := NewWinningTicketDAO(testDB)

	cutoff := time.Now().Add(time.Hour)
	draw := createDraw(t, DrawStatusOpen, cutoff)

	ticket, err := ticketDAO.InsertWithReservations(ctx, Ticket{
		Serial:      "serial-winner",
		AgentID:     7,
		DrawID:      draw.ID,
		TotalAmount: decimal.NewFromInt(10),
		Status:      "validated",
		Bets: []Bet{
			{DrawID: draw.ID, Combination: "123", BetType: "standard", Amount: decimal.NewFromInt(10)},
		},
	}, cutoff.Add(-time.Minute), staticCeiling(decimal.NewFromInt(1000)))
	require.NoError(t, err)

	_, err = drawDAO.Close(ctx, draw.ID)
	require.NoError(t, err)
	_, err = drawDAO.RecordResult(ctx, draw.ID, "123")
	require.NoError(t, err)

	winners := []WinningTicket{{
		DrawID:      draw.ID,
		TicketID:    ticket.ID,
		BetID:       ticket.Bets[0].ID,
		AgentID:     7,
		Combination: "123",
		BetType:     "standard",
		Amount:      decimal.NewFromInt(10),
		Prize:       decimal.NewFromInt(4500),
	}}

	err = winnerDAO.PersistSettlement(ctx, draw.ID, winners, []uint{ticket.ID})
	require.NoError(t, err)

	settled, err := drawDAO.FindByID(ctx, draw.ID)
	require.NoError(t, err)
	assert.Equal(t, DrawStatusSettled, settled.Status)

	flipped, err := ticketDAO.FindByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending_approval", flipped.Status)

	stored, err := winnerDAO.FindByDraw(ctx, draw.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Prize.Equal(decimal.NewFromInt(4500)))

	// A second settler finds the transition already claimed.
	err = winnerDAO.PersistSettlement(ctx, draw.ID, winners, []uint{ticket.ID})
	require.ErrorIs(t, err, ErrDrawAlreadySettled)

	stored, err = winnerDAO.FindByDraw(ctx, draw.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}
