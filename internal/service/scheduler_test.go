package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stlgaming/lottery-api/internal/domain"
)

type fakeSchedulerStore struct {
	mu     sync.Mutex
	nextID uint
	draws  map[uint]*domain.Draw
	keys   map[string]bool
}

func newFakeSchedulerStore() *fakeSchedulerStore {
	return &fakeSchedulerStore{
		draws: make(map[uint]*domain.Draw),
		keys:  make(map[string]bool),
	}
}

func (f *fakeSchedulerStore) Create(_ context.Context, date time.Time, slot string, cutoffAt time.Time) (domain.Draw, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := date.Format("2006-01-02") + "/" + slot
	if f.keys[key] {
		return domain.Draw{}, ErrDrawExists
	}
	f.keys[key] = true

	f.nextID++
	draw := &domain.Draw{
		ID:       f.nextID,
		Date:     date,
		Slot:     slot,
		CutoffAt: cutoffAt,
		Status:   domain.DrawStatusOpen,
	}
	f.draws[draw.ID] = draw

	return *draw, nil
}

func (f *fakeSchedulerStore) ListOpenPastCutoff(_ context.Context, at time.Time) ([]domain.Draw, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var due []domain.Draw
	for _, d := range f.draws {
		if d.Status == domain.DrawStatusOpen && !d.CutoffAt.After(at) {
			due = append(due, *d)
		}
	}

	return due, nil
}

func (f *fakeSchedulerStore) Close(_ context.Context, id uint) (domain.Draw, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	draw, ok := f.draws[id]
	if !ok {
		return domain.Draw{}, ErrDrawNotFound
	}
	if draw.Status == domain.DrawStatusOpen {
		draw.Status = domain.DrawStatusClosed
	}

	return *draw, nil
}

func testSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Timezone:    "Asia/Manila",
		HorizonDays: 2,
		Slots: []TimeSlot{
			{Label: "2PM", Cutoff: "13:45"},
			{Label: "9PM", Cutoff: "20:45"},
		},
	}
}

func TestNewSchedulerService_Validation(t *testing.T) {
	t.Run("unknown timezone", func(t *testing.T) {
		conf := testSchedulerConfig()
		conf.Timezone = "Mars/Olympus"

		_, err := NewSchedulerService(newFakeSchedulerStore(), conf)
		require.Error(t, err)
	})

	t.Run("malformed cutoff", func(t *testing.T) {
		conf := testSchedulerConfig()
		conf.Slots[0].Cutoff = "1:45pm"

		_, err := NewSchedulerService(newFakeSchedulerStore(), conf)
		require.Error(t, err)
	})

	t.Run("no slots", func(t *testing.T) {
		conf := testSchedulerConfig()
		conf.Slots = nil

		_, err := NewSchedulerService(newFakeSchedulerStore(), conf)
		require.Error(t, err)
	})
}

func TestSchedulerService_EnsureDraws(t *testing.T) {
	store := newFakeSchedulerStore()

	svc, err := NewSchedulerService(store, testSchedulerConfig())
	require.NoError(t, err)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	}

	created, err := svc.EnsureDraws(context.Background(), 2)
	require.NoError(t, err)
	// 2 slots across today plus two days ahead.
	assert.Equal(t, 6, created)

	// A second pass finds everything in place already.
	created, err = svc.EnsureDraws(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestSchedulerService_CloseDue(t *testing.T) {
	store := newFakeSchedulerStore()
	now := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	overdue, err := store.Create(context.Background(), day, "2PM", now.Add(-15*time.Minute))
	require.NoError(t, err)
	upcoming, err := store.Create(context.Background(), day, "9PM", now.Add(6*time.Hour))
	require.NoError(t, err)

	svc, err := NewSchedulerService(store, testSchedulerConfig())
	require.NoError(t, err)
	svc.now = func() time.Time { return now }

	closed, err := svc.CloseDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	assert.Equal(t, domain.DrawStatusClosed, store.draws[overdue.ID].Status)
	assert.Equal(t, domain.DrawStatusOpen, store.draws[upcoming.ID].Status)

	// The tick is idempotent; nothing new is due.
	closed, err = svc.CloseDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, closed)
}
