package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/stlgaming/lottery-api/internal/domain"
)

// TimeSlot is one configured daily draw slot: a label like "2PM" and the
// betting cutoff as a wall-clock time ("13:45").
type TimeSlot struct {
	Label  string
	Cutoff string
}

// SchedulerConfig carries the externally supplied scheduling inputs.
type SchedulerConfig struct {
	Timezone      string
	HorizonDays   int
	CloseInterval string // cron spec for the close tick, e.g. "@every 1m"
	Slots         []TimeSlot
}

type slot struct {
	label  string
	hour   int
	minute int
}

type SchedulerDrawRepository interface {
	Create(ctx context.Context, date time.Time, slotLabel string, cutoffAt time.Time) (domain.Draw, error)
	ListOpenPastCutoff(ctx context.Context, at time.Time) ([]domain.Draw, error)
	Close(ctx context.Context, id uint) (domain.Draw, error)
}

// SchedulerService keeps draw rows existing for every configured slot over
// a rolling horizon, and flips open draws to closed once their cutoff has
// passed. Creation races between concurrent schedulers resolve through the
// (date, slot) unique constraint; close races through the guarded
// transition. Both make this service safe to run on every instance.
type SchedulerService struct {
	repo          SchedulerDrawRepository
	slots         []slot
	horizonDays   int
	closeInterval string
	loc           *time.Location

	now func() time.Time
}

func NewSchedulerService(repo SchedulerDrawRepository, conf SchedulerConfig) (*SchedulerService, error) {
	loc, err := time.LoadLocation(conf.Timezone)
	if err != nil {
		return nil, fmt.Errorf("time.LoadLocation(%q) -> %w", conf.Timezone, err)
	}

	slots := make([]slot, 0, len(conf.Slots))
	for _, s := range conf.Slots {
		cutoff, err := time.Parse("15:04", s.Cutoff)
		if err != nil {
			return nil, fmt.Errorf("slot %q: invalid cutoff %q -> %w", s.Label, s.Cutoff, err)
		}
		slots = append(slots, slot{
			label:  s.Label,
			hour:   cutoff.Hour(),
			minute: cutoff.Minute(),
		})
	}
	if len(slots) == 0 {
		return nil, errors.New("scheduler requires at least one time slot")
	}

	horizon := conf.HorizonDays
	if horizon <= 0 {
		horizon = 3
	}
	interval := conf.CloseInterval
	if interval == "" {
		interval = "@every 1m"
	}

	return &SchedulerService{
		repo:          repo,
		slots:         slots,
		horizonDays:   horizon,
		closeInterval: interval,
		loc:           loc,
		now:           time.Now,
	}, nil
}

// EnsureDraws creates the draw row for every (date, slot) pair in
// [today, today+horizonDays] that does not exist yet. "Already exists" is
// success, not failure.
func (s *SchedulerService) EnsureDraws(ctx context.Context, horizonDays int) (int, error) {
	now := s.now().In(s.loc)
	created := 0

	for day := 0; day <= horizonDays; day++ {
		year, month, dom := now.AddDate(0, 0, day).Date()
		date := time.Date(year, month, dom, 0, 0, 0, 0, time.UTC)

		for _, sl := range s.slots {
			cutoff := time.Date(year, month, dom, sl.hour, sl.minute, 0, 0, s.loc)

			_, err := s.repo.Create(ctx, date, sl.label, cutoff)
			if errors.Is(err, ErrDrawExists) {
				continue
			}
			if err != nil {
				return created, fmt.Errorf("s.repo.Create -> %w", err)
			}
			created++
		}
	}

	return created, nil
}

// CloseDue transitions every open draw whose cutoff has passed. The
// repository's conditional update makes concurrent ticks harmless.
func (s *SchedulerService) CloseDue(ctx context.Context) (int, error) {
	due, err := s.repo.ListOpenPastCutoff(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("s.repo.ListOpenPastCutoff -> %w", err)
	}

	closed := 0
	for _, draw := range due {
		updated, err := s.repo.Close(ctx, draw.ID)
		if err != nil {
			return closed, fmt.Errorf("s.repo.Close -> %w", err)
		}
		if updated.Status == domain.DrawStatusClosed {
			closed++
		}
	}

	return closed, nil
}

// Run seeds the horizon, then drives the close tick and a daily horizon
// top-up until the context is cancelled. Blocks.
func (s *SchedulerService) Run(ctx context.Context) error {
	if created, err := s.EnsureDraws(ctx, s.horizonDays); err != nil {
		return fmt.Errorf("s.EnsureDraws -> %w", err)
	} else if created > 0 {
		zap.L().Info("scheduler seeded draws", zap.Int("created", created))
	}

	c := cron.New()

	_, err := c.AddFunc(s.closeInterval, func() {
		closed, err := s.CloseDue(context.Background())
		if err != nil {
			zap.L().Error("scheduler close tick failed", zap.Error(err))
			return
		}
		if closed > 0 {
			zap.L().Info("scheduler closed draws", zap.Int("closed", closed))
		}
	})
	if err != nil {
		return fmt.Errorf("c.AddFunc(close) -> %w", err)
	}

	_, err = c.AddFunc("@daily", func() {
		created, err := s.EnsureDraws(context.Background(), s.horizonDays)
		if err != nil {
			zap.L().Error("scheduler horizon top-up failed", zap.Error(err))
			return
		}
		if created > 0 {
			zap.L().Info("scheduler seeded draws", zap.Int("created", created))
		}
	})
	if err != nil {
		return fmt.Errorf("c.AddFunc(ensure) -> %w", err)
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	return ctx.Err()
}
