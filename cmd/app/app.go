package app

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stlgaming/lottery-api/internal/api"
	"github.com/stlgaming/lottery-api/internal/config"
	"github.com/stlgaming/lottery-api/internal/db"
	"github.com/stlgaming/lottery-api/internal/domain"
	"github.com/stlgaming/lottery-api/internal/logger"
	"github.com/stlgaming/lottery-api/internal/repository"
	"github.com/stlgaming/lottery-api/internal/repository/dao"
	"github.com/stlgaming/lottery-api/internal/service"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate tables -> %w", err)
	}

	ctx := context.Background()

	if err = seedPrizes(ctx, postgresDB, conf.Lottery.Prizes); err != nil {
		return fmt.Errorf("failed to seed prize configurations -> %w", err)
	}

	limits, err := buildLimitPolicy(conf.Lottery.Limits)
	if err != nil {
		return fmt.Errorf("failed to parse bet limits -> %w", err)
	}

	scheduler, err := buildScheduler(postgresDB, conf.Lottery)
	if err != nil {
		return fmt.Errorf("failed to initialize scheduler -> %w", err)
	}
	go func() {
		if err := scheduler.Run(ctx); err != nil && ctx.Err() == nil {
			zap.L().Error("scheduler stopped", zap.Error(err))
		}
	}()

	s := api.NewServer(conf, postgresDB, limits)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

func seedPrizes(ctx context.Context, postgresDB *gorm.DB, conf config.PrizesConfig) error {
	multipliers := make(map[domain.PrizeVariant]decimal.Decimal, 3)
	for variant, raw := range map[domain.PrizeVariant]string{
		domain.PrizeVariantStandard:          conf.Standard,
		domain.PrizeVariantRambolitoDistinct: conf.RambolitoDistinct,
		domain.PrizeVariantRambolitoDouble:   conf.RambolitoDouble,
	} {
		multiplier, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("prize multiplier for %q: %q -> %w", variant, raw, err)
		}
		multipliers[variant] = multiplier
	}

	repo := repository.NewPrizeConfigurationRepository(dao.NewPrizeConfigurationDAO(postgresDB))

	return repo.Seed(ctx, multipliers)
}

func buildLimitPolicy(conf config.LimitsConfig) (service.LimitPolicy, error) {
	standard, err := decimal.NewFromString(conf.Standard)
	if err != nil {
		return service.LimitPolicy{}, fmt.Errorf("standard limit %q -> %w", conf.Standard, err)
	}
	rambolito, err := decimal.NewFromString(conf.Rambolito)
	if err != nil {
		return service.LimitPolicy{}, fmt.Errorf("rambolito limit %q -> %w", conf.Rambolito, err)
	}

	combinations := make(map[string]decimal.Decimal, len(conf.Combinations))
	for combination, raw := range conf.Combinations {
		ceiling, err := decimal.NewFromString(raw)
		if err != nil {
			return service.LimitPolicy{}, fmt.Errorf("limit for %q: %q -> %w", combination, raw, err)
		}
		combinations[combination] = ceiling
	}

	return service.LimitPolicy{
		Defaults: map[domain.BetType]decimal.Decimal{
			domain.BetTypeStandard:  standard,
			domain.BetTypeRambolito: rambolito,
		},
		Combinations: combinations,
	}, nil
}

func buildScheduler(postgresDB *gorm.DB, conf *config.LotteryConfig) (*service.SchedulerService, error) {
	slots := make([]service.TimeSlot, 0, len(conf.Slots))
	for _, s := range conf.Slots {
		slots = append(slots, service.TimeSlot{
			Label:  s.Label,
			Cutoff: s.Cutoff,
		})
	}

	repo := repository.NewDrawRepository(dao.NewDrawDAO(postgresDB))

	return service.NewSchedulerService(repo, service.SchedulerConfig{
		Timezone:      conf.Timezone,
		HorizonDays:   conf.HorizonDays,
		CloseInterval: conf.CloseInterval,
		Slots:         slots,
	})
}
