package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/stlgaming/lottery-api/internal/domain"
	"github.com/stlgaming/lottery-api/internal/repository/dao"
)

var ErrPrizeConfigurationNotFound = dao.ErrPrizeConfigurationNotFound

type PrizeConfigurationDAO interface {
	FindAll(ctx context.Context) ([]dao.PrizeConfiguration, error)
	FindByVariant(ctx context.Context, variant string) (dao.PrizeConfiguration, error)
	Seed(ctx context.Context, multipliers map[string]decimal.Decimal) error
}

type PrizeConfigurationRepository struct {
	dao PrizeConfigurationDAO
}

func NewPrizeConfigurationRepository(dao PrizeConfigurationDAO) *PrizeConfigurationRepository {
	return &PrizeConfigurationRepository{
		dao: dao,
	}
}

func (r *PrizeConfigurationRepository) daoToDomain(c dao.PrizeConfiguration) domain.PrizeConfiguration {
	return domain.PrizeConfiguration{
		ID:         c.ID,
		Variant:    domain.PrizeVariant(c.Variant),
		Multiplier: c.Multiplier,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// GetAll returns every configured variant keyed for settlement lookup.
func (r *PrizeConfigurationRepository) GetAll(ctx context.Context) (map[domain.PrizeVariant]domain.PrizeConfiguration, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	configs := make(map[domain.PrizeVariant]domain.PrizeConfiguration, len(found))
	for _, c := range found {
		configs[domain.PrizeVariant(c.Variant)] = r.daoToDomain(c)
	}

	return configs, nil
}

func (r *PrizeConfigurationRepository) Seed(ctx context.Context, multipliers map[domain.PrizeVariant]decimal.Decimal) error {
	seed := make(map[string]decimal.Decimal, len(multipliers))
	for variant, multiplier := range multipliers {
		seed[string(variant)] = multiplier
	}

	return r.dao.Seed(ctx, seed)
}
