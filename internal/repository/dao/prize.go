package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPrizeConfigurationNotFound = errors.New("prize configuration not found")

type PrizeConfiguration struct {
	ID uint `gorm:"primaryKey"`

	Variant    string          `gorm:"size:32;unique;not null"`
	Multiplier decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PrizeConfigurationDAO struct {
	db *gorm.DB
}

func NewPrizeConfigurationDAO(db *gorm.DB) *PrizeConfigurationDAO {
	return &PrizeConfigurationDAO{
		db: db,
	}
}

func (d *PrizeConfigurationDAO) FindAll(ctx context.Context) ([]PrizeConfiguration, error) {
	var configs []PrizeConfiguration

	result := d.db.WithContext(ctx).Order("variant ASC").Find(&configs)
	if result.Error != nil {
		return nil, result.Error
	}

	return configs, nil
}

func (d *PrizeConfigurationDAO) FindByVariant(ctx context.Context, variant string) (PrizeConfiguration, error) {
	var config PrizeConfiguration

	result := d.db.WithContext(ctx).Where("variant = ?", variant).First(&config)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PrizeConfiguration{}, ErrPrizeConfigurationNotFound
		}

		return PrizeConfiguration{}, result.Error
	}

	return config, nil
}

// Seed inserts the configured multipliers for any variant not present yet.
// Existing rows win so operator adjustments survive restarts.
func (d *PrizeConfigurationDAO) Seed(ctx context.Context, multipliers map[string]decimal.Decimal) error {
	for variant, multiplier := range multipliers {
		config := PrizeConfiguration{
			Variant:    variant,
			Multiplier: multiplier,
		}

		err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "variant"}},
			DoNothing: true,
		}).Create(&config).Error
		if err != nil {
			return err
		}
	}

	return nil
}
