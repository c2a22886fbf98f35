package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Lottery  *LotteryConfig  `mapstructure:"lottery"`
}

type APIConfig struct {
	Name               string   `mapstructure:"name"`
	Port               string   `mapstructure:"port"`
	Environment        string   `mapstructure:"environment"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

// LotteryConfig holds the externally supplied business configuration:
// daily time-slots, exposure ceilings and prize multipliers.
type LotteryConfig struct {
	Timezone      string           `mapstructure:"timezone"`
	HorizonDays   int              `mapstructure:"horizon_days"`
	CloseInterval string           `mapstructure:"close_interval"`
	Slots         []TimeSlotConfig `mapstructure:"slots"`
	Limits        LimitsConfig     `mapstructure:"limits"`
	Prizes        PrizesConfig     `mapstructure:"prizes"`
}

type TimeSlotConfig struct {
	Label  string `mapstructure:"label"`
	Cutoff string `mapstructure:"cutoff"`
}

// LimitsConfig values are decimal strings so money never round-trips
// through floats.
type LimitsConfig struct {
	Standard     string            `mapstructure:"standard"`
	Rambolito    string            `mapstructure:"rambolito"`
	Combinations map[string]string `mapstructure:"combinations"`
}

type PrizesConfig struct {
	Standard          string `mapstructure:"standard"`
	RambolitoDistinct string `mapstructure:"rambolito_distinct"`
	RambolitoDouble   string `mapstructure:"rambolito_double"`
}

// Load reads the YAML config at path. Environment variables override file
// values (e.g. LOTTERY_API_POSTGRES_PASSWORD), and the file is watched so
// edits are picked up on the next read of dynamic values.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvPrefix("LOTTERY_API")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	var conf AppConfig
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info("config file changed", zap.String("file", e.Name))
	})
	v.WatchConfig()

	return &conf, nil
}
