// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/spf13/viper"
)

// Transfer concurrency strategies supported by the store.
const (
	StrategyPessimistic = "pessimistic"
	StrategyOptimistic  = "optimistic"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environement variables.
type Config struct {
	DBDriver               string        `mapstructure:"DB_DRIVER"`
	DBSource               string        `mapstructure:"DB_SOURCE"`
	ServerAddress          string        `mapstructure:"SERVER_ADDRESS"`
	TransferStrategy       string        `mapstructure:"TRANSFER_STRATEGY"`
	TransferMaxAttempts    uint          `mapstructure:"TRANSFER_MAX_ATTEMPTS"`
	TransferRetryBaseDelay time.Duration `mapstructure:"TRANSFER_RETRY_BASE_DELAY"`
	Environement           string        `mapstructure:"GO_ENV"`
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("TRANSFER_STRATEGY", StrategyPessimistic)
	viper.SetDefault("TRANSFER_MAX_ATTEMPTS", 3)
	viper.SetDefault("TRANSFER_RETRY_BASE_DELAY", 100*time.Millisecond)

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = viper.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
