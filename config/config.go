package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port                   string `mapstructure:"PORT"`
	DatabaseURL            string `mapstructure:"DATABASE_URL"`
	RedisAddr              string `mapstructure:"REDIS_ADDR"`
	RedisPassword          string `mapstructure:"REDIS_PASSWORD"`
	RedisDB                int    `mapstructure:"REDIS_DB"`
	RulesFile              string `mapstructure:"RULES_FILE"`
	HeatmapCacheTTLMinutes int    `mapstructure:"HEATMAP_CACHE_TTL_MINUTES"`
	DeliveryTimeoutSeconds int    `mapstructure:"DELIVERY_TIMEOUT_SECONDS"`
}

func GetConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("RULES_FILE", "")
	viper.SetDefault("HEATMAP_CACHE_TTL_MINUTES", 5)
	viper.SetDefault("DELIVERY_TIMEOUT_SECONDS", 10)

	err := viper.ReadInConfig()
	if err != nil {
		// env-only configuration is fine; a config file is optional
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	var config Config
	err = viper.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	return &config, nil
}
