package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppConfig struct {
	App struct {
		Name string `mapstructure:"NAME"`
		Port string `mapstructure:"PORT"`
	}

	DATABASE struct {
		Postgres struct {
			DSN string `mapstructure:"URL"`
		}
		Redis struct {
			Addr     string `mapstructure:"ADDR"`
			Password string `mapstructure:"PASSWORD"`
		}
	}

	CALENDAR struct {
		ProductID string `mapstructure:"PRODUCT_ID"`
		UIDDomain string `mapstructure:"UID_DOMAIN"`
	}

	WORKER struct {
		Num                 int `mapstructure:"NUM"`
		PollIntervalSeconds int `mapstructure:"POLL_INTERVAL_SECONDS"`
	}
}

var Conf *AppConfig

func LoadConfig() error {
	viper.SetConfigName("application")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("TEAMGRID")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("CALENDAR.PRODUCT_ID", "-//TeamGrid//Scheduling//EN")
	viper.SetDefault("CALENDAR.UID_DOMAIN", "teamgrid.app")
	viper.SetDefault("WORKER.NUM", 4)
	viper.SetDefault("WORKER.POLL_INTERVAL_SECONDS", 2)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	var config AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		return fmt.Errorf("error unmarshalling config: %w", err)
	}

	Conf = &config
	log.Info().Msg("configuration loaded...")
	return nil
}
