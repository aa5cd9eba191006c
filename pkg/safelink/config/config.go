package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port       string `mapstructure:"PORT"`
	DBPath     string `mapstructure:"SAFELINK_DB_PATH"`
	RedisURL   string `mapstructure:"REDIS_URL"`
	BaseURL    string `mapstructure:"SAFELINK_BASE_URL"`
	HomeURL    string `mapstructure:"SAFELINK_HOME_URL"`
	AdminToken string `mapstructure:"SAFELINK_ADMIN_TOKEN"`
	PageSize   int    `mapstructure:"SAFELINK_PAGE_SIZE"`
}

func LoadConfig() (config Config, err error) {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("SAFELINK_DB_PATH", "safelink.db")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("SAFELINK_BASE_URL", "http://localhost:8080")
	viper.SetDefault("SAFELINK_HOME_URL", "/")
	viper.SetDefault("SAFELINK_ADMIN_TOKEN", "")
	viper.SetDefault("SAFELINK_PAGE_SIZE", 20)

	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	if err != nil {
		log.Printf("unable to decode into struct, %v", err)
		return
	}

	return
}
