package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server          Server
	Database        Database
	AnthropicApiKey string
	Storage         Storage
	Session         Session
}

type Server struct {
	Port    string
	BaseURL string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Storage struct {
	Dir        string
	SigningKey string
}

type Session struct {
	IdleMinutes int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_BASE_URL", "http://localhost:8080")
	viper.SetDefault("STORAGE_DIR", "./data/formations")
	viper.SetDefault("SESSION_IDLE_MINUTES", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.BaseURL = viper.GetString("SERVER_BASE_URL")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.AnthropicApiKey = viper.GetString("ANTHROPIC_API_KEY")

	config.Storage.Dir = viper.GetString("STORAGE_DIR")
	config.Storage.SigningKey = viper.GetString("STORAGE_SIGNING_KEY")

	config.Session.IdleMinutes = viper.GetInt("SESSION_IDLE_MINUTES")

	log.Info().Str("port", config.Server.Port).Str("db_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
