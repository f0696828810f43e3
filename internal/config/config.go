package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Name     string
		User     string
		Host     string
		Password string
		Port     int
		SSLMode  string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

// DSN assembles the PostgreSQL connection string from the configured values.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_sslmode", "disable")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Name:     v.GetString("DATABASE"),
			User:     v.GetString("USER_NAME"),
			Host:     v.GetString("HOSTNAME"),
			Password: v.GetString("PASSWORD"),
			Port:     v.GetInt("DB_PORT"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
