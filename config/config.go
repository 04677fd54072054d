package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Booking BookingConfig
}

type AppConfig struct {
	Port       string
	Env        string
	CORSOrigin string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// BookingConfig tunes the booking core.
// AllowAnonymousBooking controls whether assistant/doctor channels may book
// walk-in patients without an email address. Bookings without an email are
// invisible to the duplicate-booking guard.
type BookingConfig struct {
	AllowAnonymousBooking bool
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	viper.SetDefault("BOOKING_ALLOW_ANONYMOUS", true)

	config := &Config{
		App: AppConfig{
			Port:       viper.GetString("APP_PORT"),
			Env:        viper.GetString("APP_ENV"),
			CORSOrigin: viper.GetString("CORS_ALLOWED_ORIGIN"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Booking: BookingConfig{
			AllowAnonymousBooking: viper.GetBool("BOOKING_ALLOW_ANONYMOUS"),
		},
	}

	return config, nil
}
