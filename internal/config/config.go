package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment    string
	LogLevel       string
	DBDSN          string
	HTTPAddr       string
	TelegramToken  string
	MigrationsPath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AMQPURL string

	BookingLockTTL            time.Duration
	VerificationCodeTTL       time.Duration
	VerificationPurgeInterval time.Duration

	HTTPRateLimitPerMin int
	HTTPRequestTimeout  time.Duration
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		Environment:    getString("ENV", "development"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		DBDSN:          os.Getenv("DB_DSN"),
		HTTPAddr:       getString("HTTP_ADDR", ":8080"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		MigrationsPath: getString("MIGRATIONS_PATH", "migrations"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		AMQPURL:        os.Getenv("AMQP_URL"),
	}

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.HTTPRateLimitPerMin, err = getInt("HTTP_RATE_LIMIT_PER_MIN", 120); err != nil {
		return nil, err
	}
	if cfg.HTTPRateLimitPerMin <= 0 {
		return nil, fmt.Errorf("HTTP_RATE_LIMIT_PER_MIN must be positive, got %d", cfg.HTTPRateLimitPerMin)
	}
	if cfg.BookingLockTTL, err = getDuration("BOOKING_LOCK_TTL", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.VerificationCodeTTL, err = getDuration("VERIFICATION_CODE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.VerificationPurgeInterval, err = getDuration("VERIFICATION_PURGE_INTERVAL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.HTTPRequestTimeout, err = getDuration("HTTP_REQUEST_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

// IsProduction проверяет запущено ли приложение в production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// BotEnabled - бот запускается только при заданном токене
func (c *Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	// TTL и периоды должны быть положительными
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return d, nil
}
