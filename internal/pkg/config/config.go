package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL,   default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Library LibraryConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=booksphere"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// LibraryConfig holds the lending policy knobs.
type LibraryConfig struct {
	// BorrowDays is the loan period granted at borrow time.
	BorrowDays int `env:"BORROW_DAYS, default=14"`
	// FinePerDay is the amount charged per day a loan runs late.
	FinePerDay float64 `env:"FINE_PER_DAY, default=0.50"`
	// ReservationExpiryDays is how long a ready reservation is held.
	ReservationExpiryDays int `env:"RESERVATION_EXPIRY_DAYS, default=7"`
	// DueSoonDays is how many days before the due date reminders start.
	DueSoonDays int `env:"DUE_SOON_DAYS, default=2"`
	// ScanInterval is how often the overdue scanner runs.
	ScanInterval time.Duration `env:"SCAN_INTERVAL, default=1h"`
	// Workers is the number of notification delivery workers.
	Workers int `env:"NOTIFICATION_WORKERS, default=8"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
