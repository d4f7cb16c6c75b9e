package config

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverMongo = "mongo"
	DriverMySQL = "mysql"
)

type Config struct {
	Port string

	DBDriver  string
	MongoURI  string
	MongoDB   string
	MySQLDSNs []string

	RedisAddr    string
	UserCacheTTL time.Duration

	KafkaBrokers []string
	KafkaTopic   string
	NatsURL      string

	RateLimit float64
	RateBurst int
}

// Load reads a .env file if one exists, then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	return &Config{
		Port:         GetEnvAsString("PORT", "3000"),
		DBDriver:     strings.ToLower(GetEnvAsString("DB_DRIVER", DriverMongo)),
		MongoURI:     GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      GetEnvAsString("MONGO_DB", "exercise-tracker"),
		MySQLDSNs:    GetEnvAsList("MYSQL_DSNS", []string{"root:@tcp(127.0.0.1:3306)/exercise-db?parseTime=true"}),
		RedisAddr:    GetEnvAsString("REDIS_ADDR", ""),
		UserCacheTTL: GetEnvAsDuration("USER_CACHE_TTL", 24*time.Hour),
		KafkaBrokers: GetEnvAsList("KAFKA_BROKERS", nil),
		KafkaTopic:   GetEnvAsString("KAFKA_TOPIC", "exercise-topic"),
		NatsURL:      GetEnvAsString("NATS_URL", ""),
		RateLimit:    GetEnvAsFloat("RATE_LIMIT", 10),
		RateBurst:    GetEnvAsInt("RATE_BURST", 20),
	}
}

// GetEnvAsString gets environment variable as string with default value
func GetEnvAsString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets environment variable as int with default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// GetEnvAsDuration gets environment variable as duration with default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetEnvAsList splits a comma-separated variable, dropping empty items.
func GetEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
