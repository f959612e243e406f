// Файл: config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port        string   `validate:"required,numeric"`
	CORSOrigins []string `validate:"dive,url"`
}

type APIConfig struct {
	BaseURL string        `validate:"required,url"`
	Timeout time.Duration `validate:"gt=0"`
}

// PostgresConfig: пустой DSN - PostgreSQL не используется.
type PostgresConfig struct {
	DSN string
}

type RedisConfig struct {
	Address  string `validate:"required"`
	Password string
	DB       int `validate:"gte=0"`
}

type JWTConfig struct {
	// Пустой ключ - токен только разбирается, подпись проверяет внешний API.
	SecretKey string
}

type ListConfig struct {
	StateStore       string        `validate:"oneof=cookie redis postgres"`
	SearchStateTTL   time.Duration `validate:"gt=0"`
	DebounceInterval time.Duration `validate:"gte=0"`
	LookupCacheTTL   time.Duration `validate:"gt=0"`
	ExportMaxRows    int           `validate:"gt=0"`
}

type LogConfig struct {
	Level string `validate:"oneof=debug info warn error"`
	File  string
}

type Config struct {
	Server   ServerConfig
	API      APIConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	JWT      JWTConfig
	List     ListConfig
	Log      LogConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: .env файл не найден или не удалось его загрузить.")
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			CORSOrigins: getList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3000"), "/"),
			Timeout: getDuration("API_TIMEOUT", 20*time.Second),
		},
		Postgres: PostgresConfig{
			DSN: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET_KEY", ""),
		},
		List: ListConfig{
			StateStore:       getEnv("STATE_STORE", "cookie"),
			SearchStateTTL:   getDuration("SEARCH_STATE_TTL", 7*24*time.Hour),
			DebounceInterval: getDuration("DEBOUNCE_INTERVAL", 300*time.Millisecond),
			LookupCacheTTL:   getDuration("LOOKUP_CACHE_TTL", 10*time.Minute),
			ExportMaxRows:    getInt("EXPORT_MAX_ROWS", 10000),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "debug"),
			File:  getEnv("LOG_FILE", ""),
		},
	}
}

// Validate проверяет конфиг при старте.
func (c *Config) Validate(v *validator.Validate) error {
	return v.Struct(c)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Предупреждение: %s=%q не число, используется %d", key, value, fallback)
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Предупреждение: %s=%q не длительность, используется %s", key, value, fallback)
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
