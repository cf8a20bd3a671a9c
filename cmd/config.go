package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"localeats/internal/adapters/out/changefeed"
	"localeats/internal/adapters/out/identity"
	"localeats/internal/adapters/out/postgres"
	"localeats/internal/adapters/out/postgres/shared"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	HTTPPort string

	DBDriver    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSslMode   string
	SQLitePath  string
	DBOpTimeout time.Duration

	// RedisAddr selects the Redis change bus; empty keeps changes in
	// process.
	RedisAddr    string
	RedisChannel string

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	PoolRefreshSpec string
	FeedResyncSpec  string

	RateLimitRPS float64
	// AllowedOrigins lists the origins allowed to open a WebSocket; empty
	// means same origin only.
	AllowedOrigins []string
	LogLevel       slog.Level
}

func (c Config) DBConfig() postgres.DBConfig {
	return postgres.DBConfig{
		Driver:     c.DBDriver,
		Host:       c.DBHost,
		Port:       c.DBPort,
		User:       c.DBUser,
		Password:   c.DBPassword,
		Name:       c.DBName,
		SslMode:    c.DBSslMode,
		SQLitePath: c.SQLitePath,
	}
}

// LoadConfig reads the configuration from the environment after loading
// path as a dotenv file. A missing file is not an error; variables that
// are already set win over the file.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}

	var errList []error
	config := Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DBDriver:        getEnv("DB_DRIVER", postgres.DriverPostgres),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          getEnv("DB_NAME", "localeats"),
		DBSslMode:       getEnv("DB_SSLMODE", "disable"),
		SQLitePath:      getEnv("SQLITE_PATH", "localeats.db"),
		DBOpTimeout:     parseEnv("DB_OP_TIMEOUT", shared.DefaultOpTimeout, time.ParseDuration, &errList),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisChannel:    getEnv("REDIS_CHANNEL", changefeed.DefaultRedisChannel),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTTTL:          parseEnv("JWT_TTL", identity.DefaultTokenTTL, time.ParseDuration, &errList),
		BcryptCost:      parseEnv("BCRYPT_COST", bcrypt.DefaultCost, strconv.Atoi, &errList),
		PoolRefreshSpec: getEnv("POOL_REFRESH_SPEC", "@every 30s"),
		FeedResyncSpec:  getEnv("FEED_RESYNC_SPEC", "@every 5m"),
		RateLimitRPS:    parseEnv("RATE_LIMIT_RPS", 20.0, parseFloat, &errList),
		AllowedOrigins:  splitList(os.Getenv("WS_ALLOWED_ORIGINS")),
		LogLevel:        parseEnv("LOG_LEVEL", slog.LevelInfo, parseLevel, &errList),
	}
	if config.JWTSecret == "" {
		errList = append(errList, errors.New("JWT_SECRET is required"))
	}
	return config, errors.Join(errList...)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func parseEnv[T any](key string, fallback T, parse func(string) (T, error), errList *[]error) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		*errList = append(*errList, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
