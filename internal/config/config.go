// internal/config/config.go
//
// Environment configuration.
// Values come from the process environment, optionally seeded from a .env
// file by godotenv in main. Unset or empty variables take their defaults.

package config

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds every tunable read at startup.
type Config struct {
	LogLevel     string        // LOG_LEVEL (default "info")
	Port         string        // PORT (default "5175")
	WordsFile    string        // WORDS_FILE; empty uses the embedded dictionary
	DBPath       string        // DB_PATH for benchmark reports (default ./data/solver.db)
	JWTSecret    string        // JWT_SECRET
	JWTExpires   time.Duration // JWT_EXPIRES_HOURS (default 12)
	OperatorHash string        // OPERATOR_PASSWORD_HASH (bcrypt); empty disables /auth/token
	DailySalt    string        // DAILY_SALT
	ClientOrigin string        // CLIENT_ORIGIN for CORS
	Workers      int           // WORKERS; defaults to GOMAXPROCS
}

// Load reads the environment.
func Load() Config {
	return Config{
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Port:         getEnv("PORT", "5175"),
		WordsFile:    os.Getenv("WORDS_FILE"),
		DBPath:       getEnv("DB_PATH", "./data/solver.db"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpires:   time.Duration(getInt("JWT_EXPIRES_HOURS", 12)) * time.Hour,
		OperatorHash: os.Getenv("OPERATOR_PASSWORD_HASH"),
		DailySalt:    getEnv("DAILY_SALT", "local_dev_salt"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Workers:      getInt("WORKERS", runtime.GOMAXPROCS(0)),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getInt parses k as a positive integer, falling back to def.
func getInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		log.Warn().Str("key", k).Str("value", v).Int("default", def).Msg("ignoring bad integer setting")
		return def
	}
	return n
}
