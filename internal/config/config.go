package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreModeSnapshot = "snapshot"
	StoreModeSQLite   = "sqlite"
)

type Config struct {
	ListenAddr      string
	DBPath          string
	SeedFile        string
	SeedOnStart     bool
	StoreMode       string
	ImagePath       string
	AllowedOrigins  []string
	LogLevel        string
	LogFile         string
	ShutdownTimeout time.Duration
}

func Load() *Config {
	return &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		DBPath:          getEnv("DB_PATH", "/data/campusfoods.db"),
		SeedFile:        getEnv("SEED_FILE", ""),
		SeedOnStart:     getEnvBool("SEED_ON_START", true),
		StoreMode:       getEnv("STORE_MODE", StoreModeSnapshot),
		ImagePath:       getEnv("IMAGE_PATH", "/data/images"),
		AllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("LOG_FILE", ""),
		ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT", 15)) * time.Second,
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("LISTEN_ADDR is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	switch c.StoreMode {
	case StoreModeSnapshot, StoreModeSQLite:
	default:
		return fmt.Errorf("invalid STORE_MODE %q (must be %s or %s)", c.StoreMode, StoreModeSnapshot, StoreModeSQLite)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q (must be debug, info, warn, or error)", c.LogLevel)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultVal
	}
	return val
}

func getEnvBool(key string, defaultVal bool) bool {
	val, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultVal
	}
	return val
}

func getEnvList(key string, defaultVal []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
