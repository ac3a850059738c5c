package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	HTTPAddr string
	Debug    bool

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	KafkaBrokers []string
	AuditTopic   string

	PollInterval time.Duration
}

// Load reads a .env file if one is found near the working directory and
// assembles the configuration from environment variables.
func Load() Config {
	loadDotEnv()

	cfg := Config{
		HTTPAddr:     getString("HTTP_ADDR", ":9000"),
		Debug:        getString("LOG_LEVEL", "") == "debug",
		DBHost:       getString("DB_HOST", "localhost"),
		DBPort:       getInt("DB_PORT", 5432),
		DBUser:       getString("POSTGRES_USER", "backoffice"),
		DBPassword:   getString("POSTGRES_PASSWORD", ""),
		DBName:       getString("POSTGRES_DB", "backoffice"),
		AuditTopic:   getString("AUDIT_TOPIC", "audit_logs"),
		PollInterval: getDuration("POLL_INTERVAL", 30*time.Second),
	}

	if brokers := getString("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	return cfg
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func loadDotEnv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}

	candidates := []string{
		filepath.Join(wd, ".env"),
		filepath.Join(wd, "..", ".env"),
		filepath.Join(wd, "..", "..", ".env"),
	}

	for _, path := range candidates {
		if err := godotenv.Load(path); err == nil {
			zap.L().Info("loaded environment file", zap.String("path", path))
			return
		}
	}
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
