// Файл: pkg/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"production-board/pkg/customvalidator"
)

const (
	SourceModeLocal  = "local"
	SourceModeRemote = "remote"
)

type ServerConfig struct {
	Port string `validate:"required,numeric"`
}

// SourceConfig описывает, откуда читается таблица статусов.
type SourceConfig struct {
	Mode         string        `validate:"required,source_mode"`
	Path         string        `validate:"required_if=Mode local"`
	URL          string        `validate:"required_if=Mode remote"`
	Timeout      time.Duration `validate:"gt=0"`
	RetryDelay   time.Duration `validate:"gte=0"`
	PollInterval time.Duration `validate:"gt=0"`
	SettleDelay  time.Duration `validate:"gte=0"`
}

type HistoryConfig struct {
	DBPath string `validate:"required"`
	Prune  bool
}

type RedisConfig struct {
	Enabled  bool
	Address  string `validate:"required_if=Enabled true"`
	Password string
}

type LogConfig struct {
	Path string
}

type Config struct {
	Server  ServerConfig
	Source  SourceConfig
	History HistoryConfig
	Redis   RedisConfig
	Log     LogConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: .env файл не найден или не удалось его загрузить.")
	}

	dataDir := getEnv("DATA_DIR", "dados")

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Source: SourceConfig{
			Mode:         getEnv("SOURCE_MODE", SourceModeLocal),
			Path:         getEnv("SOURCE_PATH", filepath.Join(dataDir, "Status_dos_pedidos.xlsm")),
			URL:          getEnv("SOURCE_URL", ""),
			Timeout:      getDurationEnv("SOURCE_TIMEOUT", 30*time.Second),
			RetryDelay:   getDurationEnv("SOURCE_RETRY_DELAY", 500*time.Millisecond),
			PollInterval: getDurationEnv("POLL_INTERVAL", 5*time.Minute),
			SettleDelay:  getDurationEnv("SETTLE_DELAY", 500*time.Millisecond),
		},
		History: HistoryConfig{
			DBPath: getEnv("DB_PATH", filepath.Join(dataDir, "producao.db")),
			Prune:  getBoolEnv("HISTORY_PRUNE", true),
		},
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", false),
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Log: LogConfig{
			Path: getEnv("LOG_PATH", "./logs/app.log"),
		},
	}
}

// Validate проверяет конфиг теми же правилами, что и остальной код (validator + customvalidator).
func (c *Config) Validate(v *validator.Validate) error {
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("некорректная конфигурация: %w", err)
	}
	return nil
}

// NewValidator - валидатор с зарегистрированными кастомными правилами.
func NewValidator() (*validator.Validate, error) {
	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		return nil, err
	}
	return v, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Предупреждение: %s=%q не является длительностью, используется %s", key, value, fallback)
		return fallback
	}
	return d
}

func getBoolEnv(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}
