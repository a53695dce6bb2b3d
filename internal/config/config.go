package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	StorageDriverSQLX   = "sqlx"
	StorageDriverGorm   = "gorm"
	StorageDriverMemory = "memory"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL    string        `env:"DATABASE_URL"`
	ServerPort     string        `env:"SERVER_PORT"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	StorageDriver  string        `env:"STORAGE_DRIVER" envDefault:"sqlx"`
	MigrationsPath string        `env:"MIGRATIONS_PATH" envDefault:"file://internal/database/migrations"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Настройки для MinIO, выгрузка снимков отключена, если endpoint пустой
	MinioEndpoint        string `env:"MINIO_ENDPOINT"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME" envDefault:"user-exports"`
	MinioRegion          string `env:"MINIO_REGION" envDefault:"us-east-1"`

	// RabbitMQ нужен только для импорта, без URL импорт отключен
	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"user_import_queue"`
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	if cfg.DatabaseURL == "" && cfg.StorageDriver != StorageDriverMemory {
		return nil, fmt.Errorf("DATABASE_URL обязателен для STORAGE_DRIVER=%s", cfg.StorageDriver)
	}

	switch cfg.StorageDriver {
	case StorageDriverSQLX, StorageDriverGorm, StorageDriverMemory:
	default:
		return nil, fmt.Errorf("неизвестный STORAGE_DRIVER: %q (используйте 'sqlx', 'gorm' или 'memory')", cfg.StorageDriver)
	}

	return &cfg, nil
}

// ImportEnabled сообщает, настроена ли очередь импорта.
func (c *Config) ImportEnabled() bool {
	return c.RabbitMQ.RabbitMQURL != ""
}

// ExportEnabled сообщает, настроено ли объектное хранилище.
func (c *Config) ExportEnabled() bool {
	return c.MinioEndpoint != ""
}
