package di

import (
	"context"
	"io"
	"log/slog"

	"github.com/GoArmGo/UserManager/internal/adapter/storage/minio"
	"github.com/GoArmGo/UserManager/internal/app"
	"github.com/GoArmGo/UserManager/internal/config"
	"github.com/GoArmGo/UserManager/internal/core/ports"
	"github.com/GoArmGo/UserManager/internal/database/client"
	"github.com/GoArmGo/UserManager/internal/database/memory"
	"github.com/GoArmGo/UserManager/internal/database/postgres"
	"github.com/GoArmGo/UserManager/internal/database/storage"
	"github.com/GoArmGo/UserManager/internal/logger"
	"github.com/GoArmGo/UserManager/internal/rabbitmq"
	"github.com/GoArmGo/UserManager/internal/usecase"
	gormlogger "gorm.io/gorm/logger"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp(ctx context.Context) (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	var closers []io.Closer
	fail := func(err error) (*app.App, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i].Close()
		}
		return nil, err
	}

	// 2. Хранилище пользователей
	userStorage, dbCloser, err := buildUserStorage(cfg, slogger)
	if err != nil {
		return fail(err)
	}
	if dbCloser != nil {
		closers = append(closers, dbCloser)
	}

	// 3. Файловое хранилище для выгрузок (опционально).
	// Интерфейс оставляем nil, а не типизированный nil-указатель
	var fileStorage ports.FileStorage
	if cfg.ExportEnabled() {
		minioClient, err := minio.NewMinioClient(ctx, cfg, slogger)
		if err != nil {
			return fail(err)
		}
		fileStorage = minioClient
	}

	// 4. RabbitMQ для импорта (опционально)
	var (
		importPublisher ports.UserImportPublisher
		importConsumer  ports.UserImportConsumer
	)
	if cfg.ImportEnabled() {
		rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, rabbitMQClient)
		importPublisher = rabbitMQClient
		importConsumer = rabbitMQClient
	}

	// 5. Бизнес-логика
	userUseCase := usecase.NewUserUseCase(userStorage, fileStorage, slogger)

	application := app.NewApp(cfg, slogger, userUseCase, importPublisher, importConsumer, closers...)

	slogger.Info("all dependencies initialized",
		"storage_driver", cfg.StorageDriver,
		"import_enabled", cfg.ImportEnabled(),
		"export_enabled", cfg.ExportEnabled(),
	)
	return application, nil
}

// buildUserStorage выбирает реализацию ports.UserStorage по STORAGE_DRIVER.
// Возвращает closer для пула соединений, если он был открыт
func buildUserStorage(cfg *config.Config, slogger *slog.Logger) (ports.UserStorage, io.Closer, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		slogger.Warn("using in-memory storage, data is lost on restart")
		return memory.NewUserStorage(), nil, nil
	}

	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.StorageDriver == config.StorageDriverGorm {
		level := gormlogger.Warn
		if cfg.LogLevel == "debug" {
			level = gormlogger.Info
		}
		gormDB, err := postgres.Open(dbClient.DB.DB, level)
		if err != nil {
			_ = dbClient.Close()
			return nil, nil, err
		}
		return postgres.NewGormUserStorage(gormDB, slogger), dbClient, nil
	}

	return storage.NewUserStorage(dbClient.DB, slogger), dbClient, nil
}
