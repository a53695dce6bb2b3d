package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/UserManager/internal/config"
	"github.com/GoArmGo/UserManager/internal/core/ports"
	"github.com/GoArmGo/UserManager/internal/usecase"
)

const (
	ModeServer = "server"
	ModeWorker = "worker"
)

type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	userUseCase     usecase.UserUseCase
	importPublisher ports.UserImportPublisher
	importConsumer  ports.UserImportConsumer
	closers         []io.Closer
}

// NewApp собирает приложение. publisher и consumer могут быть nil,
// если очередь импорта не настроена
func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	userUseCase usecase.UserUseCase,
	importPublisher ports.UserImportPublisher,
	importConsumer ports.UserImportConsumer,
	closers ...io.Closer,
) *App {
	return &App{
		cfg:             cfg,
		logger:          logger,
		userUseCase:     userUseCase,
		importPublisher: importPublisher,
		importConsumer:  importConsumer,
		closers:         closers,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает приложение в выбранном режиме и блокируется до SIGINT/SIGTERM
func (a *App) Run(ctx context.Context, mode string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", mode)

	var err error
	switch mode {
	case ModeServer:
		err = runServer(ctx, a.cfg, a.logger, a.userUseCase, a.importPublisher)
	case ModeWorker:
		err = runWorker(ctx, a.logger, a.userUseCase, a.importConsumer)
	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", mode)
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown failed", "error", closeErr)
	}
	return err
}

// Shutdown закрывает все ресурсы приложения в обратном порядке
func (a *App) Shutdown() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
