package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/UserManager/internal/core/ports"
	"github.com/GoArmGo/UserManager/internal/messaging/payloads"
	"github.com/GoArmGo/UserManager/internal/usecase"
)

// runWorker запускает потребителя RabbitMQ и обрабатывает задачи импорта
func runWorker(
	ctx context.Context,
	logger *slog.Logger,
	userUseCase usecase.UserUseCase,
	importConsumer ports.UserImportConsumer,
) error {
	if importConsumer == nil {
		return errors.New("режим worker требует RABBITMQ_URL")
	}

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	messageHandler := func(ctx context.Context, payload payloads.UserImportPayload) error {
		_, err := importUsers(ctx, logger, userUseCase, payload)
		return err
	}

	if err := importConsumer.StartConsumingUserImports(workerCtx, messageHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}
	logger.Info("worker started, waiting for import jobs")

	<-ctx.Done()
	logger.Info("worker stopped")
	return nil
}

// importResult — итог одной задачи импорта
type importResult struct {
	Created int
	Skipped int
}

// importUsers создает пользователей из задачи по одному. Занятый email
// пропускается, сбой хранилища прерывает задачу, чтобы сообщение вернулось
// в очередь; уже созданные при повторе уйдут в пропущенные.
func importUsers(
	ctx context.Context,
	logger *slog.Logger,
	userUseCase usecase.UserUseCase,
	payload payloads.UserImportPayload,
) (importResult, error) {
	var res importResult

	for i := range payload.Users {
		u := payload.Users[i]
		_, err := userUseCase.CreateUser(ctx, &u)
		switch usecase.Classify(err) {
		case usecase.OutcomeOK:
			res.Created++
		case usecase.OutcomeConflict:
			res.Skipped++
			logger.Warn("import: email already exists, skipping", "job_id", payload.JobID, "email", u.Email)
		default:
			return res, fmt.Errorf("import job %s: %w", payload.JobID, err)
		}
	}

	logger.Info("import job finished",
		"job_id", payload.JobID,
		"created", res.Created,
		"skipped", res.Skipped,
	)
	return res, nil
}
