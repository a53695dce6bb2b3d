package ports

import (
	"context"

	"github.com/GoArmGo/UserManager/internal/messaging/payloads"
)

// UserImportPublisher определяет методы для публикации задач на массовый импорт пользователей.
// Используется обработчиком HTTP-запросов
type UserImportPublisher interface {
	PublishUserImport(ctx context.Context, payload payloads.UserImportPayload) error
}

// UserImportConsumer определяет методы для потребления задач импорта,
// используется воркером
type UserImportConsumer interface {
	// StartConsumingUserImports начинает прослушивание очереди импорта.
	// handler вызывается для каждого полученного сообщения
	StartConsumingUserImports(ctx context.Context, handler func(context.Context, payloads.UserImportPayload) error) error
}
