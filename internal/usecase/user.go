package usecase

import (
	"context"

	"github.com/GoArmGo/UserManager/internal/domain"
)

// UserUseCase определяет интерфейс бизнес-логики работы с пользователями.
// Слой тонкий: максимум одна проверка и один вызов хранилища на операцию.
type UserUseCase interface {
	// GetAllUsers возвращает всех пользователей, пустой срез если их нет
	GetAllUsers(ctx context.Context) ([]domain.User, error)

	// GetUserByID возвращает пользователя или nil, если его нет.
	// Отсутствие пользователя ошибкой не считается
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)

	// SaveUser сохраняет пользователя как есть, без проверки email
	SaveUser(ctx context.Context, user *domain.User) (*domain.User, error)

	// CreateUser проверяет уникальность email и сохраняет нового пользователя.
	// При занятом email возвращает ErrEmailExists
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)

	// UpdateUser перезаписывает name, email, phone, address у существующего пользователя.
	// Если пользователя нет, возвращает ошибку, совместимую с ErrUserNotFound
	UpdateUser(ctx context.Context, id int64, details domain.User) (*domain.User, error)

	// DeleteUser удаляет пользователя без проверки существования
	DeleteUser(ctx context.Context, id int64) error

	EmailExists(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExportUsers выгружает снимок всех пользователей в файловое хранилище
	// и возвращает его URL
	ExportUsers(ctx context.Context) (string, error)
}
