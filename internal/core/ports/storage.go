package ports

import (
	"context"
	"io"

	"github.com/GoArmGo/UserManager/internal/domain"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей.
// Отсутствие записи не является ошибкой: методы поиска возвращают nil, nil.
type UserStorage interface {
	// FindAll возвращает всех пользователей в порядке id
	FindAll(ctx context.Context) ([]domain.User, error)

	// FindByID возвращает пользователя по id или nil, если его нет
	FindByID(ctx context.Context, id int64) (*domain.User, error)

	// Save вставляет нового пользователя (ID == 0) или перезаписывает существующего
	Save(ctx context.Context, user *domain.User) (*domain.User, error)

	// DeleteByID удаляет пользователя; отсутствие строки не ошибка
	DeleteByID(ctx context.Context, id int64) error

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// FileStorage определяет интерфейс для работы с файловым хранилищем (AWS S3, MinIO).
// Используется для выгрузки снимков списка пользователей.
type FileStorage interface {
	// UploadFile загружает файл в хранилище и возвращает его URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}
