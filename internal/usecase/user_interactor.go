package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/UserManager/internal/core/ports"
	"github.com/GoArmGo/UserManager/internal/domain"
)

// userUseCase implements UserUseCase
type userUseCase struct {
	userStorage ports.UserStorage
	fileStorage ports.FileStorage
	logger      *slog.Logger
	now         func() time.Time
}

// NewUserUseCase создает новый экземпляр UserUseCase.
// fileStorage может быть nil, тогда выгрузка недоступна
func NewUserUseCase(
	userStorage ports.UserStorage,
	fileStorage ports.FileStorage,
	logger *slog.Logger,
) UserUseCase {
	return &userUseCase{
		userStorage: userStorage,
		fileStorage: fileStorage,
		logger:      logger,
		now:         time.Now,
	}
}

func (uc *userUseCase) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := uc.userStorage.FindAll(ctx)
	if err != nil {
		return nil, storeFailure(err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (uc *userUseCase) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := uc.userStorage.FindByID(ctx, id)
	return user, storeFailure(err)
}

func (uc *userUseCase) SaveUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	saved, err := uc.userStorage.Save(ctx, user)
	if err != nil {
		return nil, storeFailure(err)
	}
	return saved, nil
}

// CreateUser всегда вставляет новую строку: присланный ID игнорируется
func (uc *userUseCase) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	exists, err := uc.EmailExists(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		uc.logger.Warn("email already registered", "email", user.Email)
		return nil, ErrEmailExists
	}

	fresh := *user
	fresh.ID = 0

	saved, err := uc.SaveUser(ctx, &fresh)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user created", "user_id", saved.ID)
	return saved, nil
}

// UpdateUser загружает пользователя, перезаписывает все изменяемые поля и сохраняет.
// Поля, которых нет в details, становятся пустыми
func (uc *userUseCase) UpdateUser(ctx context.Context, id int64, details domain.User) (*domain.User, error) {
	user, err := uc.userStorage.FindByID(ctx, id)
	if err != nil {
		return nil, storeFailure(err)
	}
	if user == nil {
		return nil, &NotFoundError{ID: id}
	}

	user.ApplyDetails(details)

	saved, err := uc.SaveUser(ctx, user)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user updated", "user_id", saved.ID)
	return saved, nil
}

func (uc *userUseCase) DeleteUser(ctx context.Context, id int64) error {
	if err := uc.userStorage.DeleteByID(ctx, id); err != nil {
		return storeFailure(err)
	}
	uc.logger.Info("user deleted", "user_id", id)
	return nil
}

func (uc *userUseCase) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := uc.userStorage.ExistsByEmail(ctx, email)
	return exists, storeFailure(err)
}

func (uc *userUseCase) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := uc.userStorage.FindByEmail(ctx, email)
	return user, storeFailure(err)
}

// ExportUsers сериализует всех пользователей в JSON и загружает в S3/MinIO
// под ключом exports/users-<unix>.json
func (uc *userUseCase) ExportUsers(ctx context.Context) (string, error) {
	if uc.fileStorage == nil {
		return "", ErrExportDisabled
	}

	users, err := uc.GetAllUsers(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(users)
	if err != nil {
		return "", fmt.Errorf("usecase: ошибка сериализации пользователей: %w", err)
	}

	key := fmt.Sprintf("exports/users-%d.json", uc.now().Unix())
	location, err := uc.fileStorage.UploadFile(ctx, key, bytes.NewReader(body), "application/json")
	if err != nil {
		return "", storeFailure(fmt.Errorf("usecase: ошибка загрузки снимка %s: %w", key, err))
	}

	uc.logger.Info("users exported", "count", len(users), "location", location)
	return location, nil
}
