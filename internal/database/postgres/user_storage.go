package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/UserManager/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Open поднимает GORM поверх уже открытого пула соединений
func Open(conn *sql.DB, logLevel gormlogger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации GORM: %w", err)
	}
	return db, nil
}

// GormUserStorage реализует интерфейс ports.UserStorage с использованием GORM
type GormUserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormUserStorage создает новый экземпляр GormUserStorage
func NewGormUserStorage(db *gorm.DB, logger *slog.Logger) *GormUserStorage {
	return &GormUserStorage{db: db, logger: logger}
}

// FindAll получает всех пользователей с помощью GORM
func (s *GormUserStorage) FindAll(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	result := s.db.WithContext(ctx).Order("id").Find(&users)
	if result.Error != nil {
		return nil, fmt.Errorf("ошибка при получении пользователей с помощью GORM: %w", result.Error)
	}
	return users, nil
}

// FindByID получает пользователя по ID с помощью GORM
func (s *GormUserStorage) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении пользователя %d с помощью GORM: %w", id, result.Error)
	}
	return &user, nil
}

// FindByEmail получает пользователя по email с помощью GORM
func (s *GormUserStorage) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).Where("email = ?", email).Order("id").First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по email с помощью GORM: %w", result.Error)
	}
	return &user, nil
}

func (s *GormUserStorage) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("ошибка при проверке email с помощью GORM: %w", result.Error)
	}
	return count > 0, nil
}

// Save создает пользователя, если ID не задан, иначе делает upsert по id
func (s *GormUserStorage) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	saved := *user

	tx := s.db.WithContext(ctx)
	if saved.ID != 0 {
		tx = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		})
	}

	if result := tx.Create(&saved); result.Error != nil {
		return nil, fmt.Errorf("ошибка при сохранении пользователя в БД с помощью GORM: %w", result.Error)
	}

	s.logger.Info("user saved (GORM)", "user_id", saved.ID)
	return &saved, nil
}

// DeleteByID удаляет пользователя по ID, отсутствие строки не ошибка
func (s *GormUserStorage) DeleteByID(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&domain.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("ошибка при удалении пользователя %d с помощью GORM: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		s.logger.Debug("delete of missing user ignored (GORM)", "user_id", id)
	}
	return nil
}
