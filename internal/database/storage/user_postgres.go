package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/UserManager/internal/domain"
	"github.com/jmoiron/sqlx"
)

const (
	queryFindAll = `SELECT id, name, email, phone, address FROM users ORDER BY id`

	queryFindByID = `SELECT id, name, email, phone, address FROM users WHERE id = $1`

	queryFindByEmail = `SELECT id, name, email, phone, address FROM users WHERE email = $1 ORDER BY id LIMIT 1`

	queryExistsByEmail = `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	queryInsert = `
		INSERT INTO users (name, email, phone, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	queryUpsert = `
		INSERT INTO users (id, name, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    email = EXCLUDED.email,
		    phone = EXCLUDED.phone,
		    address = EXCLUDED.address`

	queryDeleteByID = `DELETE FROM users WHERE id = $1`
)

// UserStorage реализует интерфейс ports.UserStorage поверх sqlx
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// FindAll возвращает всех пользователей, пустой срез если таблица пуста
func (s *UserStorage) FindAll(ctx context.Context) ([]domain.User, error) {
	start := time.Now()

	users := []domain.User{}
	if err := s.db.SelectContext(ctx, &users, queryFindAll); err != nil {
		s.logger.Error("failed to select users", "error", err)
		return nil, fmt.Errorf("select users: %w", err)
	}

	s.logger.Debug("users selected",
		"count", len(users),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return users, nil
}

// FindByID получает пользователя по id. Если строки нет, возвращает nil, nil
func (s *UserStorage) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, queryFindByID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("failed to select user by id", "user_id", id, "error", err)
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return &user, nil
}

// FindByEmail получает пользователя по email. Если строки нет, возвращает nil, nil
func (s *UserStorage) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, queryFindByEmail, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("failed to select user by email", "email", email, "error", err)
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return &user, nil
}

func (s *UserStorage) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, queryExistsByEmail, email); err != nil {
		s.logger.Error("failed to check email existence", "email", email, "error", err)
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

// Save вставляет пользователя с ID == 0 и назначает ему id,
// иначе перезаписывает строку с этим id (upsert).
func (s *UserStorage) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	start := time.Now()
	saved := *user

	if saved.ID == 0 {
		err := s.db.QueryRowxContext(ctx, queryInsert,
			saved.Name, saved.Email, saved.Phone, saved.Address,
		).Scan(&saved.ID)
		if err != nil {
			s.logger.Error("failed to insert user", "email", saved.Email, "error", err)
			return nil, fmt.Errorf("insert user: %w", err)
		}

		s.logger.Info("user inserted",
			"user_id", saved.ID,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return &saved, nil
	}

	_, err := s.db.ExecContext(ctx, queryUpsert,
		saved.ID, saved.Name, saved.Email, saved.Phone, saved.Address,
	)
	if err != nil {
		s.logger.Error("failed to upsert user", "user_id", saved.ID, "error", err)
		return nil, fmt.Errorf("upsert user %d: %w", saved.ID, err)
	}

	s.logger.Info("user saved",
		"user_id", saved.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &saved, nil
}

// DeleteByID удаляет пользователя; если строки нет, ничего не происходит
func (s *UserStorage) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, queryDeleteByID, id)
	if err != nil {
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		s.logger.Debug("delete of missing user ignored", "user_id", id)
	}
	return nil
}
