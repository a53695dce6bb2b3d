// Package memory содержит хранилище пользователей в памяти процесса.
// Используется для локального запуска без PostgreSQL и в тестах.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/GoArmGo/UserManager/internal/domain"
)

// UserStorage реализует ports.UserStorage на map под RWMutex.
// id выдаются монотонно и не переиспользуются после удаления
type UserStorage struct {
	mu     sync.RWMutex
	users  map[int64]domain.User
	nextID int64
}

func NewUserStorage() *UserStorage {
	return &UserStorage{users: make(map[int64]domain.User)}
}

func (s *UserStorage) FindAll(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *UserStorage) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *UserStorage) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *user
	if saved.ID == 0 {
		s.nextID++
		saved.ID = s.nextID
	} else if saved.ID > s.nextID {
		s.nextID = saved.ID
	}
	s.users[saved.ID] = saved
	return &saved, nil
}

func (s *UserStorage) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	return nil
}

func (s *UserStorage) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := s.FindByEmail(ctx, email)
	return u != nil, err
}

// FindByEmail возвращает пользователя с наименьшим id среди совпавших
func (s *UserStorage) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *domain.User
	for _, u := range s.users {
		if u.Email != email {
			continue
		}
		if found == nil || u.ID < found.ID {
			u := u
			found = &u
		}
	}
	return found, nil
}
