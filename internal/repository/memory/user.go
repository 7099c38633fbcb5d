package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage"
)

func (s *Store) SaveUser(_ context.Context, user models.User) (uuid.UUID, error) {
	const op = "repository.memory.SaveUser"

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = s.now()
	s.users[user.ID] = user

	return user.ID, nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (models.User, error) {
	const op = "repository.memory.UserByEmail"

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
}

func (s *Store) UserByID(_ context.Context, id uuid.UUID) (models.User, error) {
	const op = "repository.memory.UserByID"

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	return u, nil
}
