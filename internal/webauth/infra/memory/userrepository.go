package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/klwxsrx/go-web-auth/internal/webauth/domain"
)

type userRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

// NewUserRepository keeps users in process memory, everything is lost on restart.
func NewUserRepository() domain.UserRepository {
	return &userRepository{}
}

func (r *userRepository) NextID() domain.UserID {
	return domain.UserID{UUID: uuid.New()}
}

func (r *userRepository) Store(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, stored := range r.users {
		if stored.Email == user.Email && stored.ID != user.ID {
			return domain.ErrUserAlreadyExists
		}
		if stored.ID == user.ID {
			r.users[i] = *user
			return nil
		}
	}

	r.users = append(r.users, *user)
	return nil
}

func (r *userRepository) FindOne(_ context.Context, spec domain.FindUserSpecification) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if len(spec.IDs) > 0 && !slices.Contains(spec.IDs, user.ID) {
			continue
		}
		if len(spec.Emails) > 0 && !slices.Contains(spec.Emails, user.Email) {
			continue
		}

		result := user
		return &result, nil
	}

	return nil, domain.ErrUserNotFound
}
